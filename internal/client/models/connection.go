package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrijs2005/rdpmanager/internal/common"
	"github.com/go-playground/validator/v10"
)

// ScreenMode mirrors the descriptor's "screen mode id" values.
type ScreenMode int

const (
	ScreenModeWindowed   ScreenMode = 1
	ScreenModeFullscreen ScreenMode = 2
)

func (m ScreenMode) String() string {
	switch m {
	case ScreenModeWindowed:
		return "windowed"
	case ScreenModeFullscreen:
		return "fullscreen"
	default:
		return fmt.Sprintf("ScreenMode(%d)", int(m))
	}
}

// ParseScreenMode accepts "windowed"/"fullscreen" or the numeric ids.
func ParseScreenMode(s string) (ScreenMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "windowed", "window", "w":
		return ScreenModeWindowed, nil
	case "2", "fullscreen", "full", "f":
		return ScreenModeFullscreen, nil
	}
	return 0, common.NewValidationError("screen_mode", "expected windowed or fullscreen")
}

// ColorDepth is the session colour depth in bits per pixel.
type ColorDepth int

// ColorDepths lists the depths the remote-desktop client accepts.
var ColorDepths = []ColorDepth{15, 16, 24, 32}

// Connection is one saved remote-desktop target.
type Connection struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name" validate:"required"`
	Hostname          string     `json:"hostname" validate:"required"`
	Port              int        `json:"port" validate:"min=1,max=65535"`
	Username          string     `json:"username"`
	EncryptedPassword string     `json:"encrypted_password"`
	CategoryID        *int64     `json:"category_id"`
	ScreenMode        ScreenMode `json:"screen_mode" validate:"oneof=1 2"`
	DesktopWidth      int        `json:"desktop_width" validate:"gt=0"`
	DesktopHeight     int        `json:"desktop_height" validate:"gt=0"`
	ColorDepth        ColorDepth `json:"color_depth" validate:"oneof=15 16 24 32"`
	RedirectClipboard bool       `json:"redirect_clipboard"`
	RedirectPrinters  bool       `json:"redirect_printers"`
	RedirectDrives    bool       `json:"redirect_drives"`
	Notes             string     `json:"notes"`
	LastConnected     *time.Time `json:"last_connected"`
	CreatedAt         time.Time  `json:"created_at"`
}

// NewConnection returns a connection populated with the default display and
// redirection settings.
func NewConnection() Connection {
	return Connection{
		Port:              common.DefaultPort,
		ScreenMode:        ScreenModeFullscreen,
		DesktopWidth:      common.DefaultDesktopWidth,
		DesktopHeight:     common.DefaultDesktopHeight,
		ColorDepth:        common.DefaultColorDepth,
		RedirectClipboard: true,
	}
}

// UnmarshalJSON starts from NewConnection so that fields absent from the
// document keep their defaults. Redirect flags may be 0/1 and timestamps
// may lack a zone, as in rows dumped straight from the database.
func (c *Connection) UnmarshalJSON(b []byte) error {
	type plain Connection
	v := plain(NewConnection())
	aux := struct {
		*plain
		RedirectClipboard *Flag      `json:"redirect_clipboard"`
		RedirectPrinters  *Flag      `json:"redirect_printers"`
		RedirectDrives    *Flag      `json:"redirect_drives"`
		LastConnected     *Timestamp `json:"last_connected"`
		CreatedAt         *Timestamp `json:"created_at"`
	}{plain: &v}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	if aux.RedirectClipboard != nil {
		v.RedirectClipboard = bool(*aux.RedirectClipboard)
	}
	if aux.RedirectPrinters != nil {
		v.RedirectPrinters = bool(*aux.RedirectPrinters)
	}
	if aux.RedirectDrives != nil {
		v.RedirectDrives = bool(*aux.RedirectDrives)
	}
	if aux.LastConnected != nil && !time.Time(*aux.LastConnected).IsZero() {
		t := time.Time(*aux.LastConnected)
		v.LastConnected = &t
	}
	if aux.CreatedAt != nil {
		v.CreatedAt = time.Time(*aux.CreatedAt)
	}
	*c = Connection(v)
	return nil
}

// HasSecret reports whether a password is stored.
func (c *Connection) HasSecret() bool {
	return c.EncryptedPassword != ""
}

// Address renders "hostname:port".
func (c *Connection) Address() string {
	return fmt.Sprintf("%s:%d", c.Hostname, c.Port)
}

// Normalize trims the free-text identity fields.
func (c *Connection) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Hostname = strings.TrimSpace(c.Hostname)
	c.Username = strings.TrimSpace(c.Username)
	c.Notes = strings.TrimSpace(c.Notes)
}

// Duplicate copies every user-editable field, clears identity and
// timestamps and marks the name as a copy.
func (c *Connection) Duplicate() Connection {
	dup := *c
	dup.ID = 0
	dup.CreatedAt = time.Time{}
	dup.LastConnected = nil
	dup.Name = c.Name + common.CopySuffix
	if c.CategoryID != nil {
		id := *c.CategoryID
		dup.CategoryID = &id
	}
	return dup
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports every failing field in a
// *common.ValidationError.
func (c *Connection) Validate() error {
	ve := &common.ValidationError{Reason: "invalid value"}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
		for _, fe := range verrs {
			ve.Fields = append(ve.Fields, jsonFieldName(fe.StructField()))
		}
	}
	// single-line fields; hostname and username are written into descriptor lines
	if hasControl(c.Name) && !slices.Contains(ve.Fields, "name") {
		ve.Fields = append(ve.Fields, "name")
	}
	if strings.ContainsAny(c.Hostname, " \t/\\") || hasControl(c.Hostname) {
		if !slices.Contains(ve.Fields, "hostname") {
			ve.Fields = append(ve.Fields, "hostname")
		}
	}
	if hasControl(c.Username) {
		ve.Fields = append(ve.Fields, "username")
	}

	if len(ve.Fields) == 0 {
		return nil
	}
	return ve
}

func hasControl(s string) bool {
	return strings.ContainsFunc(s, unicode.IsControl)
}

var jsonNames = map[string]string{
	"Name":          "name",
	"Hostname":      "hostname",
	"Port":          "port",
	"ScreenMode":    "screen_mode",
	"DesktopWidth":  "desktop_width",
	"DesktopHeight": "desktop_height",
	"ColorDepth":    "color_depth",
}

func jsonFieldName(structField string) string {
	if n, ok := jsonNames[structField]; ok {
		return n
	}
	return strings.ToLower(structField)
}

// ParseColorDepth parses a bits-per-pixel value and checks it is supported.
func ParseColorDepth(s string) (ColorDepth, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err == nil {
		for _, d := range ColorDepths {
			if ColorDepth(n) == d {
				return d, nil
			}
		}
	}
	return 0, common.NewValidationError("color_depth", "expected one of 15, 16, 24, 32")
}
