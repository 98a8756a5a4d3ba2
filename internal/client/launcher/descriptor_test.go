package launcher

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDescriptor_FieldMapping(t *testing.T) {
	c := models.Connection{
		Hostname:          "10.1.1.5",
		Port:              3390,
		ScreenMode:        models.ScreenModeWindowed,
		DesktopWidth:      1280,
		DesktopHeight:     800,
		ColorDepth:        16,
		RedirectClipboard: true,
		Username:          "alice",
	}

	got := RenderDescriptor(&c)

	want := `screen mode id:i:1
use multimon:i:0
desktopwidth:i:1280
desktopheight:i:800
session bpp:i:16
full address:s:10.1.1.5:3390
audiomode:i:0
audiocapturemode:i:0
redirectclipboard:i:1
redirectprinters:i:0
redirectdrives:i:0
redirectcomports:i:0
redirectsmartcards:i:0
username:s:alice
authentication level:i:2
prompt for credentials:i:0
negotiate security layer:i:1
`
	assert.Equal(t, want, got)
}

func TestRenderDescriptor_Defaults(t *testing.T) {
	c := models.NewConnection()
	c.Hostname = "srv"

	lines := strings.Split(strings.TrimSpace(RenderDescriptor(&c)), "\n")
	require.Len(t, lines, 17)
	assert.Equal(t, "screen mode id:i:2", lines[0])
	assert.Equal(t, "desktopwidth:i:1920", lines[2])
	assert.Equal(t, "desktopheight:i:1080", lines[3])
	assert.Equal(t, "session bpp:i:32", lines[4])
	assert.Equal(t, "full address:s:srv:3389", lines[5])
	assert.Equal(t, "redirectclipboard:i:1", lines[8])
	assert.Equal(t, "username:s:", lines[13])
}

func TestRenderDescriptor_ZeroValuesFallBack(t *testing.T) {
	got := RenderDescriptor(&models.Connection{Hostname: "h"})

	assert.Contains(t, got, "screen mode id:i:2\n")
	assert.Contains(t, got, "full address:s:h:3389\n")
	assert.Contains(t, got, "session bpp:i:32\n")
	assert.Contains(t, got, "redirectclipboard:i:0\n")
}
