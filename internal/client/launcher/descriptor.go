package launcher

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
	"github.com/dmitrijs2005/rdpmanager/internal/common"
)

// DescriptorExt is the file extension the native client expects.
const DescriptorExt = ".rdp"

// RenderDescriptor renders the connection file consumed by the native
// remote-desktop client. Line order and keys are fixed by the client.
// Zero-valued display settings fall back to the connection defaults.
func RenderDescriptor(c *models.Connection) string {
	port := c.Port
	if port == 0 {
		port = common.DefaultPort
	}
	mode := c.ScreenMode
	if mode == 0 {
		mode = models.ScreenModeFullscreen
	}
	width := c.DesktopWidth
	if width == 0 {
		width = common.DefaultDesktopWidth
	}
	height := c.DesktopHeight
	if height == 0 {
		height = common.DefaultDesktopHeight
	}
	depth := c.ColorDepth
	if depth == 0 {
		depth = common.DefaultColorDepth
	}

	var b strings.Builder
	fmt.Fprintf(&b, "screen mode id:i:%d\n", int(mode))
	b.WriteString("use multimon:i:0\n")
	fmt.Fprintf(&b, "desktopwidth:i:%d\n", width)
	fmt.Fprintf(&b, "desktopheight:i:%d\n", height)
	fmt.Fprintf(&b, "session bpp:i:%d\n", int(depth))
	fmt.Fprintf(&b, "full address:s:%s:%d\n", c.Hostname, port)
	b.WriteString("audiomode:i:0\n")
	b.WriteString("audiocapturemode:i:0\n")
	fmt.Fprintf(&b, "redirectclipboard:i:%d\n", flag(c.RedirectClipboard))
	fmt.Fprintf(&b, "redirectprinters:i:%d\n", flag(c.RedirectPrinters))
	fmt.Fprintf(&b, "redirectdrives:i:%d\n", flag(c.RedirectDrives))
	b.WriteString("redirectcomports:i:0\n")
	b.WriteString("redirectsmartcards:i:0\n")
	fmt.Fprintf(&b, "username:s:%s\n", c.Username)
	b.WriteString("authentication level:i:2\n")
	b.WriteString("prompt for credentials:i:0\n")
	b.WriteString("negotiate security layer:i:1\n")
	return b.String()
}

func flag(v bool) int {
	if v {
		return 1
	}
	return 0
}
