//go:build darwin

package iconset

import (
	"bytes"
	"os/exec"
)

// iconutil wraps the macOS iconutil command.
type iconutil struct{}

// NativeIconPackager returns the icon packaging tool shipped with the platform.
// On macOS this is iconutil, available on every installation.
func NativeIconPackager() (IconPackager, bool) {
	return iconutil{}, true
}

func (iconutil) Name() string { return "iconutil" }

func (iconutil) PackICNS(iconsetDir, dst string) error {
	var stderr bytes.Buffer
	cmd := exec.Command("iconutil", "-c", "icns", iconsetDir, "-o", dst)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &ToolError{Tool: "iconutil", Output: trimOutput(stderr.Bytes()), Err: err}
	}
	return nil
}
