//go:build !darwin

package iconset

// NativeIconPackager reports that the platform exposes no icon packaging tool.
func NativeIconPackager() (IconPackager, bool) {
	return nil, false
}
