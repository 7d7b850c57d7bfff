package iconset

import (
	"fmt"
	"image"
	"io"
	"sort"
	"strings"

	"github.com/jackmordaunt/icns"
)

// IconPackager is a platform provided tool able to pack a directory of
// per-size PNG frames (an ".iconset") into an ICNS container.
type IconPackager interface {
	Name() string
	PackICNS(iconsetDir, dst string) error
}

// ToolError reports an external tool which exited with an error.
type ToolError struct {
	Tool   string
	Output string // diagnostic output of the tool
	Err    error
}

func (e *ToolError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Tool, e.Err, e.Output)
}

func (e *ToolError) Unwrap() error { return e.Err }

// icnsTypes maps frame sizes to the PNG compressed ICNS element types.
var icnsTypes = map[int]string{
	16:   "icp4",
	32:   "icp5",
	64:   "icp6",
	128:  "ic07",
	256:  "ic08",
	512:  "ic09",
	1024: "ic10",
}

// EncodeICNS writes a macOS icon to w with one frame per requested size.
// Every frame is resampled from base and stored PNG compressed. When opaque
// is true every frame is written without alpha.
func EncodeICNS(w io.Writer, base image.Image, sizes []int, opaque bool) error {
	if len(sizes) == 0 {
		return &Error{Kind: EncodeFailure, Op: "encode icns", Msg: "no frame sizes requested"}
	}
	sizes = append([]int(nil), sizes...)
	sort.Ints(sizes)

	src := imgToNRGBA(base)
	set := &icns.IconSet{Icons: make([]*icns.Icon, 0, len(sizes))}
	for _, s := range sizes {
		id, ok := icnsTypes[s]
		if !ok {
			return &Error{Kind: EncodeFailure, Op: "encode icns",
				Msg: fmt.Sprintf("no icns element type for %dx%d frames", s, s)}
		}
		set.Icons = append(set.Icons, &icns.Icon{
			Type:  icns.OsType{ID: id, Size: uint(s)},
			Image: squareFrame(src, s, opaque),
		})
	}
	if _, err := set.WriteTo(w); err != nil {
		return newError(EncodeFailure, "encode icns", "", err)
	}
	return nil
}

// iconsetFrameName returns the file name of a frame inside an iconset directory.
func iconsetFrameName(size int) string {
	return fmt.Sprintf("icon_%dx%d.png", size, size)
}

// trimOutput normalizes the diagnostic output of external tools.
func trimOutput(b []byte) string {
	return strings.TrimSpace(string(b))
}
