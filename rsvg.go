package iconset

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os/exec"
	"strconv"
)

// rsvgCommand is the librsvg command line renderer.
const rsvgCommand = "rsvg-convert"

// RSVGRasterizer renders SVG documents by shelling out to rsvg-convert.
type RSVGRasterizer struct {
	path string
}

// NewRSVGRasterizer resolves the rsvg-convert binary. An empty command means
// the default binary name looked up in PATH. A missing binary is reported as
// BackendUnavailable together with the install instructions for the running OS.
func NewRSVGRasterizer(command string) (*RSVGRasterizer, error) {
	if command == "" {
		command = rsvgCommand
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, &Error{
			Kind: BackendUnavailable,
			Op:   "lookup " + command,
			Err:  err,
			Hint: backendHint(rsvgCommand),
		}
	}
	return &RSVGRasterizer{path: path}, nil
}

// Rasterize implements the Rasterizer interface.
func (r *RSVGRasterizer) Rasterize(src string, width, height int, transparent bool, bg color.NRGBA) (*image.NRGBA, error) {
	args := []string{
		"-f", "png",
		"-w", strconv.Itoa(width),
		"-h", strconv.Itoa(height),
		"--keep-aspect-ratio",
	}
	if !transparent {
		args = append(args, "-b", hexColor(bg))
	}
	args = append(args, src)

	var out, errBuf bytes.Buffer
	cmd := exec.Command(r.path, args...)
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return nil, &Error{Kind: SourceInvalid, Op: "rsvg-convert", Path: src,
				Msg: trimOutput(errBuf.Bytes()), Err: err}
		}
		return nil, &Error{Kind: BackendUnavailable, Op: "rsvg-convert", Err: err, Hint: backendHint(rsvgCommand)}
	}
	if out.Len() == 0 {
		return nil, &Error{Kind: SourceInvalid, Op: "rsvg-convert", Path: src, Msg: "got no data from rsvg-convert"}
	}

	img, err := png.Decode(&out)
	if err != nil {
		return nil, newError(SourceInvalid, "decode rsvg-convert output", src, err)
	}
	return fitInto(imgToNRGBA(img), width, height, transparent, bg), nil
}

// hexColor formats the RGB components of c as #rrggbb.
func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
