package iconset

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
)

// Format is an output file format.
type Format string

// The supported output formats.
const (
	PNG  Format = "png"
	JPG  Format = "jpg"
	BMP  Format = "bmp"
	PDF  Format = "pdf"
	ICO  Format = "ico"
	ICNS Format = "icns"
)

// DefaultJPEGQuality is the JPEG quality used when none is configured.
const DefaultJPEGQuality = 100

// ParseFormat converts a format name or file extension into a Format.
func ParseFormat(s string) (Format, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	switch name {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPG, nil
	case "bmp":
		return BMP, nil
	case "pdf":
		return PDF, nil
	case "ico":
		return ICO, nil
	case "icns":
		return ICNS, nil
	}
	return "", &Error{Kind: InvalidArgument, Op: "parse format", Msg: fmt.Sprintf("unsupported format %q", s)}
}

// Ext returns the file extension of the format, including the leading dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// AllowsAlpha reports whether the format can store an alpha channel.
func (f Format) AllowsAlpha() bool {
	switch f {
	case PNG, ICO, ICNS:
		return true
	}
	return false
}

// Container reports whether the format packs several resolutions in one file.
func (f Format) Container() bool {
	return f == ICO || f == ICNS
}

// prepare applies the per-format opacity rules: alpha survives only for
// formats able to store it and only when transparency was requested.
// Everything else is flattened onto the opaque background.
func prepare(img *image.NRGBA, f Format, transparent bool, bg color.NRGBA) *image.NRGBA {
	if transparent && f.AllowsAlpha() {
		return img
	}
	return Flatten(img, opaque(bg))
}

// Encoder serializes composited canvases into single image files.
type Encoder struct {
	JPEGQuality int
}

// Encode applies the flatten rules of the format to c and writes it to w.
// The container formats (ICO, ICNS) need a set of frames and are rejected;
// see EncodeICO and Exporter for those.
func (e Encoder) Encode(w io.Writer, c *Composited, f Format, bg color.NRGBA) error {
	if f.Container() {
		return &Error{Kind: InvalidArgument, Op: "encode " + string(f), Msg: "container formats are built from a frame set"}
	}
	img := prepare(c.Image, f, c.Transparent, bg)

	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case JPG:
		q := e.JPEGQuality
		if q <= 0 || q > 100 {
			q = DefaultJPEGQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	case BMP:
		err = bmp.Encode(w, img)
	case PDF:
		err = encodePDF(w, img)
	default:
		return &Error{Kind: InvalidArgument, Op: "encode", Msg: fmt.Sprintf("unsupported format %q", f)}
	}
	if err != nil {
		return newError(EncodeFailure, "encode "+string(f), "", err)
	}
	return nil
}
