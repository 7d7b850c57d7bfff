package iconset

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimov/iconset/imop"
	"github.com/esimov/iconset/utils"
)

// Backend names a vector rasterization backend.
type Backend string

// The supported vector backends.
const (
	BackendBuiltin Backend = "builtin" // pure Go, oksvg + rasterx
	BackendRSVG    Backend = "rsvg"    // librsvg's rsvg-convert binary
)

// Rasterizer turns a source file into a pixel buffer of an exact size.
//
// The returned image is always width×height. When transparent is false the
// buffer is opaque and the uncovered areas are painted with bg.
type Rasterizer interface {
	Rasterize(src string, width, height int, transparent bool, bg color.NRGBA) (*image.NRGBA, error)
}

// NewRasterizer returns the rasterizer able to handle the source file.
// Vector sources are delegated to the requested backend, raster sources
// are handled by a RasterResizer.
func NewRasterizer(src string, backend Backend) (Rasterizer, error) {
	fi, err := os.Stat(src)
	if err != nil {
		return nil, newError(SourceInvalid, "open source", src, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, &Error{Kind: SourceInvalid, Op: "open source", Path: src, Msg: "not a regular file"}
	}

	vector, err := isVector(src)
	if err != nil {
		return nil, newError(SourceInvalid, "open source", src, err)
	}
	if !vector {
		ctype, err := utils.DetectContentType(src)
		if err != nil {
			return nil, newError(SourceInvalid, "open source", src, err)
		}
		if !strings.HasPrefix(ctype, "image/") {
			return nil, &Error{Kind: SourceInvalid, Op: "open source", Path: src,
				Msg: fmt.Sprintf("unsupported content type %s", ctype)}
		}
		return &RasterResizer{}, nil
	}

	switch backend {
	case "", BackendBuiltin:
		return &SVGRasterizer{}, nil
	case BackendRSVG:
		return NewRSVGRasterizer("")
	default:
		return nil, &Error{
			Kind: BackendUnavailable,
			Op:   "select backend",
			Msg:  fmt.Sprintf("unknown backend %q", backend),
			Hint: backendHint(string(backend)),
		}
	}
}

// isVector reports whether the file holds an SVG document.
func isVector(src string) (bool, error) {
	switch strings.ToLower(filepath.Ext(src)) {
	case ".svg":
		return true, nil
	}

	f, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, 1024)
	n, _ := f.Read(head)
	return bytes.Contains(bytes.ToLower(head[:n]), []byte("<svg")), nil
}

// fitInto centers content inside a width×height buffer, scaling it down
// uniformly if it does not fit. Used by the backends which may return
// slightly off-size output.
func fitInto(content *image.NRGBA, width, height int, transparent bool, bg color.NRGBA) *image.NRGBA {
	cw, ch := content.Bounds().Dx(), content.Bounds().Dy()
	if cw == width && ch == height && (transparent || content.Opaque()) {
		return content
	}
	content = shrinkToFit(content, image.Pt(width, height))
	cw, ch = content.Bounds().Dx(), content.Bounds().Dy()

	var dst *image.NRGBA
	if transparent {
		dst = fill(width, height, color.NRGBA{})
	} else {
		dst = fill(width, height, opaque(bg))
	}
	op := imop.InitOp()
	op.Draw(dst, content, image.Pt((width-cw)/2, (height-ch)/2))
	return dst
}

// fitScale returns the uniform scale factor fitting a w×h box inside bw×bh.
func fitScale(w, h, bw, bh float64) float64 {
	return math.Min(bw/w, bh/h)
}

// opaque returns c with its alpha component forced to 0xff.
func opaque(c color.NRGBA) color.NRGBA {
	c.A = 0xff
	return c
}
