package iconset

import (
	"fmt"
	"image"
	"image/color"

	"github.com/esimov/iconset/imop"
)

// Composited is a canvas ready for format encoding.
//
// When Transparent is false the image is in RGB mode: every pixel is opaque
// and the encoders write it without an alpha channel.
type Composited struct {
	Image       *image.NRGBA
	Transparent bool
	// Content is the area of the canvas covered by the rendered source.
	Content image.Rectangle
}

// Composite renders the request source and places it on a canvas of the
// requested size, honoring the zoom, padding and background settings.
//
// The content is asked from the rasterizer at the zoomed work area size,
// shrunk again if it overshoots the work area because of rounding, and
// centered on the canvas using floor division.
func Composite(req RenderRequest, r Rasterizer) (*Composited, error) {
	g := req.geometry()
	bg := opaque(req.Background)

	content, err := r.Rasterize(req.Source, g.render.X, g.render.Y, req.Transparent, bg)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, &Error{Kind: SourceInvalid, Op: "rasterize", Path: req.Source, Msg: "no image returned"}
	}
	content = shrinkToFit(content, g.work)

	var canvas *image.NRGBA
	if req.Transparent {
		canvas = fill(g.canvas.X, g.canvas.Y, color.NRGBA{})
	} else {
		canvas = fill(g.canvas.X, g.canvas.Y, bg)
	}

	size := content.Bounds().Size()
	at := centerOffset(g.canvas, size)

	op := imop.InitOp()
	op.Set(imop.SrcOver)
	op.Draw(canvas, content, at)

	return &Composited{
		Image:       canvas,
		Transparent: req.Transparent,
		Content:     image.Rectangle{Min: at, Max: at.Add(size)},
	}, nil
}

// centerOffset returns the top-left point centering content inside canvas.
// Odd differences place the content one pixel closer to the top-left corner.
func centerOffset(canvas, content image.Point) image.Point {
	return image.Pt((canvas.X-content.X)/2, (canvas.Y-content.Y)/2)
}

// String describes the canvas, mostly for logging.
func (c *Composited) String() string {
	mode := "RGB"
	if c.Transparent {
		mode = "RGBA"
	}
	b := c.Image.Bounds()
	return fmt.Sprintf("%dx%d %s content=%v", b.Dx(), b.Dy(), mode, c.Content)
}
