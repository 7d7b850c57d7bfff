package iconset

import (
	"image"
	"image/color"

	"github.com/esimov/iconset/utils"
)

// Zoom limits. Zoom only shrinks the content, it never scales past the 1:1 fit.
const (
	MinZoom = 0.1
	MaxZoom = 1.0
)

// Params holds the render options shared by every size of an export.
type Params struct {
	Zoom        float64     // fraction of the work area used by the content, clamped into [MinZoom, MaxZoom]
	Padding     int         // pixels kept free on each side of the canvas
	Transparent bool        // keep the alpha channel where the format allows it
	Background  color.NRGBA // canvas color; its alpha component is ignored
}

// DefaultParams returns full zoom, no padding, a transparent canvas and a white background.
func DefaultParams() Params {
	return Params{
		Zoom:        MaxZoom,
		Transparent: true,
		Background:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// RenderRequest describes one canvas to be rendered from a source.
type RenderRequest struct {
	Source string
	Width  int
	Height int
	Params
}

// geometry holds the sizes derived from a request.
type geometry struct {
	canvas image.Point // full output size
	work   image.Point // canvas minus padding
	render image.Point // size requested from the rasterizer
}

// clampZoom keeps the zoom factor inside [MinZoom, MaxZoom].
func clampZoom(z float64) float64 {
	if z != z { // NaN
		return MaxZoom
	}
	return utils.Min(MaxZoom, utils.Max(MinZoom, z))
}

// geometry computes the canvas, work area and render size of the request.
func (r RenderRequest) geometry() geometry {
	zoom := clampZoom(r.Zoom)
	pad := utils.Max(0, r.Padding)

	cw := utils.Max(1, r.Width)
	ch := utils.Max(1, r.Height)

	ww := utils.Max(1, cw-2*pad)
	wh := utils.Max(1, ch-2*pad)

	return geometry{
		canvas: image.Pt(cw, ch),
		work:   image.Pt(ww, wh),
		render: image.Pt(
			utils.Max(1, int(float64(ww)*zoom)),
			utils.Max(1, int(float64(wh)*zoom)),
		),
	}
}
