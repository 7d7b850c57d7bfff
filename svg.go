package iconset

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// SVGRasterizer renders SVG documents with the pure Go oksvg/rasterx stack.
//
// The drawing keeps the aspect ratio of its viewBox and is centered inside
// the requested box (the SVG "xMidYMid meet" behavior).
type SVGRasterizer struct{}

// Rasterize implements the Rasterizer interface.
func (SVGRasterizer) Rasterize(src string, width, height int, transparent bool, bg color.NRGBA) (*image.NRGBA, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, newError(SourceInvalid, "open source", src, err)
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f, oksvg.WarnErrorMode)
	if err != nil {
		return nil, newError(SourceInvalid, "parse svg", src, err)
	}

	w, h := float64(width), float64(height)
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		vw, vh = w, h
	}
	scale := fitScale(vw, vh, w, h)
	ow, oh := vw*scale, vh*scale
	icon.SetTarget((w-ow)/2, (h-oh)/2, ow, oh)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if !transparent {
		draw.Draw(img, img.Bounds(), &image.Uniform{opaque(bg)}, image.Point{}, draw.Src)
	}

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return imgToNRGBA(img), nil
}
