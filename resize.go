package iconset

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/esimov/iconset/utils"
)

// RasterResizer is the rasterizer used for raster sources. The source pixels
// are loaded and resampled to the exact target size with a Lanczos filter.
type RasterResizer struct{}

// Rasterize implements the Rasterizer interface.
func (RasterResizer) Rasterize(src string, width, height int, transparent bool, bg color.NRGBA) (*image.NRGBA, error) {
	img, err := decodeImg(src)
	if err != nil {
		return nil, err
	}

	res := imaging.Resize(imgToNRGBA(img), width, height, imaging.Lanczos)
	if !transparent {
		res = Flatten(res, bg)
	}
	return res, nil
}

// shrinkToFit scales content down uniformly, preserving its aspect ratio,
// until it fits inside box. Content already fitting is returned unchanged.
func shrinkToFit(content *image.NRGBA, box image.Point) *image.NRGBA {
	cw, ch := content.Bounds().Dx(), content.Bounds().Dy()
	scale := fitScale(float64(cw), float64(ch), float64(box.X), float64(box.Y))
	if scale >= 1.0 {
		return content
	}
	nw := utils.Max(1, int(float64(cw)*scale))
	nh := utils.Max(1, int(float64(ch)*scale))
	return imaging.Resize(content, nw, nh, imaging.Lanczos)
}

// squareFrame resamples src to a side x side container frame. When opaque
// is set every alpha of the frame is forced to 0xff.
func squareFrame(src *image.NRGBA, side int, opaque bool) *image.NRGBA {
	frame := src
	if b := src.Bounds(); b.Dx() != side || b.Dy() != side {
		frame = imaging.Resize(src, side, side, imaging.Lanczos)
	}
	if opaque {
		frame = cloneOpaque(frame)
	}
	return frame
}
