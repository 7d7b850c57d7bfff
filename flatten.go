package iconset

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/esimov/iconset/imop"
)

// Flatten collapses img onto an opaque background, discarding transparency.
//
// The color channels are blended over the background using the image alpha
// as weight. The result is fully opaque, so flattening it again yields the
// same pixels. Images without an alpha channel are only converted.
func Flatten(img image.Image, bg color.Color) *image.NRGBA {
	src := imgToNRGBA(img)
	if !hasAlpha(img) || src.Opaque() {
		return cloneOpaque(src)
	}

	b := src.Bounds()
	c := color.NRGBAModel.Convert(bg).(color.NRGBA)
	dst := imaging.Clone(src)

	op := imop.InitOp()
	op.Set(imop.DstOver)
	op.Draw(dst, fill(b.Dx(), b.Dy(), opaque(c)), image.Point{})
	return dst
}

// hasAlpha reports whether the image type carries an alpha channel.
func hasAlpha(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16, *image.YCbCr, *image.CMYK:
		return false
	}
	return true
}

// cloneOpaque returns a copy of src with every alpha forced to 0xff.
func cloneOpaque(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds().Sub(src.Bounds().Min))
	copy(dst.Pix, src.Pix)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
