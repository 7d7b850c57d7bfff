package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComp_Basic(t *testing.T) {
	assert := assert.New(t)

	op := InitOp()
	assert.Equal(SrcOver, op.Get())

	op.Set(DstOver)
	assert.Equal(DstOver, op.Get())

	op.Set("unsupported_composite_operation")
	assert.Equal(DstOver, op.Get())

	op.Set(SrcOver)
	assert.Equal(SrcOver, op.Get())
}

func TestComp_Ops(t *testing.T) {
	cyan := color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	magenta := color.NRGBA{R: 233, G: 30, B: 99, A: 255}

	rect := image.Rect(0, 0, 10, 10)
	source := image.NewNRGBA(rect)
	backdrop := image.NewNRGBA(rect)

	draw.Draw(source, image.Rect(0, 4, 6, 10), &image.Uniform{cyan}, image.Point{}, draw.Src)
	draw.Draw(backdrop, image.Rect(4, 0, 10, 6), &image.Uniform{magenta}, image.Point{}, draw.Src)

	// Where only one of the layers is painted it shows through; where both
	// overlap the operation decides which one stays on top.
	testCases := []struct {
		op         string
		topRight   color.NRGBA
		bottomLeft color.NRGBA
		center     color.NRGBA
	}{
		{SrcOver, magenta, cyan, cyan},
		{DstOver, magenta, cyan, magenta},
	}

	for _, tc := range testCases {
		t.Run(tc.op, func(t *testing.T) {
			assert := assert.New(t)

			dst := image.NewNRGBA(rect)
			copy(dst.Pix, backdrop.Pix)

			op := InitOp()
			op.Set(tc.op)
			op.Draw(dst, source, image.Point{})

			assert.EqualValues(tc.topRight, dst.At(9, 0))
			assert.EqualValues(tc.bottomLeft, dst.At(0, 9))
			assert.EqualValues(tc.center, dst.At(5, 5))
		})
	}
}

func TestComp_DstOverPaintsBehind(t *testing.T) {
	assert := assert.New(t)

	dst := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	dst.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 128})

	bg := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	draw.Draw(bg, bg.Bounds(), &image.Uniform{color.NRGBA{B: 255, A: 255}}, image.Point{}, draw.Src)

	op := InitOp()
	op.Set(DstOver)
	op.Draw(dst, bg, image.Point{})

	assert.Equal(color.NRGBA{B: 255, A: 255}, dst.NRGBAAt(0, 0))
	c := dst.NRGBAAt(1, 0)
	assert.Equal(uint8(255), c.A)
	assert.InDelta(128, int(c.R), 1)
	assert.InDelta(127, int(c.B), 1)
}

func TestComp_SrcOverAtOffset(t *testing.T) {
	assert := assert.New(t)

	red := color.NRGBA{R: 255, A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	dst := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{white}, image.Point{}, draw.Src)

	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(src, src.Bounds(), &image.Uniform{red}, image.Point{}, draw.Src)

	op := InitOp()
	op.Draw(dst, src, image.Pt(2, 2))

	assert.EqualValues(white, dst.At(1, 1))
	assert.EqualValues(red, dst.At(2, 2))
	assert.EqualValues(red, dst.At(5, 5))
	assert.EqualValues(white, dst.At(6, 6))
}

func TestComp_SrcOverBlendsHalfTransparentSource(t *testing.T) {
	assert := assert.New(t)

	dst := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	dst.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 0, B: 255, A: 255})

	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 128})

	op := InitOp()
	op.Draw(dst, src, image.Point{})

	c := dst.NRGBAAt(0, 0)
	assert.Equal(uint8(255), c.A)
	assert.InDelta(128, int(c.R), 1)
	assert.InDelta(127, int(c.B), 1)
}

func TestComp_SrcOverKeepsSourceOnTransparentBackdrop(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	want := color.NRGBA{R: 10, G: 200, B: 90, A: 77}
	src.SetNRGBA(0, 0, want)

	op := InitOp()
	op.Draw(dst, src, image.Point{})

	assert.Equal(t, want, dst.NRGBAAt(0, 0))
}

func TestComp_DrawOutsideBoundsIsNoop(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.NRGBA{G: 255, A: 255}}, image.Point{}, draw.Src)

	op := InitOp()
	op.Draw(dst, src, image.Pt(10, 10))

	for _, v := range dst.Pix {
		assert.Equal(t, uint8(0), v)
	}
}
