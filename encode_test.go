package iconset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// disc returns a composited canvas with a transparent frame around an opaque red square.
func disc(t *testing.T, transparent bool) *Composited {
	t.Helper()

	req := RenderRequest{
		Width:  32,
		Height: 32,
		Params: Params{Zoom: 0.5, Transparent: transparent, Background: white},
	}
	c, err := Composite(req, &fakeRasterizer{color: red})
	require.NoError(t, err)
	return c
}

func TestEncode_ParseFormat(t *testing.T) {
	testCases := map[string]Format{
		"png":   PNG,
		"PNG":   PNG,
		".jpg":  JPG,
		"jpeg":  JPG,
		" bmp ": BMP,
		"pdf":   PDF,
		"ico":   ICO,
		"ICNS":  ICNS,
	}
	for in, want := range testCases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("tiff")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestEncode_FormatTraits(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(".png", PNG.Ext())
	assert.Equal(".icns", ICNS.Ext())
	assert.True(PNG.AllowsAlpha())
	assert.True(ICO.AllowsAlpha())
	assert.False(JPG.AllowsAlpha())
	assert.False(PDF.AllowsAlpha())
	assert.True(ICO.Container())
	assert.False(BMP.Container())
}

func TestEncode_PNGKeepsAlpha(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encoder{}.Encode(&buf, disc(t, true), PNG, white))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.IsType(t, &image.NRGBA{}, img)
	assert.Equal(t, uint8(0), nrgbaAt(img, 0, 0).A)
	assert.Equal(t, red, nrgbaAt(img, 16, 16))
}

func TestEncode_PNGWithoutTransparencyIsRGB(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encoder{}.Encode(&buf, disc(t, false), PNG, white))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	// Opaque buffers are written as 8-bit RGB, which decodes to *image.RGBA.
	assert.IsType(t, &image.RGBA{}, img)
	assert.Equal(t, white, nrgbaAt(img, 0, 0))
}

func TestEncode_JPGIsFlattened(t *testing.T) {
	var buf bytes.Buffer
	// Even a transparent canvas is flattened onto the background.
	require.NoError(t, Encoder{JPEGQuality: 90}.Encode(&buf, disc(t, true), JPG, white))

	img, err := jpeg.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(32, 32), img.Bounds().Size())

	corner := nrgbaAt(img, 0, 0)
	assert.Greater(t, corner.R, uint8(0xf0))
	assert.Greater(t, corner.G, uint8(0xf0))
	assert.Greater(t, corner.B, uint8(0xf0))
}

func TestEncode_BMPIsOpaque(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encoder{}.Encode(&buf, disc(t, true), BMP, color.NRGBA{B: 0xff, A: 0xff}))

	img, err := bmp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{B: 0xff, A: 0xff}, nrgbaAt(img, 0, 0))
	assert.Equal(t, red, nrgbaAt(img, 16, 16))
}

func TestEncode_PDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encoder{}.Encode(&buf, disc(t, false), PDF, white))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "/Subtype /Image")
}

func TestEncode_RejectsContainers(t *testing.T) {
	for _, f := range []Format{ICO, ICNS} {
		err := Encoder{}.Encode(&bytes.Buffer{}, disc(t, true), f, white)
		assert.True(t, errors.Is(err, ErrInvalidArgument), f)
	}
}

func TestEncode_PrepareRules(t *testing.T) {
	img := disc(t, true).Image

	testCases := []struct {
		format      Format
		transparent bool
		opaque      bool
	}{
		{PNG, true, false},
		{PNG, false, true},
		{JPG, true, true},
		{BMP, true, true},
		{PDF, true, true},
		{ICO, true, false},
		{ICO, false, true},
		{ICNS, true, false},
		{ICNS, false, true},
	}
	for _, tc := range testCases {
		out := prepare(img, tc.format, tc.transparent, white)
		assert.Equal(t, tc.opaque, out.Opaque(), "%s transparent=%v", tc.format, tc.transparent)
	}
}
