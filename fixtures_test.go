package iconset

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// circleSVG is a blue disc of radius 30 centered in a 100×100 viewBox.
const circleSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100" height="100">
	<circle cx="50" cy="50" r="30" fill="#0000ff"/>
</svg>`

// wideSVG is a green rectangle covering a 2:1 viewBox.
const wideSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100" width="200" height="100">
	<rect x="0" y="0" width="200" height="100" fill="#00ff00"/>
</svg>`

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writePNG(t *testing.T, name string, img image.Image) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return writeFile(t, name, buf.String())
}

// fakeRasterizer paints a uniform block and records the requested sizes.
type fakeRasterizer struct {
	color color.NRGBA
	// scale multiplies the returned size, simulating backends overshooting the box.
	scale    float64
	nilImage bool
	err      error
	requests []image.Point
}

func (f *fakeRasterizer) Rasterize(src string, width, height int, transparent bool, bg color.NRGBA) (*image.NRGBA, error) {
	f.requests = append(f.requests, image.Pt(width, height))
	if f.err != nil {
		return nil, f.err
	}
	if f.nilImage {
		return nil, nil
	}
	if f.scale > 0 {
		width = int(float64(width) * f.scale)
		height = int(float64(height) * f.scale)
	}
	return fill(width, height, f.color), nil
}

type icoEntry struct {
	width, height int
	planes, bpp   uint16
	img           image.Image
}

// readICO parses an ICO container with PNG compressed frames.
func readICO(t *testing.T, data []byte) []icoEntry {
	t.Helper()

	require.GreaterOrEqual(t, len(data), icoHeaderSize)
	require.Equal(t, uint16(0), binary.LittleEndian.Uint16(data[0:]))
	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[2:]))
	count := int(binary.LittleEndian.Uint16(data[4:]))

	entries := make([]icoEntry, 0, count)
	for i := 0; i < count; i++ {
		e := data[icoHeaderSize+i*icoEntrySize:]
		size := binary.LittleEndian.Uint32(e[8:])
		offset := binary.LittleEndian.Uint32(e[12:])

		img, err := png.Decode(bytes.NewReader(data[offset : offset+size]))
		require.NoError(t, err)

		w, h := int(e[0]), int(e[1])
		if w == 0 {
			w = 256
		}
		if h == 0 {
			h = 256
		}
		entries = append(entries, icoEntry{
			width:  w,
			height: h,
			planes: binary.LittleEndian.Uint16(e[4:]),
			bpp:    binary.LittleEndian.Uint16(e[6:]),
			img:    img,
		})
	}
	return entries
}

type icnsEntry struct {
	id  string
	img image.Image
}

// readICNS walks the element table of an ICNS container and decodes the
// PNG payload of every element.
func readICNS(t *testing.T, data []byte) []icnsEntry {
	t.Helper()

	require.GreaterOrEqual(t, len(data), 8)
	require.Equal(t, "icns", string(data[:4]))
	require.Equal(t, uint32(len(data)), binary.BigEndian.Uint32(data[4:]))

	var entries []icnsEntry
	for rest := data[8:]; len(rest) > 0; {
		require.GreaterOrEqual(t, len(rest), 8)
		n := binary.BigEndian.Uint32(rest[4:])
		require.GreaterOrEqual(t, n, uint32(8))
		require.LessOrEqual(t, int(n), len(rest))

		img, err := png.Decode(bytes.NewReader(rest[8:n]))
		require.NoError(t, err, string(rest[:4]))
		entries = append(entries, icnsEntry{id: string(rest[:4]), img: img})
		rest = rest[n:]
	}
	return entries
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}
