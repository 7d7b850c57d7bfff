package iconset

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest_Geometry(t *testing.T) {
	testCases := []struct {
		name   string
		req    RenderRequest
		work   image.Point
		render image.Point
	}{
		{
			name:   "full zoom without padding",
			req:    RenderRequest{Width: 256, Height: 256, Params: Params{Zoom: 1}},
			work:   image.Pt(256, 256),
			render: image.Pt(256, 256),
		},
		{
			name:   "padding and half zoom",
			req:    RenderRequest{Width: 100, Height: 100, Params: Params{Zoom: 0.5, Padding: 10}},
			work:   image.Pt(80, 80),
			render: image.Pt(40, 40),
		},
		{
			name:   "render size is floored",
			req:    RenderRequest{Width: 101, Height: 51, Params: Params{Zoom: 0.5}},
			work:   image.Pt(101, 51),
			render: image.Pt(50, 25),
		},
		{
			name:   "padding larger than the canvas",
			req:    RenderRequest{Width: 100, Height: 40, Params: Params{Zoom: 1, Padding: 60}},
			work:   image.Pt(1, 1),
			render: image.Pt(1, 1),
		},
		{
			name:   "negative padding counts as none",
			req:    RenderRequest{Width: 64, Height: 32, Params: Params{Zoom: 1, Padding: -8}},
			work:   image.Pt(64, 32),
			render: image.Pt(64, 32),
		},
		{
			name:   "zoom below the minimum",
			req:    RenderRequest{Width: 100, Height: 100, Params: Params{Zoom: 0}},
			work:   image.Pt(100, 100),
			render: image.Pt(10, 10),
		},
		{
			name:   "zoom above the maximum",
			req:    RenderRequest{Width: 100, Height: 100, Params: Params{Zoom: 3}},
			work:   image.Pt(100, 100),
			render: image.Pt(100, 100),
		},
		{
			name:   "tiny canvas never collapses",
			req:    RenderRequest{Width: 3, Height: 3, Params: Params{Zoom: 0.1}},
			work:   image.Pt(3, 3),
			render: image.Pt(1, 1),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := tc.req.geometry()
			assert.Equal(t, image.Pt(tc.req.Width, tc.req.Height), g.canvas)
			assert.Equal(t, tc.work, g.work)
			assert.Equal(t, tc.render, g.render)
		})
	}
}

func TestRequest_ClampZoom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(MinZoom, clampZoom(0))
	assert.Equal(MinZoom, clampZoom(-2))
	assert.Equal(0.75, clampZoom(0.75))
	assert.Equal(MaxZoom, clampZoom(1.5))
	assert.Equal(MaxZoom, clampZoom(math.NaN()))
}

func TestRequest_DefaultParams(t *testing.T) {
	p := DefaultParams()

	assert.Equal(t, MaxZoom, p.Zoom)
	assert.Equal(t, 0, p.Padding)
	assert.True(t, p.Transparent)
	assert.Equal(t, white, p.Background)
}
