// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// Pixels are mixed non-premultiplied and the source can be placed at an
// arbitrary offset inside the destination.
//
// SrcOver centers the rendered content on the export canvas, DstOver
// paints an opaque background behind a transparent image.
package imop

import (
	"image"

	"github.com/esimov/iconset/utils"
)

// The supported composition operations.
const (
	SrcOver = "src_over"
	DstOver = "dst_over"
)

// Composite holds the currently active composition operation.
type Composite struct {
	current string
	ops     []string
}

// InitOp returns a new Composite with SrcOver as the active operation.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops:     []string{SrcOver, DstOver},
	}
}

// Set activates one of the supported composition operations.
// Unsupported operations are ignored.
func (op *Composite) Set(cop string) {
	if utils.Contains(op.ops, cop) {
		op.current = cop
	}
}

// Get returns the currently active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// factors returns the Porter-Duff fractions applied to the source and the backdrop.
func (op *Composite) factors(as, ab float64) (fa, fb float64) {
	if op.current == DstOver {
		return 1 - ab, 1
	}
	return 1, 1 - as
}

// Draw composes src onto dst with the active operation, placing the
// top-left corner of src at the point at of dst. Only the overlapping
// region is touched; dst is modified in place.
func (op *Composite) Draw(dst, src *image.NRGBA, at image.Point) {
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		si := src.PixOffset(sb.Min.X+r.Min.X-at.X, sb.Min.Y+y-at.Y)
		di := dst.PixOffset(r.Min.X, y)

		for x := r.Min.X; x < r.Max.X; x++ {
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]

			// An opaque source fully replaces the backdrop.
			if op.current == SrcOver && s[3] == 0xff {
				copy(d, s)
			} else {
				op.mix(d, s)
			}
			si += 4
			di += 4
		}
	}
}

// mix applies the composition formula to a single non-premultiplied pixel.
func (op *Composite) mix(d, s []uint8) {
	as := float64(s[3]) / 255
	ab := float64(d[3]) / 255

	fa, fb := op.factors(as, ab)
	ao := as*fa + ab*fb
	if ao <= 0 {
		d[0], d[1], d[2], d[3] = 0, 0, 0, 0
		return
	}

	for c := 0; c < 3; c++ {
		v := (as*fa*float64(s[c]) + ab*fb*float64(d[c])) / ao
		d[c] = toUint8(v)
	}
	d[3] = toUint8(ao * 255)
}

// toUint8 rounds and clamps a channel value into the 0..255 range.
func toUint8(v float64) uint8 {
	return uint8(utils.Clamp(v, 0, 255) + 0.5)
}
