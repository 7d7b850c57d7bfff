package iconset

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
	"sort"
)

// maxICOSize is the largest frame an ICO directory entry can describe.
const maxICOSize = 256

// icoHeaderSize and icoEntrySize are the byte sizes of the ICONDIR header
// and of each ICONDIRENTRY record.
const (
	icoHeaderSize = 6
	icoEntrySize  = 16
)

// EncodeICO writes a multi-resolution Windows icon to w. Every frame is
// resampled from base to the requested square size and stored PNG
// compressed. When opaque is true every frame is written without alpha.
func EncodeICO(w io.Writer, base image.Image, sizes []int, opaque bool) error {
	if len(sizes) == 0 {
		return &Error{Kind: EncodeFailure, Op: "encode ico", Msg: "no frame sizes requested"}
	}
	sizes = append([]int(nil), sizes...)
	sort.Ints(sizes)
	if sizes[0] < 1 || sizes[len(sizes)-1] > maxICOSize {
		return &Error{Kind: EncodeFailure, Op: "encode ico",
			Msg: fmt.Sprintf("frame sizes must be within 1..%d, got %v", maxICOSize, sizes)}
	}

	src := imgToNRGBA(base)
	frames := make([][]byte, 0, len(sizes))
	depths := make([]uint16, 0, len(sizes))
	for _, s := range sizes {
		frame := squareFrame(src, s, opaque)

		var buf bytes.Buffer
		if err := png.Encode(&buf, frame); err != nil {
			return newError(EncodeFailure, "encode ico frame", "", err)
		}
		frames = append(frames, buf.Bytes())
		// The png encoder drops the alpha channel of fully opaque frames.
		depth := uint16(32)
		if frame.Opaque() {
			depth = 24
		}
		depths = append(depths, depth)
	}

	var out bytes.Buffer
	// Header: reserved, type (1=ICO), count.
	binary.Write(&out, binary.LittleEndian, [3]uint16{0, 1, uint16(len(sizes))})

	offset := uint32(icoHeaderSize + icoEntrySize*len(sizes))
	for i, s := range sizes {
		dim := uint8(s)
		if s >= maxICOSize {
			dim = 0 // 0 means 256
		}
		out.Write([]byte{dim, dim, 0, 0})                               // width, height, palette, reserved
		binary.Write(&out, binary.LittleEndian, uint16(1))              // color planes
		binary.Write(&out, binary.LittleEndian, depths[i])              // bits per pixel
		binary.Write(&out, binary.LittleEndian, uint32(len(frames[i]))) // data size
		binary.Write(&out, binary.LittleEndian, offset)                 // data offset
		offset += uint32(len(frames[i]))
	}
	for _, f := range frames {
		out.Write(f)
	}

	if _, err := out.WriteTo(w); err != nil {
		return newError(EncodeFailure, "write ico", "", err)
	}
	return nil
}
