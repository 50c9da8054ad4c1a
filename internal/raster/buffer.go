package raster

import (
	"math"

	"objview/internal/mathutil"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8         // RGBA interleaved, len = W*H*4
	Depth  []float64       // view-axis distance per pixel, +Inf where empty
	Normal []mathutil.Vec3 // world-space face normal per pixel
}

// NewFrameBuffer allocates a zeroed color buffer and +Inf depth buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	depth := make([]float64, n)
	for i := range depth {
		depth[i] = math.Inf(1)
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		Depth:  depth,
		Normal: make([]mathutil.Vec3, n),
	}
}

// Fill sets every color pixel to c.
func (fb *FrameBuffer) Fill(c [4]uint8) {
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = c[0]
		fb.Color[i+1] = c[1]
		fb.Color[i+2] = c[2]
		fb.Color[i+3] = c[3]
	}
}

// Hit reports whether pixel i was covered by geometry.
func (fb *FrameBuffer) Hit(i int) bool {
	return !math.IsInf(fb.Depth[i], 1)
}
