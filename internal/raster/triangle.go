package raster

import (
	"math"

	"objview/internal/mathutil"
)

// ScreenVert is a projected vertex: pixel coordinates and the reciprocal of
// its view-axis distance, which interpolates linearly in screen space.
type ScreenVert struct {
	X, Y float64
	InvD float64
}

// Surface is the per-face data written to every covered pixel.
type Surface struct {
	Color  [4]uint8      // shaded sRGB color, alpha is coverage
	Normal mathutil.Vec3 // world-space face normal
}

// RasterizeTriangle fills a projected triangle into fb with a nearest-wins
// depth test. Pixels are sampled at their centres; depths beyond clipEnd are
// discarded.
//
// This is the hot path: no allocation in the pixel loop.
func RasterizeTriangle(fb *FrameBuffer, v [3]ScreenVert, surf *Surface, clipEnd float64) {
	x0, y0 := v[0].X, v[0].Y
	x1, y1 := v[1].X, v[1].Y
	x2, y2 := v[2].X, v[2].Y

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-12 && det < 1e-12 {
		return
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	iz0, iz1, iz2 := v[0].InvD, v[1].InvD, v[2].InvD

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			invD := w0*iz0 + w1*iz1 + w2*iz2
			if invD <= 0 {
				continue
			}
			d := 1 / invD
			if d > clipEnd {
				continue
			}

			i := rowOff + sx
			if d >= fb.Depth[i] {
				continue
			}
			fb.Depth[i] = d
			fb.Normal[i] = surf.Normal

			pi := i * 4
			fb.Color[pi] = surf.Color[0]
			fb.Color[pi+1] = surf.Color[1]
			fb.Color[pi+2] = surf.Color[2]
			fb.Color[pi+3] = surf.Color[3]
		}
	}
}
