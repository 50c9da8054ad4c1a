package mathutil

import "math"

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec3
	Max Vec3
}

// EmptyBox returns an inverted box that any Extend call will overwrite.
func EmptyBox() Box {
	return Box{
		Min: Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// BoxOf returns the smallest box containing all points.
func BoxOf(points []Vec3) Box {
	b := EmptyBox()
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}

func (b Box) Extend(p Vec3) Box {
	return Box{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Empty reports whether no point was ever added.
func (b Box) Empty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Size returns max - min per axis.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Corners returns the eight corners, ordered with x varying slowest.
func (b Box) Corners() [8]Vec3 {
	var c [8]Vec3
	for i := 0; i < 8; i++ {
		p := b.Min
		if i&4 != 0 {
			p[0] = b.Max[0]
		}
		if i&2 != 0 {
			p[1] = b.Max[1]
		}
		if i&1 != 0 {
			p[2] = b.Max[2]
		}
		c[i] = p
	}
	return c
}

// Transform maps the eight corners through m and returns their bounding box.
func (b Box) Transform(m Mat4) Box {
	out := EmptyBox()
	for _, c := range b.Corners() {
		out = out.Extend(m.MulPoint(c))
	}
	return out
}
