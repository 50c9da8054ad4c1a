// Package pose produces the ordered camera poses a run renders from.
package pose

import (
	"iter"

	"objview/internal/mathutil"
)

// Pose is a camera placement: world position and XYZ Euler rotation in
// radians.
type Pose struct {
	Position mathutil.Vec3
	Rotation mathutil.Vec3
}

// Source yields a finite ordered pose sequence. Poses may be ranged over
// any number of times; each range starts from the first pose.
type Source interface {
	Poses() iter.Seq[Pose]
	Len() int
}

// Collect drains a source into a slice.
func Collect(src Source) []Pose {
	out := make([]Pose, 0, src.Len())
	for p := range src.Poses() {
		out = append(out, p)
	}
	return out
}
