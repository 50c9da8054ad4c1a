package pose

import (
	"iter"

	"objview/internal/mathutil"
)

// TableEntry is one literal camera placement with rotation in degrees.
type TableEntry struct {
	Position    mathutil.Vec3 `json:"position" yaml:"position,flow"`
	RotationDeg mathutil.Vec3 `json:"rotation_deg" yaml:"rotation_deg,flow"`
}

// Table enumerates a fixed list of placements, converting rotations to
// radians as they are yielded.
type Table struct {
	Entries []TableEntry
}

// DefaultTable is the hand-placed camera path framing a model standing in
// front of a back wall.
func DefaultTable() *Table {
	return &Table{Entries: []TableEntry{
		{mathutil.Vec3{0, -10, 3}, mathutil.Vec3{72, 0, 0}},
		{mathutil.Vec3{5, -10, 3}, mathutil.Vec3{73.4, -5.68, 28.6}},
		{mathutil.Vec3{10, -10, 3}, mathutil.Vec3{78.3, 3.94, 45.5}},
		{mathutil.Vec3{15, -10, 3}, mathutil.Vec3{80.9, 6.41, 59.7}},
		{mathutil.Vec3{20, -10, 3}, mathutil.Vec3{79.5, 2.06, 65}},
		{mathutil.Vec3{11.48, -4.5022, 1.5508}, mathutil.Vec3{82.6, 2.91, 73.2}},
		{mathutil.Vec3{11.638, -2.9177, 0.96434}, mathutil.Vec3{86.6, 3.47, 81.3}},
		{mathutil.Vec3{-5, -10, 3}, mathutil.Vec3{72, 0, -26.2}},
		{mathutil.Vec3{-10, -10, 3}, mathutil.Vec3{72, 0, -44.9}},
		{mathutil.Vec3{-15, -10, 3}, mathutil.Vec3{79.1, -4.26, -59.2}},
		{mathutil.Vec3{-10.364, -5.4672, 2.1052}, mathutil.Vec3{73.3, -1.58, -65.1}},
		{mathutil.Vec3{-12.634, -2.9302, 1.8217}, mathutil.Vec3{79.8, -2.93, -78.5}},
		{mathutil.Vec3{-10.614, -1.5011, 1.4917}, mathutil.Vec3{82.3, 6.25, -88.7}},
	}}
}

func (t *Table) Len() int {
	return len(t.Entries)
}

func (t *Table) Poses() iter.Seq[Pose] {
	return func(yield func(Pose) bool) {
		for _, e := range t.Entries {
			p := Pose{Position: e.Position, Rotation: mathutil.Deg2RadVec(e.RotationDeg)}
			if !yield(p) {
				return
			}
		}
	}
}
