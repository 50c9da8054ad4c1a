package pose

import (
	"fmt"
	"iter"
	"math"

	"objview/internal/mathutil"
)

// Turntable defaults observed for the procedural camera path.
const (
	DefaultStepDeg     = 5.0
	DefaultSweepDeg    = 180.0
	DefaultRefAngleDeg = 0.0
)

// DefaultHeightOffsets are added to the centre height, one ring each.
var DefaultHeightOffsets = []float64{0, 1, 2}

// Turntable places the camera on horizontal circles of radius Distance
// around Center, one circle per height offset, sweeping azimuth from 0 to
// SweepDeg inclusive in StepDeg increments. After all rings, one extra pose
// per height is emitted at RefAngleDeg. Every pose looks at Target.
type Turntable struct {
	Center        mathutil.Vec3
	Target        mathutil.Vec3
	Distance      float64
	StepDeg       float64
	SweepDeg      float64
	HeightOffsets []float64
	RefAngleDeg   float64
}

// NewTurntable returns a turntable with the default sweep looking at target.
func NewTurntable(center, target mathutil.Vec3, distance float64) *Turntable {
	return &Turntable{
		Center:        center,
		Target:        target,
		Distance:      distance,
		StepDeg:       DefaultStepDeg,
		SweepDeg:      DefaultSweepDeg,
		HeightOffsets: append([]float64(nil), DefaultHeightOffsets...),
		RefAngleDeg:   DefaultRefAngleDeg,
	}
}

// Validate checks the parameters can produce a finite sequence.
func (t *Turntable) Validate() error {
	if !(t.StepDeg > 0) {
		return fmt.Errorf("pose: turntable step %v must be positive", t.StepDeg)
	}
	if t.SweepDeg < 0 {
		return fmt.Errorf("pose: turntable sweep %v must not be negative", t.SweepDeg)
	}
	if !(t.Distance > 0) {
		return fmt.Errorf("pose: turntable distance %v must be positive", t.Distance)
	}
	if len(t.HeightOffsets) == 0 {
		return fmt.Errorf("pose: turntable needs at least one height")
	}
	return nil
}

// angleCount is the number of azimuths in [0, SweepDeg] at StepDeg.
func (t *Turntable) angleCount() int {
	if !(t.StepDeg > 0) || t.SweepDeg < 0 {
		return 0
	}
	return int(math.Floor(t.SweepDeg/t.StepDeg+1e-9)) + 1
}

func (t *Turntable) Len() int {
	n := t.angleCount()
	if n == 0 {
		return 0
	}
	return len(t.HeightOffsets) * (n + 1)
}

func (t *Turntable) Poses() iter.Seq[Pose] {
	return func(yield func(Pose) bool) {
		n := t.angleCount()
		if n == 0 {
			return
		}
		for _, h := range t.HeightOffsets {
			for i := 0; i < n; i++ {
				if !yield(t.at(float64(i)*t.StepDeg, h)) {
					return
				}
			}
		}
		for _, h := range t.HeightOffsets {
			if !yield(t.at(t.RefAngleDeg, h)) {
				return
			}
		}
	}
}

func (t *Turntable) at(angleDeg, heightOffset float64) Pose {
	a := mathutil.Deg2Rad(angleDeg)
	pos := mathutil.Vec3{
		t.Center[0] + t.Distance*math.Cos(a),
		t.Center[1] + t.Distance*math.Sin(a),
		t.Center[2] + heightOffset,
	}
	rot := mathutil.TrackTo(pos, t.Target, mathutil.WorldUp)
	return Pose{Position: pos, Rotation: mathutil.EulerFromMat3(rot)}
}
