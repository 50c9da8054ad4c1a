package mathutil

import "math"

// WorldUp is the scene's vertical axis.
var WorldUp = Vec3{0, 0, 1}

// TrackTo returns the orientation of an object at eye whose local -Z axis
// points at target and whose local +Y axis is as close to up as possible.
// Falls back to world +Y as the up hint when looking straight along up.
func TrackTo(eye, target, up Vec3) Mat3 {
	back := eye.Sub(target).Normalize()
	if back.Len() == 0 {
		return Mat3Identity()
	}
	right := up.Cross(back)
	if right.Len() < 1e-9 {
		right = Vec3{0, 1, 0}.Cross(back)
		if math.Abs(back[1]) > 1-1e-9 {
			right = Vec3{1, 0, 0}
		}
	}
	right = right.Normalize()
	camUp := back.Cross(right)
	return Mat3FromCols(right, camUp, back)
}
