package scene

import (
	"objview/internal/mathutil"
	"objview/internal/mesh"
)

// Object is a scene node: a mesh or a camera with a location, XYZ Euler
// rotation (radians) and scale.
type Object struct {
	Name     string
	Mesh     *mesh.Mesh
	Camera   *Camera
	Material *Material

	Location mathutil.Vec3
	Rotation mathutil.Vec3
	Scale    mathutil.Vec3

	// matrixWorld is only refreshed by Scene.Update.
	matrixWorld mathutil.Mat4
}

func newObject(name string) *Object {
	return &Object{
		Name:        name,
		Scale:       mathutil.Vec3{1, 1, 1},
		matrixWorld: mathutil.Mat4Identity(),
	}
}

// Camera holds perspective projection settings. FOV is in radians and
// spans the larger image dimension.
type Camera struct {
	FOV       float64
	ClipStart float64
	ClipEnd   float64
}

// IsCamera reports whether the object carries camera data.
func (o *Object) IsCamera() bool {
	return o.Camera != nil
}

// MatrixWorld returns the world matrix computed by the last Scene.Update.
func (o *Object) MatrixWorld() mathutil.Mat4 {
	return o.matrixWorld
}

// SetUniformScale sets the same scale on all three axes.
func (o *Object) SetUniformScale(s float64) {
	o.Scale = mathutil.Vec3{s, s, s}
}

// SetOrientation stores a rotation matrix as XYZ Euler angles.
func (o *Object) SetOrientation(r mathutil.Mat3) {
	o.Rotation = mathutil.EulerFromMat3(r)
}

// Orientation returns the rotation matrix of the current Euler angles.
func (o *Object) Orientation() mathutil.Mat3 {
	return mathutil.EulerXYZ(o.Rotation)
}

// LocalBounds returns the mesh bounding box in object space. Objects
// without a mesh report an empty box.
func (o *Object) LocalBounds() mathutil.Box {
	if o.Mesh == nil {
		return mathutil.EmptyBox()
	}
	return o.Mesh.Bounds()
}

// WorldBounds transforms the eight local bounding-box corners by the cached
// world matrix and returns their axis-aligned box.
func (o *Object) WorldBounds() mathutil.Box {
	local := o.LocalBounds()
	if local.Empty() {
		return local
	}
	return local.Transform(o.matrixWorld)
}

func (o *Object) evalMatrix() mathutil.Mat4 {
	return mathutil.Compose(o.Location, mathutil.EulerXYZ(o.Rotation), o.Scale)
}
