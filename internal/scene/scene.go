package scene

import (
	"fmt"

	"objview/internal/mathutil"
	"objview/internal/mesh"
)

// DefaultCameraName is the camera every new scene starts with.
const DefaultCameraName = "Camera"

// World is the environment: background colour and light strength.
type World struct {
	Color    mathutil.Vec3
	Strength float64
}

// Scene is the explicit context every operation receives. It owns the
// objects, the world settings and the current frame counter.
type Scene struct {
	World World
	Frame int

	objects []*Object
}

// New returns a scene holding only the default camera.
func New() *Scene {
	s := &Scene{World: World{Color: mathutil.Vec3{1, 1, 1}, Strength: 1}}
	cam := newObject(DefaultCameraName)
	cam.Camera = &Camera{FOV: mathutil.Deg2Rad(39.6), ClipStart: 0.1, ClipEnd: 100}
	cam.Location = mathutil.Vec3{7.36, -6.93, 4.96}
	cam.Rotation = mathutil.Deg2RadVec(mathutil.Vec3{63.6, 0, 46.7})
	s.objects = append(s.objects, cam)
	s.Update()
	return s
}

// Clear removes every mesh object. Cameras are kept.
func (s *Scene) Clear() {
	kept := s.objects[:0]
	for _, o := range s.objects {
		if o.IsCamera() {
			kept = append(kept, o)
		}
	}
	for i := len(kept); i < len(s.objects); i++ {
		s.objects[i] = nil
	}
	s.objects = kept
}

// Objects returns all objects in insertion order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Meshes returns the objects that carry geometry.
func (s *Scene) Meshes() []*Object {
	var out []*Object
	for _, o := range s.objects {
		if o.Mesh != nil {
			out = append(out, o)
		}
	}
	return out
}

// Object looks an object up by name.
func (s *Scene) Object(name string) (*Object, error) {
	for _, o := range s.objects {
		if o.Name == name {
			return o, nil
		}
	}
	return nil, fmt.Errorf("scene: object %q: %w", name, ErrMissingSceneObject)
}

// Camera looks up a camera object by name.
func (s *Scene) Camera(name string) (*Object, error) {
	o, err := s.Object(name)
	if err != nil {
		return nil, err
	}
	if !o.IsCamera() {
		return nil, fmt.Errorf("scene: %q is not a camera: %w", name, ErrMissingSceneObject)
	}
	return o, nil
}

// AddMesh links a mesh into the scene under a unique name derived from
// name and returns the new object.
func (s *Scene) AddMesh(name string, m *mesh.Mesh) *Object {
	o := newObject(s.uniqueName(name))
	o.Mesh = m
	o.Material = DefaultMaterial()
	s.objects = append(s.objects, o)
	return o
}

// Import loads an OBJ file as a new object. With center set the geometry
// is moved so its bounding-box centre is the object origin.
func (s *Scene) Import(path, name string, center bool) (*Object, error) {
	m, err := mesh.LoadOBJ(path)
	if err != nil {
		return nil, fmt.Errorf("scene: import %s: %w: %w", path, ErrAssetLoad, err)
	}
	if center {
		m.Recenter()
	}
	if name == "" {
		name = m.Name
	}
	return s.AddMesh(name, m), nil
}

// AddPlane creates a 2×2 plane with the given transform. rotation is XYZ
// Euler in radians.
func (s *Scene) AddPlane(name string, location, rotation, scale mathutil.Vec3) *Object {
	o := s.AddMesh(name, mesh.Plane())
	o.Location = location
	o.Rotation = rotation
	o.Scale = scale
	return o
}

// Update recomputes every object's world matrix. Bounding boxes and the
// renderer read the cached matrices, so call it after moving anything.
func (s *Scene) Update() {
	for _, o := range s.objects {
		o.matrixWorld = o.evalMatrix()
	}
}

func (s *Scene) uniqueName(name string) string {
	if name == "" {
		name = "Object"
	}
	taken := func(n string) bool {
		for _, o := range s.objects {
			if o.Name == n {
				return true
			}
		}
		return false
	}
	if !taken(name) {
		return name
	}
	for i := 1; ; i++ {
		n := fmt.Sprintf("%s.%03d", name, i)
		if !taken(n) {
			return n
		}
	}
}
