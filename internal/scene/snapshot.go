package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"objview/internal/mathutil"
)

// Snapshot is a serializable view of the scene for debugging a run.
type Snapshot struct {
	Frame   int              `yaml:"frame"`
	World   WorldSnapshot    `yaml:"world"`
	Objects []ObjectSnapshot `yaml:"objects"`
}

type WorldSnapshot struct {
	Color    [3]float64 `yaml:"color,flow"`
	Strength float64    `yaml:"strength"`
}

type ObjectSnapshot struct {
	Name        string     `yaml:"name"`
	Kind        string     `yaml:"kind"`
	Location    [3]float64 `yaml:"location,flow"`
	RotationDeg [3]float64 `yaml:"rotation_deg,flow"`
	Scale       [3]float64 `yaml:"scale,flow"`

	Vertices  int         `yaml:"vertices,omitempty"`
	Triangles int         `yaml:"triangles,omitempty"`
	BoundsMin *[3]float64 `yaml:"bounds_min,flow,omitempty"`
	BoundsMax *[3]float64 `yaml:"bounds_max,flow,omitempty"`
	Material  *[4]float64 `yaml:"material,flow,omitempty"`

	FOVDeg    float64 `yaml:"fov_deg,omitempty"`
	ClipStart float64 `yaml:"clip_start,omitempty"`
	ClipEnd   float64 `yaml:"clip_end,omitempty"`
}

// Snapshot captures the current state. World bounds use the cached matrices.
func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{
		Frame: s.Frame,
		World: WorldSnapshot{Color: [3]float64(s.World.Color), Strength: s.World.Strength},
	}
	for _, o := range s.objects {
		entry := ObjectSnapshot{
			Name:     o.Name,
			Kind:     "mesh",
			Location: [3]float64(o.Location),
			RotationDeg: [3]float64{
				mathutil.Rad2Deg(o.Rotation[0]),
				mathutil.Rad2Deg(o.Rotation[1]),
				mathutil.Rad2Deg(o.Rotation[2]),
			},
			Scale: [3]float64(o.Scale),
		}
		if o.Camera != nil {
			entry.Kind = "camera"
			entry.FOVDeg = mathutil.Rad2Deg(o.Camera.FOV)
			entry.ClipStart = o.Camera.ClipStart
			entry.ClipEnd = o.Camera.ClipEnd
		}
		if o.Mesh != nil {
			entry.Vertices = len(o.Mesh.Verts)
			entry.Triangles = len(o.Mesh.Tris)
			b := o.WorldBounds()
			bmin, bmax := [3]float64(b.Min), [3]float64(b.Max)
			entry.BoundsMin, entry.BoundsMax = &bmin, &bmax
		}
		if o.Material != nil {
			c := o.Material.Color
			entry.Material = &c
		}
		snap.Objects = append(snap.Objects, entry)
	}
	return snap
}

// SaveSnapshot writes the scene state as YAML to path.
func (s *Scene) SaveSnapshot(path string) error {
	data, err := yaml.Marshal(s.Snapshot())
	if err != nil {
		return fmt.Errorf("scene: marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("scene: snapshot dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("scene: write snapshot %s: %w", path, err)
	}
	return nil
}
