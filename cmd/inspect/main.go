package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"objview/internal/mathutil"
	"objview/internal/mesh"
	"objview/internal/normalize"
	"objview/internal/pose"
	"objview/internal/scene"
)

func main() {
	var (
		targetSize float64
		margin     float64
	)
	cmd := &cobra.Command{
		Use:          "inspect <model.obj>",
		Short:        "Print bounds, normalization and camera path sizes for an OBJ model",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return inspect(args[0], targetSize, margin)
		},
	}
	cmd.Flags().Float64Var(&targetSize, "target-size", normalize.DefaultTargetSize, "Largest side after normalization")
	cmd.Flags().Float64Var(&margin, "margin", normalize.DefaultMargin, "Camera distance multiplier")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func inspect(path string, targetSize, margin float64) error {
	m, err := mesh.LoadOBJ(path)
	if err != nil {
		return err
	}
	fmt.Printf("Mesh %q: verts=%d, tris=%d\n", m.Name, len(m.Verts), len(m.Tris))
	printBox("Local", m.Bounds())
	printAreaByDirection(m)

	s := scene.New()
	s.Clear()
	obj, err := s.Import(path, "", true)
	if err != nil {
		return err
	}
	fit, err := normalize.Fit(s, obj, targetSize)
	if err != nil {
		return err
	}
	fmt.Printf("Normalized: scale=%.6f, offset_z=%.4f\n", fit.Scale, fit.OffsetZ)
	printBox("World", fit.Bounds)

	distance := normalize.CameraDistance(s, obj, margin)
	center := normalize.Center(s, obj)
	fmt.Printf("Camera distance: %.4f, centre: (%.3f, %.3f, %.3f)\n", distance, center[0], center[1], center[2])

	tt := pose.NewTurntable(center, obj.Location, distance)
	fmt.Printf("Turntable poses: %d\n", tt.Len())
	fmt.Printf("Table poses: %d\n", pose.DefaultTable().Len())
	return nil
}

func printBox(label string, b mathutil.Box) {
	size := b.Size()
	fmt.Printf("  %s BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n",
		label, b.Min[0], b.Max[0], b.Min[1], b.Max[1], b.Min[2], b.Max[2])
	fmt.Printf("  %s Size: %.3f x %.3f x %.3f\n", label, size[0], size[1], size[2])
}

// printAreaByDirection buckets triangle area by dominant face normal axis.
func printAreaByDirection(m *mesh.Mesh) {
	areaByDir := map[string]float64{}
	for _, tri := range m.Tris {
		v0, v1, v2 := m.Verts[tri[0]], m.Verts[tri[1]], m.Verts[tri[2]]
		c := v1.Sub(v0).Cross(v2.Sub(v0))
		area := 0.5 * c.Len()
		ax, ay, az := math.Abs(c[0]), math.Abs(c[1]), math.Abs(c[2])
		dir := ""
		switch {
		case ax >= ay && ax >= az:
			if c[0] > 0 {
				dir = "+X(right)"
			} else {
				dir = "-X(left)"
			}
		case ay >= ax && ay >= az:
			if c[1] > 0 {
				dir = "+Y(back)"
			} else {
				dir = "-Y(front)"
			}
		default:
			if c[2] > 0 {
				dir = "+Z(top)"
			} else {
				dir = "-Z(bottom)"
			}
		}
		areaByDir[dir] += area
	}
	fmt.Println("  --- Surface area by direction ---")
	for _, d := range []string{"-Y(front)", "+Y(back)", "+X(right)", "-X(left)", "+Z(top)", "-Z(bottom)"} {
		fmt.Printf("  %s: %.3f sq units\n", d, areaByDir[d])
	}
}
