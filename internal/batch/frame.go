package batch

import (
	"fmt"
	"math"
	"path/filepath"

	"objview/internal/mathutil"
	"objview/internal/output"
)

// Per-frame material color: base + amp * sin(phase * index degrees),
// clamped per channel to [0, 1].
var (
	colorBase  = [4]float64{0.5, 0.5, 0.5, 1.0}
	colorAmp   = [4]float64{0.5, 0.5, 0.5, 1.0}
	colorPhase = [4]float64{1, 2, 3, 4}
)

// FrameColor returns the deterministic RGBA material color for a frame.
func FrameColor(index int) [4]float64 {
	var c [4]float64
	for k := range c {
		v := colorBase[k] + colorAmp[k]*math.Sin(mathutil.Deg2Rad(colorPhase[k]*float64(index)))
		c[k] = math.Min(math.Max(v, 0), 1)
	}
	return c
}

// FrameYaw returns the model's z rotation for a frame: index degrees.
func FrameYaw(index int) float64 {
	return mathutil.Deg2Rad(float64(index))
}

// FrameImageName is the color output file name for a frame.
func FrameImageName(index int, f output.Format) string {
	return fmt.Sprintf("out_%04d%s", index, f.Ext())
}

// FrameImagePath joins FrameImageName onto dir.
func FrameImagePath(dir string, index int, f output.Format) string {
	return filepath.Join(dir, FrameImageName(index, f))
}
