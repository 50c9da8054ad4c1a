package raster

import (
	"math"

	"objview/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters. Directions are in
// camera space (+Y up, +Z towards the viewer), so the rig follows the
// camera and every pose is lit the same way.
type LightConfig struct {
	LightDir  mathutil.Vec3
	RimDir    mathutil.Vec3
	ViewDir   mathutil.Vec3
	HalfMain  mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	SRGBGamma float64
	InvGamma  float64
}

// ReferenceStrength is the world strength the default rig is calibrated for.
const ReferenceStrength = 0.5

// DefaultLightConfig returns the standard three-light rig.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{180, 260, 140}.Normalize()
	rimDir := mathutil.Vec3{-160, 130, -210}.Normalize()
	viewDir := mathutil.Vec3{0, -110, -400}.Normalize()

	halfMain := lightDir.Sub(viewDir).Normalize()

	return LightConfig{
		LightDir:  lightDir,
		RimDir:    rimDir,
		ViewDir:   viewDir,
		HalfMain:  halfMain,
		Ambient:   0.55,
		Hemi:      0.50,
		Direct:    1.50,
		Rim:       0.60,
		SpecInt:   0.45,
		SpecPow:   12.0,
		Exposure:  1.05,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
}

// WithWorldStrength scales the environment terms (ambient and hemisphere)
// by strength relative to ReferenceStrength.
func (lc LightConfig) WithWorldStrength(strength float64) LightConfig {
	k := strength / ReferenceStrength
	lc.Ambient *= k
	lc.Hemi *= k
	return lc
}

// ComputeShade returns the combined lighting scalar for a face normal.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	// Lambertian (abs for double-sided)
	ndlMain := math.Abs(normal.Dot(lc.LightDir))
	ndlRim := math.Abs(normal.Dot(lc.RimDir))

	// Hemisphere fill
	hemi := (1.0-math.Abs(normal[1]))*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	// Blinn-Phong specular
	ndh := normal.Dot(lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// ShadeColor applies shade, exposure, ACES and sRGB encoding to a linear
// color and returns 8-bit channels.
func (lc *LightConfig) ShadeColor(linear [3]float64, shade float64) [3]uint8 {
	var out [3]uint8
	for k := 0; k < 3; k++ {
		t := ACESTonemap(linear[k] * shade * lc.Exposure)
		out[k] = clamp255(math.Pow(math.Max(t, 0), lc.InvGamma) * 255)
	}
	return out
}

// EncodeSRGB converts a linear value in [0, 1] to an 8-bit sRGB channel.
func (lc *LightConfig) EncodeSRGB(linear float64) uint8 {
	return clamp255(math.Pow(math.Max(linear, 0), lc.InvGamma) * 255)
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
