// Package normalize sizes an imported object and stands it on the ground
// plane, and derives the camera distance and centre used to frame it.
package normalize

import (
	"errors"
	"fmt"
	"math"

	"objview/internal/mathutil"
	"objview/internal/scene"
)

const (
	// DefaultTargetSize is the length of the largest side after Fit.
	DefaultTargetSize = 2.5
	// DefaultMargin multiplies the largest side to get the camera distance.
	DefaultMargin = 1.5
)

// ErrDegenerateGeometry is returned when the bounding box has a zero or
// non-finite extent on any axis.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// Result records what Fit applied.
type Result struct {
	Scale   float64
	OffsetZ float64
	Bounds  mathutil.Box // world bounds after scaling and offset
}

// WorldBounds refreshes transforms and returns the object's world-space box.
func WorldBounds(s *scene.Scene, obj *scene.Object) mathutil.Box {
	s.Update()
	return obj.WorldBounds()
}

// Fit scales obj uniformly so its largest world dimension equals
// targetSize, then moves it along z so its lowest point is at z = 0.
func Fit(s *scene.Scene, obj *scene.Object, targetSize float64) (Result, error) {
	if !(targetSize > 0) {
		return Result{}, fmt.Errorf("normalize: target size %v must be positive", targetSize)
	}

	box := WorldBounds(s, obj)
	if box.Empty() {
		return Result{}, fmt.Errorf("normalize: %q has no geometry: %w", obj.Name, ErrDegenerateGeometry)
	}
	dims := box.Size()
	maxDim := dims.MaxComponent()
	if !(maxDim > 0) || math.IsInf(maxDim, 0) || dims.MinComponent() <= 0 {
		return Result{}, fmt.Errorf("normalize: %q has extent %v: %w", obj.Name, dims, ErrDegenerateGeometry)
	}

	// Multiply so an existing scale on the object still yields targetSize.
	factor := targetSize / maxDim
	obj.Scale = obj.Scale.Scale(factor)

	box = WorldBounds(s, obj)
	offset := -box.Min[2]
	obj.Location[2] += offset

	return Result{
		Scale:   factor,
		OffsetZ: offset,
		Bounds:  WorldBounds(s, obj),
	}, nil
}

// CameraDistance returns the largest world dimension times margin.
func CameraDistance(s *scene.Scene, obj *scene.Object, margin float64) float64 {
	return Distance(WorldBounds(s, obj), margin)
}

// Distance is CameraDistance for an already computed box.
func Distance(box mathutil.Box, margin float64) float64 {
	return box.Size().MaxComponent() * margin
}

// Center returns the centre of the object's world bounding box.
func Center(s *scene.Scene, obj *scene.Object) mathutil.Vec3 {
	return WorldBounds(s, obj).Center()
}
