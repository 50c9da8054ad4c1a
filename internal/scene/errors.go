package scene

import "errors"

var (
	// ErrMissingSceneObject is returned when a named object the run depends
	// on is not in the scene.
	ErrMissingSceneObject = errors.New("missing scene object")

	// ErrAssetLoad is returned when a model file cannot be imported.
	ErrAssetLoad = errors.New("asset load failure")
)
