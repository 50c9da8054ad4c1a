package batch

import (
	"errors"
	"fmt"

	"objview/internal/output"
	"objview/internal/raster"
	"objview/internal/scene"
)

// ErrRender marks a frame whose render or export failed. The run stops at
// the first one.
var ErrRender = errors.New("render failed")

// Renderer renders the scene from one camera and exports the color image
// plus every enabled pass.
type Renderer struct {
	Scene    *scene.Scene
	Camera   *scene.Object
	Settings raster.Settings
	Format   output.Format
	Passes   []*output.PassOutput
}

// Written lists the files a RenderImage call produced.
type Written struct {
	Image  string
	Passes map[string]string // pass name -> path
}

// RenderImage renders the current scene state and writes the color image to
// path and each pass for the scene's current frame. Transforms must be up
// to date.
func (r *Renderer) RenderImage(path string) (Written, error) {
	frame, err := raster.Render(r.Scene, r.Camera, r.Settings)
	if err != nil {
		return Written{}, fmt.Errorf("%w: %w", ErrRender, err)
	}
	if err := output.WriteImage(path, frame.Color, r.Format); err != nil {
		return Written{}, fmt.Errorf("%w: %w", ErrRender, err)
	}

	w := Written{Image: path, Passes: make(map[string]string, len(r.Passes))}
	for _, p := range r.Passes {
		pp, err := p.Write(frame, r.Scene.Frame)
		if err != nil {
			return Written{}, fmt.Errorf("%w: %w", ErrRender, err)
		}
		w.Passes[p.Kind.String()] = pp
	}
	return w, nil
}
