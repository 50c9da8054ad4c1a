package batch

import (
	"fmt"
	"path/filepath"
	"time"

	"objview/internal/config"
	"objview/internal/logger"
	"objview/internal/mathutil"
	"objview/internal/normalize"
	"objview/internal/output"
	"objview/internal/pose"
	"objview/internal/raster"
	"objview/internal/scene"
)

const progressInterval = 2 * time.Second

// Summary holds the outcome of a finished run.
type Summary struct {
	Frames   int
	Elapsed  time.Duration
	Manifest string
	Snapshot string
}

// Run executes one render job: reset the scene, import and normalize the
// model, then render every pose of the configured path in order. Frames are
// strictly sequential and the first failure aborts the run. cfg must be
// resolved and valid.
func Run(cfg config.Config, log logger.Logger) (Summary, error) {
	start := time.Now()

	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return Summary{}, err
	}

	// Scene setup
	s := scene.New()
	s.Clear()
	s.World = scene.World{Color: *cfg.WorldColor, Strength: cfg.WorldStrength}

	cam, err := s.Camera(cfg.CameraName)
	if err != nil {
		return Summary{}, fmt.Errorf("batch: %w", err)
	}

	rawDepth, depth := output.EnableDepth(cfg.OutputDir, *cfg.DepthReverse)
	normal := output.EnableNormal(cfg.OutputDir)

	for _, p := range cfg.Planes {
		s.AddPlane(p.Name, p.Location, mathutil.Deg2RadVec(p.RotationDeg), p.Scale)
	}

	model, err := s.Import(cfg.Model, cfg.ObjectName, *cfg.Center)
	if err != nil {
		return Summary{}, fmt.Errorf("batch: %w", err)
	}
	log.Info("Model loaded", "path", cfg.Model, "vertices", len(model.Mesh.Verts), "triangles", len(model.Mesh.Tris))

	fit, err := normalize.Fit(s, model, cfg.TargetSize)
	if err != nil {
		return Summary{}, fmt.Errorf("batch: %w", err)
	}
	log.Info("Model normalized", "scale", fit.Scale, "offset_z", fit.OffsetZ)

	// Camera path
	cam.Camera.FOV = mathutil.Deg2Rad(cfg.FOVDeg)
	cam.Camera.ClipStart = cfg.ClipStart
	cam.Camera.ClipEnd = cfg.ClipEnd

	manifest := Manifest{Model: cfg.Model, Mode: cfg.Mode, Scale: fit.Scale, OffsetZ: fit.OffsetZ}

	var src pose.Source
	switch cfg.Mode {
	case config.ModeTable:
		src = &pose.Table{Entries: cfg.Table}
	default:
		distance := normalize.CameraDistance(s, model, cfg.Margin)
		tt := pose.NewTurntable(normalize.Center(s, model), model.Location, distance)
		tt.StepDeg = cfg.Turntable.StepDeg
		tt.SweepDeg = cfg.Turntable.SweepDeg
		tt.HeightOffsets = cfg.Turntable.HeightOffsets
		tt.RefAngleDeg = *cfg.Turntable.RefAngleDeg
		if err := tt.Validate(); err != nil {
			return Summary{}, fmt.Errorf("batch: %w", err)
		}
		if cam.Camera.ClipEnd <= 0 {
			cam.Camera.ClipEnd = distance * 3
		}
		manifest.CameraDistance = distance
		src = tt
	}

	total := src.Len()
	if cfg.RangeRequested() {
		log.Warn("begin/end do not limit the run; rendering every pose",
			"begin", derefOr(cfg.Begin, -1), "end", derefOr(cfg.End, -1), "poses", total)
	}

	r := &Renderer{
		Scene: s,
		Camera: cam,
		Settings: raster.Settings{
			Width:                 cfg.Width,
			Height:                cfg.Height,
			Supersample:           cfg.Supersample,
			TransparentBackground: cfg.TransparentBackground,
		},
		Format: format,
		Passes: []*output.PassOutput{rawDepth, depth, normal},
	}

	log.Info("Rendering", "mode", cfg.Mode, "poses", total, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "output", cfg.OutputDir)

	// Render loop
	idx := 0
	lastReport := time.Now()
	for p := range src.Poses() {
		cam.Location = p.Position
		cam.Rotation = p.Rotation

		color := FrameColor(idx)
		model.Material = scene.NewMaterial(model.Material, color)
		model.Rotation[2] = FrameYaw(idx)
		s.Frame = idx

		if cfg.StemMode == config.StemIndexed {
			rawDepth.Stem = fmt.Sprintf("depth_%04d", idx)
			depth.Stem = fmt.Sprintf("depth_%04d", idx)
			normal.Stem = fmt.Sprintf("normal_%04d", idx)
		} else {
			rawDepth.Stem = "depth_"
			depth.Stem = "depth_"
			normal.Stem = "normal_"
		}

		s.Update()
		written, err := r.RenderImage(FrameImagePath(cfg.OutputDir, idx, format))
		if err != nil {
			return Summary{Frames: idx, Elapsed: time.Since(start)}, fmt.Errorf("batch: frame %d: %w", idx, err)
		}

		entry := ManifestEntry{
			Frame:    idx,
			Position: [3]float64(p.Position),
			RotationDeg: [3]float64{
				mathutil.Rad2Deg(p.Rotation[0]),
				mathutil.Rad2Deg(p.Rotation[1]),
				mathutil.Rad2Deg(p.Rotation[2]),
			},
			Color:  color,
			YawDeg: float64(idx),
			Image:  relTo(cfg.OutputDir, written.Image),
			Passes: make(map[string]string, len(written.Passes)),
		}
		for k, v := range written.Passes {
			entry.Passes[k] = relTo(cfg.OutputDir, v)
		}
		manifest.Frames = append(manifest.Frames, entry)
		log.Debug("Frame rendered", "frame", idx, "image", entry.Image)

		idx++
		if time.Since(lastReport) >= progressInterval {
			lastReport = time.Now()
			rate := float64(idx) / time.Since(start).Seconds()
			log.Info("Progress", "done", idx, "total", total, "frames_per_sec", fmt.Sprintf("%.1f", rate))
		}
	}

	sum := Summary{Frames: idx}

	sum.Snapshot = filepath.Join(cfg.OutputDir, cfg.Snapshot)
	if err := s.SaveSnapshot(sum.Snapshot); err != nil {
		return sum, fmt.Errorf("batch: %w", err)
	}

	sum.Manifest = filepath.Join(cfg.OutputDir, "manifest.json")
	if err := WriteManifest(sum.Manifest, manifest); err != nil {
		return sum, fmt.Errorf("batch: manifest: %w", err)
	}

	sum.Elapsed = time.Since(start)
	return sum, nil
}

func derefOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
