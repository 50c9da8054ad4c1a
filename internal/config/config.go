package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"objview/internal/mathutil"
	"objview/internal/output"
	"objview/internal/pose"
)

// Camera path modes.
const (
	ModeTurntable = "turntable"
	ModeTable     = "table"
)

// Pass stem modes: indexed writes the frame index into the stem before the
// output appends the frame number again; constant keeps a fixed stem.
const (
	StemIndexed  = "indexed"
	StemConstant = "constant"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	Model     string `yaml:"model"`
	OutputDir string `yaml:"output_dir"`
	Snapshot  string `yaml:"snapshot"`

	// Scene
	ObjectName    string         `yaml:"object_name"`
	CameraName    string         `yaml:"camera_name"`
	Center        *bool          `yaml:"center"`
	TargetSize    float64        `yaml:"target_size"`
	WorldStrength float64        `yaml:"world_strength"`
	WorldColor    *mathutil.Vec3 `yaml:"world_color,flow"`
	Planes        []Plane        `yaml:"planes"`

	// Camera
	Mode      string            `yaml:"mode"`
	Margin    float64           `yaml:"margin"`
	FOVDeg    float64           `yaml:"fov_deg"`
	ClipStart float64           `yaml:"clip_start"`
	ClipEnd   float64           `yaml:"clip_end"` // 0 in turntable mode: 3 × camera distance
	Turntable Turntable         `yaml:"turntable"`
	Table     []pose.TableEntry `yaml:"table"`

	// Render settings
	Width                 int    `yaml:"width"`
	Height                int    `yaml:"height"`
	Supersample           int    `yaml:"supersample"`
	TransparentBackground bool   `yaml:"transparent_background"`
	Format                string `yaml:"format"`
	DepthReverse          *bool  `yaml:"depth_reverse"`
	StemMode              string `yaml:"stem_mode"`

	// Begin and End are accepted for compatibility with existing job
	// scripts; the run always covers every pose.
	Begin *int `yaml:"begin"`
	End   *int `yaml:"end"`

	LogLevel string `yaml:"log_level"`

	baseDir string
}

// Turntable holds the procedural camera path parameters.
type Turntable struct {
	StepDeg       float64   `yaml:"step_deg"`
	SweepDeg      float64   `yaml:"sweep_deg"`
	HeightOffsets []float64 `yaml:"height_offsets,flow"`
	RefAngleDeg   *float64  `yaml:"ref_angle_deg"`
}

// Plane is an extra ground or backdrop plane added before the model.
type Plane struct {
	Name        string        `yaml:"name"`
	Location    mathutil.Vec3 `yaml:"location,flow"`
	RotationDeg mathutil.Vec3 `yaml:"rotation_deg,flow"`
	Scale       mathutil.Vec3 `yaml:"scale,flow"`
}

// DefaultTablePlanes are the back wall and floor placed for the table path.
func DefaultTablePlanes() []Plane {
	return []Plane{
		{Name: "plane", Location: mathutil.Vec3{0, 1, 0}, RotationDeg: mathutil.Vec3{90, 0, 0}, Scale: mathutil.Vec3{10, 10, 10}},
		{Name: "plane", Location: mathutil.Vec3{0, 0, -1.2}, Scale: mathutil.Vec3{10, 10, 10}},
	}
}

// Load reads a YAML (or JSON) config file and returns Config.
// Fields not set in the file keep their zero values; unknown fields are an
// error. Relative paths in the file resolve against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.baseDir = filepath.Dir(path)

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Model       string
	OutputDir   string
	Mode        string
	Format      string
	Supersample int
	LogLevel    string
	Begin       *int
	End         *int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Model != "" {
		c.Model = flags.Model
	} else {
		c.Model = c.fromFile(c.Model)
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	} else {
		if c.OutputDir == "" {
			c.OutputDir = "renders"
		}
		c.OutputDir = c.fromFile(c.OutputDir)
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.Begin != nil {
		c.Begin = flags.Begin
	}
	if flags.End != nil {
		c.End = flags.End
	}

	if c.Mode == "" {
		c.Mode = ModeTurntable
	}
	table := c.Mode == ModeTable

	// Paths
	if c.Snapshot == "" {
		c.Snapshot = "debug.yaml"
	}

	// Scene
	if c.ObjectName == "" {
		c.ObjectName = "model"
	}
	if c.CameraName == "" {
		c.CameraName = "Camera"
	}
	if c.Center == nil {
		c.Center = ptr(true)
	}
	if c.TargetSize <= 0 {
		c.TargetSize = 2.5
	}
	if c.WorldStrength <= 0 {
		c.WorldStrength = 0.5
	}
	if c.WorldColor == nil {
		c.WorldColor = &mathutil.Vec3{1, 1, 1}
	}
	if c.Planes == nil && table {
		c.Planes = DefaultTablePlanes()
	}

	// Camera
	if c.Margin <= 0 {
		c.Margin = 1.5
	}
	if c.FOVDeg <= 0 {
		if table {
			c.FOVDeg = 39.6
		} else {
			c.FOVDeg = 60
		}
	}
	if c.ClipStart <= 0 {
		c.ClipStart = 0.1
	}
	if c.ClipEnd <= 0 && table {
		c.ClipEnd = 100
	}
	if c.Turntable.StepDeg <= 0 {
		c.Turntable.StepDeg = pose.DefaultStepDeg
	}
	if c.Turntable.SweepDeg <= 0 {
		c.Turntable.SweepDeg = pose.DefaultSweepDeg
	}
	if c.Turntable.HeightOffsets == nil {
		c.Turntable.HeightOffsets = append([]float64(nil), pose.DefaultHeightOffsets...)
	}
	if c.Turntable.RefAngleDeg == nil {
		c.Turntable.RefAngleDeg = ptr(pose.DefaultRefAngleDeg)
	}
	if c.Table == nil && table {
		c.Table = pose.DefaultTable().Entries
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 240
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Format == "" {
		c.Format = string(output.PNG)
	}
	if c.DepthReverse == nil {
		c.DepthReverse = ptr(true)
	}
	if c.StemMode == "" {
		if table {
			c.StemMode = StemConstant
		} else {
			c.StemMode = StemIndexed
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate reports the first setting that cannot drive a run.
func (c *Config) Validate() error {
	if c.Model == "" {
		return errors.New("config: model path is required")
	}
	switch c.Mode {
	case ModeTurntable, ModeTable:
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	switch c.StemMode {
	case StemIndexed, StemConstant:
	default:
		return fmt.Errorf("config: unknown stem mode %q", c.StemMode)
	}
	if _, err := output.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.FOVDeg >= 180 {
		return fmt.Errorf("config: fov_deg %v must be below 180", c.FOVDeg)
	}
	if c.ClipEnd > 0 && c.ClipEnd <= c.ClipStart {
		return fmt.Errorf("config: clip_end %v must exceed clip_start %v", c.ClipEnd, c.ClipStart)
	}
	if c.Mode == ModeTable && len(c.Table) == 0 {
		return errors.New("config: table mode needs at least one table entry")
	}
	if c.Mode == ModeTurntable && len(c.Turntable.HeightOffsets) == 0 {
		return errors.New("config: turntable needs at least one height offset")
	}
	return nil
}

// RangeRequested reports whether begin or end was given.
func (c *Config) RangeRequested() bool {
	return c.Begin != nil || c.End != nil
}

func (c *Config) fromFile(p string) string {
	if p == "" || c.baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

func ptr[T any](v T) *T {
	return &v
}
