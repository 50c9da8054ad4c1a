package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objview/internal/config"
	"objview/internal/logger"
	"objview/internal/normalize"
	"objview/internal/scene"
)

const cubeOBJ = `o cube
v -1 -1 -1
v 1 -1 -1
v 1 1 -1
v -1 1 -1
v -1 -1 1
v 1 -1 1
v 1 1 1
v -1 1 1
f 1 4 3 2
f 5 6 7 8
f 1 2 6 5
f 2 3 7 6
f 3 4 8 7
f 4 1 5 8
`

const flatOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

type recordedLog struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []recordedLog
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, recordedLog{level: level, msg: msg})
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.add("debug", msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.add("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.add("warn", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.add("error", msg) }

func (l *recordingLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

func writeModel(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.obj")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func testConfig(t *testing.T, model, mode string) config.Config {
	t.Helper()
	cfg := config.Config{
		Model:       model,
		OutputDir:   filepath.Join(t.TempDir(), "renders"),
		Mode:        mode,
		Width:       16,
		Height:      12,
		Supersample: 1,
	}
	cfg.Resolve(config.Flags{})
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRunTurntable(t *testing.T) {
	cfg := testConfig(t, writeModel(t, cubeOBJ), config.ModeTurntable)

	sum, err := Run(cfg, logger.NewForTests())
	require.NoError(t, err)

	t.Run("Should render every turntable pose", func(t *testing.T) {
		assert.Equal(t, 114, sum.Frames)
		for _, i := range []int{0, 57, 113} {
			assert.FileExists(t, filepath.Join(cfg.OutputDir, fmt.Sprintf("out_%04d.png", i)))
		}
		assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "out_0114.png"))
	})

	t.Run("Should write indexed pass stems with the frame appended", func(t *testing.T) {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, "depth_00070007.png"))
		assert.FileExists(t, filepath.Join(cfg.OutputDir, "depth_00070007_mm.png"))
		assert.FileExists(t, filepath.Join(cfg.OutputDir, "normal_00070007.png"))
	})

	t.Run("Should record the run in the manifest", func(t *testing.T) {
		m, err := ReadManifest(sum.Manifest)
		require.NoError(t, err)
		assert.Equal(t, config.ModeTurntable, m.Mode)
		assert.InDelta(t, 1.25, m.Scale, 1e-9)
		assert.InDelta(t, 1.25, m.OffsetZ, 1e-9)
		assert.InDelta(t, 3.75, m.CameraDistance, 1e-9)
		require.Len(t, m.Frames, 114)
		for i, f := range m.Frames {
			assert.Equal(t, i, f.Frame)
			assert.Equal(t, float64(i), f.YawDeg)
			assert.Equal(t, FrameColor(i), f.Color)
		}
		assert.Equal(t, "out_0005.png", m.Frames[5].Image)
		assert.Equal(t, "normal_00050005.png", m.Frames[5].Passes["normal"])
	})

	t.Run("Should save the debug snapshot", func(t *testing.T) {
		assert.Equal(t, filepath.Join(cfg.OutputDir, "debug.yaml"), sum.Snapshot)
		assert.FileExists(t, sum.Snapshot)
	})
}

func TestRunTable(t *testing.T) {
	cfg := testConfig(t, writeModel(t, cubeOBJ), config.ModeTable)

	sum, err := Run(cfg, logger.NewForTests())
	require.NoError(t, err)

	t.Run("Should render one frame per table entry", func(t *testing.T) {
		assert.Equal(t, len(cfg.Table), sum.Frames)
		assert.FileExists(t, filepath.Join(cfg.OutputDir, fmt.Sprintf("out_%04d.png", len(cfg.Table)-1)))
	})

	t.Run("Should use constant pass stems", func(t *testing.T) {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, "depth_0003.png"))
		assert.FileExists(t, filepath.Join(cfg.OutputDir, "depth_0003_mm.png"))
		assert.FileExists(t, filepath.Join(cfg.OutputDir, "normal_0003.png"))
	})

	t.Run("Should place the camera at the table positions", func(t *testing.T) {
		m, err := ReadManifest(sum.Manifest)
		require.NoError(t, err)
		require.Len(t, m.Frames, len(cfg.Table))
		for i, e := range cfg.Table {
			assert.Equal(t, [3]float64(e.Position), m.Frames[i].Position)
			for k := 0; k < 3; k++ {
				assert.InDelta(t, e.RotationDeg[k], m.Frames[i].RotationDeg[k], 1e-9)
			}
		}
		assert.Zero(t, m.CameraDistance)
	})
}

func TestRunErrors(t *testing.T) {
	t.Run("Should fail with a missing camera", func(t *testing.T) {
		cfg := testConfig(t, writeModel(t, cubeOBJ), config.ModeTurntable)
		cfg.CameraName = "NoSuchCamera"
		_, err := Run(cfg, logger.NewForTests())
		assert.ErrorIs(t, err, scene.ErrMissingSceneObject)
		assert.NoDirExists(t, cfg.OutputDir)
	})

	t.Run("Should fail on an unreadable model before writing anything", func(t *testing.T) {
		cfg := testConfig(t, filepath.Join(t.TempDir(), "missing.obj"), config.ModeTurntable)
		_, err := Run(cfg, logger.NewForTests())
		assert.ErrorIs(t, err, scene.ErrAssetLoad)
		assert.NoDirExists(t, cfg.OutputDir)
	})

	t.Run("Should fail on flat geometry", func(t *testing.T) {
		cfg := testConfig(t, writeModel(t, flatOBJ), config.ModeTurntable)
		_, err := Run(cfg, logger.NewForTests())
		assert.ErrorIs(t, err, normalize.ErrDegenerateGeometry)
		assert.NoDirExists(t, cfg.OutputDir)
	})

	t.Run("Should abort on the first export failure", func(t *testing.T) {
		cfg := testConfig(t, writeModel(t, cubeOBJ), config.ModeTurntable)
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0644))
		cfg.OutputDir = blocker

		sum, err := Run(cfg, logger.NewForTests())
		assert.ErrorIs(t, err, ErrRender)
		assert.ErrorContains(t, err, "frame 0")
		assert.Zero(t, sum.Frames)
	})
}

func TestRunRangeFlags(t *testing.T) {
	t.Run("Should warn and still render every pose", func(t *testing.T) {
		cfg := testConfig(t, writeModel(t, cubeOBJ), config.ModeTable)
		begin, end := 2, 4
		cfg.Begin, cfg.End = &begin, &end

		log := &recordingLogger{}
		sum, err := Run(cfg, log)
		require.NoError(t, err)
		assert.Equal(t, len(cfg.Table), sum.Frames)
		assert.Equal(t, 1, log.count("warn"))
	})

	t.Run("Should not warn without begin or end", func(t *testing.T) {
		cfg := testConfig(t, writeModel(t, cubeOBJ), config.ModeTable)
		log := &recordingLogger{}
		_, err := Run(cfg, log)
		require.NoError(t, err)
		assert.Zero(t, log.count("warn"))
	})
}
