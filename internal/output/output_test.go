package output

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objview/internal/mathutil"
	"objview/internal/raster"
)

// testFrame is 3×1: near hit, far hit, background.
func testFrame() *raster.Frame {
	return &raster.Frame{
		Width:  3,
		Height: 1,
		Color:  image.NewNRGBA(image.Rect(0, 0, 3, 1)),
		Depth:  []float64{2, 4, math.Inf(1)},
		Normal: []mathutil.Vec3{{0, 0, 1}, {-1, 0, 0}, {}},
	}
}

func TestParseFormat(t *testing.T) {
	t.Run("Should accept names and extensions", func(t *testing.T) {
		for in, want := range map[string]Format{"png": PNG, ".WEBP": WebP, "tga": TGA, "": PNG} {
			got, err := ParseFormat(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		_, err := ParseFormat("exr")
		assert.Error(t, err)
	})
}

func TestEncodeImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{10, 20, 30, 255})

	for _, f := range []Format{PNG, WebP, TGA} {
		t.Run("Should encode "+string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeImage(&buf, img, f))
			assert.NotZero(t, buf.Len())
		})
	}

	t.Run("Should round-trip PNG pixels", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b.png")
		require.NoError(t, WriteImage(path, img, PNG))
		file, err := os.Open(path)
		require.NoError(t, err)
		defer file.Close()
		got, err := png.Decode(file)
		require.NoError(t, err)
		r, g, b, _ := got.At(1, 1).RGBA()
		assert.Equal(t, []uint32{10, 20, 30}, []uint32{r >> 8, g >> 8, b >> 8})
	})
}

func TestPassOutput(t *testing.T) {
	t.Run("Should append the frame number to the stem", func(t *testing.T) {
		raw, norm := EnableDepth("/out", true)
		normal := EnableNormal("/out")

		assert.Equal(t, filepath.Join("/out", "depth_0007_mm.png"), raw.Path(7))
		assert.Equal(t, filepath.Join("/out", "depth_0007.png"), norm.Path(7))
		assert.Equal(t, filepath.Join("/out", "normal_0007.png"), normal.Path(7))

		norm.Stem = "depth_0005"
		assert.Equal(t, filepath.Join("/out", "depth_00050005.png"), norm.Path(5))
	})

	t.Run("Should write every pass as PNG", func(t *testing.T) {
		dir := t.TempDir()
		raw, norm := EnableDepth(dir, true)
		normal := EnableNormal(dir)
		for _, p := range []*PassOutput{raw, norm, normal} {
			path, err := p.Write(testFrame(), 3)
			require.NoError(t, err)
			assert.FileExists(t, path)
		}
	})
}

func TestDepthImages(t *testing.T) {
	t.Run("Should store raw depth in millimetres", func(t *testing.T) {
		img := DepthRawImage(testFrame())
		assert.Equal(t, uint16(2000), img.Gray16At(0, 0).Y)
		assert.Equal(t, uint16(4000), img.Gray16At(1, 0).Y)
		assert.Equal(t, uint16(0), img.Gray16At(2, 0).Y)
	})

	t.Run("Should saturate far raw depth", func(t *testing.T) {
		f := testFrame()
		f.Depth[0] = 1e6
		assert.Equal(t, uint16(MaxRawDepthMM), DepthRawImage(f).Gray16At(0, 0).Y)
	})

	t.Run("Should map near to white when reversed", func(t *testing.T) {
		img := DepthNormalizedImage(testFrame(), true)
		assert.Equal(t, uint8(255), img.GrayAt(0, 0).Y)
		assert.Equal(t, uint8(0), img.GrayAt(1, 0).Y)
		assert.Equal(t, uint8(0), img.GrayAt(2, 0).Y)
	})

	t.Run("Should map near to black when not reversed", func(t *testing.T) {
		img := DepthNormalizedImage(testFrame(), false)
		assert.Equal(t, uint8(0), img.GrayAt(0, 0).Y)
		assert.Equal(t, uint8(255), img.GrayAt(1, 0).Y)
	})

	t.Run("Should leave an empty frame black", func(t *testing.T) {
		f := testFrame()
		f.Depth = []float64{math.Inf(1), math.Inf(1), math.Inf(1)}
		img := DepthNormalizedImage(f, true)
		assert.Equal(t, uint8(0), img.GrayAt(0, 0).Y)
	})
}

func TestNormalImage(t *testing.T) {
	img := NormalImage(testFrame())
	assert.Equal(t, color.NRGBA{128, 128, 255, 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{0, 128, 128, 255}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(2, 0))
}
