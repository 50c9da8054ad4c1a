package raster

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objview/internal/mathutil"
	"objview/internal/mesh"
	"objview/internal/scene"
)

const cubeOBJ = `v -1 -1 -1
v  1 -1 -1
v  1  1 -1
v -1  1 -1
v -1 -1  1
v  1 -1  1
v  1  1  1
v -1  1  1
f 1 4 3 2
f 5 6 7 8
f 1 2 6 5
f 2 3 7 6
f 3 4 8 7
f 4 1 5 8
`

func cubeScene(t *testing.T) (*scene.Scene, *scene.Object) {
	t.Helper()
	m, err := mesh.ReadOBJ(strings.NewReader(cubeOBJ))
	require.NoError(t, err)

	s := scene.New()
	s.World.Strength = 0.5
	s.AddMesh("cube", m)

	cam, err := s.Camera(scene.DefaultCameraName)
	require.NoError(t, err)
	cam.Location = mathutil.Vec3{0, -5, 0}
	cam.SetOrientation(mathutil.TrackTo(cam.Location, mathutil.Vec3{}, mathutil.WorldUp))
	cam.Camera.FOV = mathutil.Deg2Rad(60)
	s.Update()
	return s, cam
}

func TestRender(t *testing.T) {
	t.Run("Should cover the centre and leave the corners as background", func(t *testing.T) {
		s, cam := cubeScene(t)
		f, err := Render(s, cam, Settings{Width: 64, Height: 48, Supersample: 1})
		require.NoError(t, err)

		assert.Equal(t, 64, f.Width)
		assert.Equal(t, 48, f.Height)
		assert.True(t, f.Hit(32, 24))
		assert.False(t, f.Hit(0, 0))
		assert.False(t, f.Hit(63, 47))
		assert.Equal(t, uint8(255), f.Color.NRGBAAt(0, 0).A)
	})

	t.Run("Should record view distance and the facing normal", func(t *testing.T) {
		s, cam := cubeScene(t)
		f, err := Render(s, cam, Settings{Width: 64, Height: 48})
		require.NoError(t, err)

		i := 24*64 + 32
		assert.InDelta(t, 4, f.Depth[i], 1e-6)
		assert.InDelta(t, 1, math.Abs(f.Normal[i][1]), 1e-9)
		assert.True(t, math.IsInf(f.Depth[0], 1))
		assert.Equal(t, mathutil.Vec3{}, f.Normal[0])
	})

	t.Run("Should leave the background transparent when asked", func(t *testing.T) {
		s, cam := cubeScene(t)
		f, err := Render(s, cam, Settings{Width: 32, Height: 32, TransparentBackground: true})
		require.NoError(t, err)
		assert.Equal(t, uint8(0), f.Color.NRGBAAt(0, 0).A)
		assert.Equal(t, uint8(255), f.Color.NRGBAAt(16, 16).A)
	})

	t.Run("Should produce the output size when supersampling", func(t *testing.T) {
		s, cam := cubeScene(t)
		f, err := Render(s, cam, Settings{Width: 40, Height: 30, Supersample: 3})
		require.NoError(t, err)
		assert.Equal(t, 40, f.Color.Bounds().Dx())
		assert.Equal(t, 30, f.Color.Bounds().Dy())
		assert.Len(t, f.Depth, 40*30)
		assert.True(t, f.Hit(20, 15))
	})

	t.Run("Should shade differently colored materials differently", func(t *testing.T) {
		s, cam := cubeScene(t)
		obj, err := s.Object("cube")
		require.NoError(t, err)

		obj.Material = scene.NewMaterial(obj.Material, [4]float64{1, 0, 0, 1})
		red, err := Render(s, cam, Settings{Width: 32, Height: 32})
		require.NoError(t, err)
		c := red.Color.NRGBAAt(16, 16)
		assert.Greater(t, c.R, c.G)
		assert.Greater(t, c.R, c.B)
	})

	t.Run("Should draw nothing behind the camera", func(t *testing.T) {
		s, cam := cubeScene(t)
		cam.SetOrientation(mathutil.TrackTo(cam.Location, mathutil.Vec3{0, -10, 0}, mathutil.WorldUp))
		s.Update()
		f, err := Render(s, cam, Settings{Width: 32, Height: 32})
		require.NoError(t, err)
		for _, d := range f.Depth {
			assert.True(t, math.IsInf(d, 1))
		}
	})

	t.Run("Should discard geometry past the far clip", func(t *testing.T) {
		s, cam := cubeScene(t)
		cam.Camera.ClipEnd = 3
		f, err := Render(s, cam, Settings{Width: 32, Height: 32})
		require.NoError(t, err)
		assert.False(t, f.Hit(16, 16))
	})

	t.Run("Should clip triangles crossing the near plane", func(t *testing.T) {
		s, cam := cubeScene(t)
		cam.Location = mathutil.Vec3{0, -0.5, 0}
		s.Update()
		f, err := Render(s, cam, Settings{Width: 32, Height: 32})
		require.NoError(t, err)
		// Inside the cube: the far wall at y=1 is 1.5 away.
		assert.InDelta(t, 1.5, f.Depth[16*32+16], 1e-6)
	})

	t.Run("Should reject a missing camera and bad settings", func(t *testing.T) {
		s, cam := cubeScene(t)
		_, err := Render(s, nil, Settings{Width: 8, Height: 8})
		assert.ErrorIs(t, err, scene.ErrMissingSceneObject)

		_, err = Render(s, cam, Settings{Width: 0, Height: 8})
		assert.Error(t, err)

		cam.Camera.ClipEnd = cam.Camera.ClipStart
		_, err = Render(s, cam, Settings{Width: 8, Height: 8})
		assert.Error(t, err)
	})
}

func TestClipNear(t *testing.T) {
	t.Run("Should keep a triangle fully in front", func(t *testing.T) {
		tri := [3]mathutil.Vec3{{0, 0, -2}, {1, 0, -2}, {0, 1, -2}}
		assert.Len(t, clipNear(tri, 0.1), 3)
	})

	t.Run("Should drop a triangle fully behind", func(t *testing.T) {
		tri := [3]mathutil.Vec3{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}}
		assert.Empty(t, clipNear(tri, 0.1))
	})

	t.Run("Should turn one vertex behind into a quad on the plane", func(t *testing.T) {
		tri := [3]mathutil.Vec3{{0, 0, -2}, {1, 0, -2}, {0, 0, 1}}
		poly := clipNear(tri, 0.1)
		require.Len(t, poly, 4)
		for _, v := range poly {
			assert.LessOrEqual(t, v[2], -0.1+1e-12)
		}
	})
}
