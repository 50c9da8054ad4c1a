package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func assertVec(t *testing.T, want, got Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], eps, "component %d", i)
	}
}

func TestBox(t *testing.T) {
	t.Run("Should reduce points to a per-axis min and max", func(t *testing.T) {
		b := BoxOf([]Vec3{{1, -2, 3}, {-1, 4, 0}, {0, 0, 5}})
		assertVec(t, Vec3{-1, -2, 0}, b.Min)
		assertVec(t, Vec3{1, 4, 5}, b.Max)
		assertVec(t, Vec3{2, 6, 5}, b.Size())
		assertVec(t, Vec3{0, 1, 2.5}, b.Center())
	})

	t.Run("Should report an empty box until extended", func(t *testing.T) {
		b := EmptyBox()
		assert.True(t, b.Empty())
		assert.False(t, b.Extend(Vec3{}).Empty())
	})

	t.Run("Should enumerate eight distinct corners", func(t *testing.T) {
		b := Box{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
		seen := map[Vec3]bool{}
		for _, c := range b.Corners() {
			seen[c] = true
		}
		assert.Len(t, seen, 8)
	})

	t.Run("Should bound transformed corners", func(t *testing.T) {
		b := Box{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
		m := Compose(Vec3{0, 0, 2}, RotZ(math.Pi/4), Vec3{2, 2, 2})
		tb := b.Transform(m)
		r := 2 * math.Sqrt2
		assertVec(t, Vec3{-r, -r, 0}, tb.Min)
		assertVec(t, Vec3{r, r, 4}, tb.Max)
	})
}

func TestEuler(t *testing.T) {
	t.Run("Should round-trip XYZ Euler angles", func(t *testing.T) {
		for _, e := range []Vec3{
			{0, 0, 0},
			Deg2RadVec(Vec3{72, 0, 0}),
			Deg2RadVec(Vec3{73.4, -5.68, 28.6}),
			Deg2RadVec(Vec3{82.3, 6.25, -88.7}),
		} {
			assertVec(t, e, EulerFromMat3(EulerXYZ(e)))
		}
	})

	t.Run("Should apply X before Z", func(t *testing.T) {
		m := EulerXYZ(Vec3{math.Pi / 2, 0, math.Pi / 2})
		// +Y -> +Z under X, then stays on Z.
		assertVec(t, Vec3{0, 0, 1}, m.MulVec3(Vec3{0, 1, 0}))
	})
}

func TestTrackTo(t *testing.T) {
	t.Run("Should point local -Z at the target with +Y towards world up", func(t *testing.T) {
		eye := Vec3{3, 0, 1}
		target := Vec3{0, 0, 1}
		m := TrackTo(eye, target, WorldUp)
		forward := m.MulVec3(Vec3{0, 0, -1})
		assertVec(t, Vec3{-1, 0, 0}, forward)
		assertVec(t, Vec3{0, 0, 1}, m.MulVec3(Vec3{0, 1, 0}))
		assert.InDelta(t, 1, m.Det(), eps)
	})

	t.Run("Should stay orthonormal when looking straight down", func(t *testing.T) {
		m := TrackTo(Vec3{0, 0, 5}, Vec3{}, WorldUp)
		assertVec(t, Vec3{0, 0, -1}, m.MulVec3(Vec3{0, 0, -1}))
		assert.InDelta(t, 1, m.Det(), eps)
	})
}

func TestMat4AffineInverse(t *testing.T) {
	m := Compose(Vec3{1, 2, 3}, EulerXYZ(Vec3{0.3, -0.2, 1.1}), Vec3{2, 2, 2})
	assert.True(t, Mat4Mul(m, m.AffineInverse()).IsIdentity())
}
