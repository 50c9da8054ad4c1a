package raster

import (
	"fmt"
	"image"
	"math"

	"objview/internal/mathutil"
	"objview/internal/postprocess"
	"objview/internal/scene"
)

// Settings configures the output of a render.
type Settings struct {
	Width       int
	Height      int
	Supersample int
	// TransparentBackground leaves empty pixels at zero alpha instead of
	// filling them with the world color.
	TransparentBackground bool
}

// Frame is one rendered view with its auxiliary passes at Width×Height.
type Frame struct {
	Width  int
	Height int
	Color  *image.NRGBA
	Depth  []float64       // view-axis distance, +Inf where nothing was hit
	Normal []mathutil.Vec3 // world-space normal, zero where nothing was hit
}

// Hit reports whether pixel (x, y) shows geometry.
func (f *Frame) Hit(x, y int) bool {
	return !math.IsInf(f.Depth[y*f.Width+x], 1)
}

// Render draws every mesh object in s as seen from cam using the cached
// world matrices. Call s.Update first.
func Render(s *scene.Scene, cam *scene.Object, set Settings) (*Frame, error) {
	if cam == nil || cam.Camera == nil {
		return nil, fmt.Errorf("raster: no camera: %w", scene.ErrMissingSceneObject)
	}
	if set.Width <= 0 || set.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid resolution %dx%d", set.Width, set.Height)
	}
	ss := set.Supersample
	if ss < 1 {
		ss = 1
	}
	camData := cam.Camera
	if !(camData.FOV > 0 && camData.FOV < math.Pi) {
		return nil, fmt.Errorf("raster: field of view %v out of range", camData.FOV)
	}
	if !(camData.ClipStart > 0) || camData.ClipEnd <= camData.ClipStart {
		return nil, fmt.Errorf("raster: invalid clip range %v..%v", camData.ClipStart, camData.ClipEnd)
	}

	w, h := set.Width*ss, set.Height*ss
	fb := NewFrameBuffer(w, h)
	lc := DefaultLightConfig().WithWorldStrength(s.World.Strength)

	if !set.TransparentBackground {
		bg := s.World.Color.Scale(s.World.Strength)
		fb.Fill([4]uint8{lc.EncodeSRGB(bg[0]), lc.EncodeSRGB(bg[1]), lc.EncodeSRGB(bg[2]), 255})
	}

	camWorld := cam.MatrixWorld()
	view := camWorld.AffineInverse()
	viewRot := view.Linear()
	proj := projector{
		halfW: float64(w) / 2,
		halfH: float64(h) / 2,
		focal: float64(max(w, h)) / 2 / math.Tan(camData.FOV/2),
	}

	var camSpace []mathutil.Vec3
	var worldSpace []mathutil.Vec3
	for _, obj := range s.Meshes() {
		m := obj.Mesh
		world := obj.MatrixWorld()
		toCam := mathutil.Mat4Mul(view, world)

		camSpace = camSpace[:0]
		worldSpace = worldSpace[:0]
		for _, v := range m.Verts {
			camSpace = append(camSpace, toCam.MulPoint(v))
			worldSpace = append(worldSpace, world.MulPoint(v))
		}

		base := [3]float64{0.8, 0.8, 0.8}
		if obj.Material != nil {
			c := obj.Material.Color
			base = [3]float64{clamp01(c[0]), clamp01(c[1]), clamp01(c[2])}
		}

		for _, tri := range m.Tris {
			if !validTri(tri, len(m.Verts)) {
				continue
			}
			wa, wb, wc := worldSpace[tri[0]], worldSpace[tri[1]], worldSpace[tri[2]]
			n := wb.Sub(wa).Cross(wc.Sub(wa)).Normalize()
			if n.Len() == 0 {
				continue
			}
			shade := lc.ComputeShade(viewRot.MulVec3(n).Normalize())
			rgb := lc.ShadeColor(base, shade)
			surf := Surface{Color: [4]uint8{rgb[0], rgb[1], rgb[2], 255}, Normal: n}

			poly := clipNear([3]mathutil.Vec3{camSpace[tri[0]], camSpace[tri[1]], camSpace[tri[2]]}, camData.ClipStart)
			for k := 1; k+1 < len(poly); k++ {
				sv := [3]ScreenVert{proj.project(poly[0]), proj.project(poly[k]), proj.project(poly[k+1])}
				RasterizeTriangle(fb, sv, &surf, camData.ClipEnd)
			}
		}
	}

	return resolve(fb, set.Width, set.Height, ss), nil
}

type projector struct {
	halfW, halfH float64
	focal        float64
}

// project maps a camera-space point (looking down -Z) to pixels.
func (p projector) project(c mathutil.Vec3) ScreenVert {
	d := -c[2]
	return ScreenVert{
		X:    p.halfW + p.focal*c[0]/d,
		Y:    p.halfH - p.focal*c[1]/d,
		InvD: 1 / d,
	}
}

// clipNear clips a camera-space triangle against the plane z = -near and
// returns the remaining convex polygon (0, 3 or 4 vertices).
func clipNear(tri [3]mathutil.Vec3, near float64) []mathutil.Vec3 {
	inside := func(v mathutil.Vec3) bool { return -v[2] >= near }
	out := make([]mathutil.Vec3, 0, 4)
	for i := 0; i < 3; i++ {
		a, b := tri[i], tri[(i+1)%3]
		ain, bin := inside(a), inside(b)
		if ain {
			out = append(out, a)
		}
		if ain != bin {
			da, db := -a[2]-near, -b[2]-near
			t := da / (da - db)
			out = append(out, a.Add(b.Sub(a).Scale(t)))
		}
	}
	return out
}

// resolve downsamples the supersampled buffer to the output size. Color is
// filtered; depth and normals take the centre sample of each block.
func resolve(fb *FrameBuffer, w, h, ss int) *Frame {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	if ss > 1 {
		img = postprocess.Downsample(img, w, h)
	}

	f := &Frame{
		Width:  w,
		Height: h,
		Color:  img,
		Depth:  make([]float64, w*h),
		Normal: make([]mathutil.Vec3, w*h),
	}
	off := ss / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := (y*ss+off)*fb.Width + x*ss + off
			f.Depth[y*w+x] = fb.Depth[src]
			f.Normal[y*w+x] = fb.Normal[src]
		}
	}
	return f
}

func validTri(t [3]int, n int) bool {
	for _, i := range t {
		if i < 0 || i >= n {
			return false
		}
	}
	return true
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
