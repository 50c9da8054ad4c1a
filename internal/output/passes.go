package output

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"

	"objview/internal/raster"
)

// PassKind selects what an auxiliary output writes.
type PassKind int

const (
	DepthRaw PassKind = iota
	DepthNormalized
	Normal
)

func (k PassKind) String() string {
	switch k {
	case DepthRaw:
		return "depth_raw"
	case DepthNormalized:
		return "depth"
	case Normal:
		return "normal"
	}
	return fmt.Sprintf("PassKind(%d)", int(k))
}

// MaxRawDepthMM is the largest distance a raw depth pixel can hold.
const MaxRawDepthMM = math.MaxUint16

// PassOutput writes one auxiliary image per frame to
// Dir/<Stem><frame %04d><suffix>. Stem is meant to be changed between
// frames; the frame number is always appended.
type PassOutput struct {
	Kind    PassKind
	Dir     string
	Stem    string
	Reverse bool // DepthNormalized: near is white
}

// EnableDepth returns the raw (16-bit millimetres) and normalized (8-bit)
// depth outputs writing into dir.
func EnableDepth(dir string, reverse bool) (raw, normalized *PassOutput) {
	raw = &PassOutput{Kind: DepthRaw, Dir: dir, Stem: "depth_"}
	normalized = &PassOutput{Kind: DepthNormalized, Dir: dir, Stem: "depth_", Reverse: reverse}
	return raw, normalized
}

// EnableNormal returns the world-normal output writing into dir.
func EnableNormal(dir string) *PassOutput {
	return &PassOutput{Kind: Normal, Dir: dir, Stem: "normal_"}
}

func (p *PassOutput) suffix() string {
	if p.Kind == DepthRaw {
		return "_mm.png"
	}
	return ".png"
}

// Path returns the file the output writes for frame.
func (p *PassOutput) Path(frame int) string {
	return filepath.Join(p.Dir, fmt.Sprintf("%s%04d%s", p.Stem, frame, p.suffix()))
}

// Image builds the pass image for f.
func (p *PassOutput) Image(f *raster.Frame) image.Image {
	switch p.Kind {
	case DepthRaw:
		return DepthRawImage(f)
	case DepthNormalized:
		return DepthNormalizedImage(f, p.Reverse)
	default:
		return NormalImage(f)
	}
}

// Write encodes the pass for f as PNG and returns the written path.
func (p *PassOutput) Write(f *raster.Frame, frame int) (string, error) {
	path := p.Path(frame)
	if err := WriteImage(path, p.Image(f), PNG); err != nil {
		return "", fmt.Errorf("output: %s pass: %w", p.Kind, err)
	}
	return path, nil
}

// DepthRawImage stores view distance in millimetres, 0 where nothing was
// hit, saturating at MaxRawDepthMM.
func DepthRawImage(f *raster.Frame) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			d := f.Depth[y*f.Width+x]
			if math.IsInf(d, 1) {
				continue
			}
			mm := math.Round(d * 1000)
			if mm > MaxRawDepthMM {
				mm = MaxRawDepthMM
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(mm)})
		}
	}
	return img
}

// DepthNormalizedImage maps the frame's hit depth range linearly to
// 0..255 (255..0 when reverse is set). Empty pixels stay 0.
func DepthNormalizedImage(f *raster.Frame, reverse bool) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, d := range f.Depth {
		if math.IsInf(d, 1) {
			continue
		}
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	if lo > hi {
		return img
	}
	span := hi - lo
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			d := f.Depth[y*f.Width+x]
			if math.IsInf(d, 1) {
				continue
			}
			t := 1.0
			if span > 0 {
				t = (d - lo) / span
			}
			if reverse {
				t = 1 - t
			}
			img.SetGray(x, y, color.Gray{Y: uint8(math.Round(t * 255))})
		}
	}
	return img
}

// NormalImage encodes world normals as (n*0.5+0.5)*255 with full alpha
// where geometry was hit.
func NormalImage(f *raster.Frame) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			i := y*f.Width + x
			if math.IsInf(f.Depth[i], 1) {
				continue
			}
			n := f.Normal[i]
			img.SetNRGBA(x, y, color.NRGBA{
				R: encodeUnit(n[0]),
				G: encodeUnit(n[1]),
				B: encodeUnit(n[2]),
				A: 255,
			})
		}
	}
	return img
}

func encodeUnit(v float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(v*0.5+0.5, 0), 1) * 255))
}
