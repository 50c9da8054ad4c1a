// Package output encodes rendered frames and auxiliary passes to files.
package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Format is an image file format for the color output.
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
	TGA  Format = "tga"
)

// ParseFormat accepts a format name or extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(s), ".")); f {
	case PNG, WebP, TGA:
		return f, nil
	case "":
		return PNG, nil
	default:
		return "", fmt.Errorf("output: unknown image format %q", s)
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// EncodeImage writes img to w in format f.
func EncodeImage(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case WebP:
		return nativewebp.Encode(w, img, nil)
	case TGA:
		return tga.Encode(w, img)
	default:
		return fmt.Errorf("output: unknown image format %q", f)
	}
}

// WriteImage creates path (and its directory) and encodes img into it.
func WriteImage(path string, img image.Image, f Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("output: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	if err := EncodeImage(file, img, f); err != nil {
		file.Close()
		return fmt.Errorf("output: encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("output: close %s: %w", path, err)
	}
	return nil
}
