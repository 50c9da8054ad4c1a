package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"objview/internal/mathutil"
)

// LoadOBJ reads a Wavefront OBJ file. Only positions and faces are used;
// polygons are fan-triangulated.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("mesh: parse %s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// ReadOBJ parses OBJ text from r.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 2 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "o":
			if m.Name == "" && len(fields) > 1 {
				m.Name = fields[1]
			}
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var v mathutil.Vec3
			for k := 0; k < 3; k++ {
				f, err := strconv.ParseFloat(fields[k+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				v[k] = f
			}
			m.Verts = append(m.Verts, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			idx := make([]int, len(fields)-1)
			for i, arg := range fields[1:] {
				vi, err := faceIndex(arg, len(m.Verts))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx[i] = vi
			}
			for i := 1; i < len(idx)-1; i++ {
				m.Tris = append(m.Tris, [3]int{idx[0], idx[i], idx[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(m.Verts) == 0 || len(m.Tris) == 0 {
		return nil, fmt.Errorf("no geometry")
	}
	return m, nil
}

// faceIndex resolves the position part of "v", "v/vt", "v//vn" or "v/vt/vn"
// to a zero-based index. Negative indices count back from the last vertex.
func faceIndex(arg string, n int) (int, error) {
	s, _, _ := strings.Cut(arg, "/")
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", arg)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return 0, fmt.Errorf("face index 0 is invalid")
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("face index %q out of range (%d vertices)", arg, n)
	}
	return i, nil
}
