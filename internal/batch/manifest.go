package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Manifest describes a finished run.
type Manifest struct {
	Model          string          `json:"model"`
	Mode           string          `json:"mode"`
	Scale          float64         `json:"scale"`
	OffsetZ        float64         `json:"offset_z"`
	CameraDistance float64         `json:"camera_distance,omitempty"`
	Frames         []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one rendered frame. Paths are relative to the
// output directory.
type ManifestEntry struct {
	Frame       int               `json:"frame"`
	Position    [3]float64        `json:"camera_position"`
	RotationDeg [3]float64        `json:"camera_rotation_deg"`
	Color       [4]float64        `json:"color"`
	YawDeg      float64           `json:"yaw_deg"`
	Image       string            `json:"image"`
	Passes      map[string]string `json:"passes"`
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(data, &m)
	return m, err
}

func relTo(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
