package scene

// Material is a single base colour in linear RGBA, each channel in [0, 1].
type Material struct {
	Name  string
	Color [4]float64
}

// DefaultMaterial is the grey assigned to imported and created meshes.
func DefaultMaterial() *Material {
	return &Material{Name: "Material", Color: [4]float64{0.8, 0.8, 0.8, 1}}
}

// NewMaterial returns a material with the given colour, keeping the name of
// prev when there is one. prev is not modified.
func NewMaterial(prev *Material, color [4]float64) *Material {
	name := "Material"
	if prev != nil {
		name = prev.Name
	}
	return &Material{Name: name, Color: color}
}
