package scene

// Material holds the surface properties the renderer needs: base color,
// opacity/transparency for blending, wireframe and two-sided flags.
type Material struct {
	BaseColor   [4]float32
	Opacity     float32
	Transparent bool
	Wireframe   bool
	DoubleSided bool
}

// DefaultMaterial returns an opaque light-gray material.
func DefaultMaterial() *Material {
	return &Material{
		BaseColor: [4]float32{0.8, 0.8, 0.8, 1.0},
		Opacity:   1.0,
	}
}

// Clone returns an independent copy of the material.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}
