// Package scene defines the renderer's immutable scene graph: materials,
// the Shape variants the kernel can intersect, and the aggregate Scene a
// render call walks.
package scene

import "github.com/gogpu/pathtrace/colour"

// Surface is an immutable material record. All coefficients are
// non-negative; RefractiveIndex is >= 1 (spec §3).
type Surface struct {
	Colour             colour.ColourRgb[float64]
	DiffuseReflectance float64
	Reflectance        float64
	Transmittance       float64
	Emittance          float64
	RefractiveIndex    float64
}

// NewSurface constructs a Surface, clamping coefficients to their
// documented ranges so a misconfigured scene can't push the kernel into
// undefined numerical territory (divide-by-zero refractive index, a
// negative weight feeding Russian roulette, and so on).
func NewSurface(c colour.ColourRgb[float64], diffuse, reflectance, transmittance, emittance, refractiveIndex float64) Surface {
	if refractiveIndex < 1 {
		refractiveIndex = 1
	}
	return Surface{
		Colour:             c,
		DiffuseReflectance: nonNegative(diffuse),
		Reflectance:        nonNegative(reflectance),
		Transmittance:      nonNegative(transmittance),
		Emittance:          nonNegative(emittance),
		RefractiveIndex:    refractiveIndex,
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// IsEmissive reports whether this Surface can act as a light source.
func (s Surface) IsEmissive() bool {
	return s.Emittance > 0
}
