package math

// degenerateExtent is the half-thickness given to a bounds axis that never
// leaves zero.
const degenerateExtent = 0.125

// Bounds is an axis-aligned bounding box.
//
// The zero value is a box seeded at the origin, which is how the mesh
// encoder accumulates it: the origin is always inside the box.
type Bounds struct {
	Min, Max Vec3
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Widened returns a copy where every axis whose min and max are both zero
// is widened to [-0.125, 0.125].
func (b Bounds) Widened() Bounds {
	if b.Min.X == 0 && b.Max.X == 0 {
		b.Min.X, b.Max.X = -degenerateExtent, degenerateExtent
	}
	if b.Min.Y == 0 && b.Max.Y == 0 {
		b.Min.Y, b.Max.Y = -degenerateExtent, degenerateExtent
	}
	if b.Min.Z == 0 && b.Max.Z == 0 {
		b.Min.Z, b.Max.Z = -degenerateExtent, degenerateExtent
	}
	return b
}

// BoundsOf returns the origin-seeded, widened box around points.
func BoundsOf(points ...Vec3) Bounds {
	var b Bounds
	for _, p := range points {
		b.Extend(p)
	}
	return b.Widened()
}
