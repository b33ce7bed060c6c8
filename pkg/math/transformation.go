package math

import "github.com/go-gl/mathgl/mgl64"

// Transformation is a 4x4 placement matrix built cell by cell.
//
// The zero value is the zero matrix. Cells are addressed the way scene files
// store them: row-major, with the translation in row 3. Points are
// transformed as row vectors, p' = [x y z 1] * M, which is the transposed
// matrix applied to a column vector.
type Transformation struct {
	m mgl64.Mat4
}

// IdentityTransformation returns the identity placement.
func IdentityTransformation() Transformation {
	return Transformation{m: mgl64.Ident4()}
}

// Set stores value at (row, col). Out-of-range cells are ignored.
func (t *Transformation) Set(row, col int, value float64) {
	if row < 0 || row > 3 || col < 0 || col > 3 {
		return
	}
	t.m.Set(row, col, value)
}

// At returns the value at (row, col).
func (t Transformation) At(row, col int) float64 {
	return t.m.At(row, col)
}

// TransformPoint places a position (w = 1).
func (t Transformation) TransformPoint(p Vec3) Vec3 {
	v := t.m.Transpose().Mul4x1(mgl64.Vec4{float64(p.X), float64(p.Y), float64(p.Z), 1})
	return fromVec64(v.Vec3())
}

// TransformDirection places a direction (w = 0); translation is ignored.
func (t Transformation) TransformDirection(d Vec3) Vec3 {
	v := t.m.Transpose().Mul4x1(mgl64.Vec4{float64(d.X), float64(d.Y), float64(d.Z), 0})
	return fromVec64(v.Vec3())
}
