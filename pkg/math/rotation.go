package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotation is a rotation of Angle radians about Axis.
// Axis need not be unit length; it is normalized when the matrix is built.
type Rotation struct {
	Axis  Vec3
	Angle float64
}

// AxisX, AxisY and AxisZ are the unit axes.
var (
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)

// QuarterTurns returns a rotation of n quarter turns about axis.
func QuarterTurns(axis Vec3, n int) Rotation {
	return Rotation{Axis: axis, Angle: float64(n) * math.Pi / 2}
}

// Matrix returns the 3x3 rotation matrix built with the axis-angle
// (Rodrigues) formula. A zero axis yields the identity.
func (r Rotation) Matrix() mgl64.Mat3 {
	axis := r.Axis.vec64()
	if axis.Len() == 0 {
		return mgl64.Ident3()
	}
	return mgl64.HomogRotate3D(r.Angle, axis.Normalize()).Mat3()
}

// Rotate applies the rotations to v in order, each one left-multiplying the
// result of the previous.
func Rotate(v Vec3, rotations ...Rotation) Vec3 {
	if len(rotations) == 0 {
		return v
	}
	out := v.vec64()
	for _, r := range rotations {
		out = r.Matrix().Mul3x1(out)
	}
	return fromVec64(out)
}
