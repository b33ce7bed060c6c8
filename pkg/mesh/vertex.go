package mesh

import "github.com/Faultbox/swmesh/pkg/math"

// GridScale converts block grid units to world units.
const GridScale = 0.25

// Transform rotates the vertex by each rotation in order and then moves it
// by offset grid cells. Normals are rotated but never translated.
func (v *Vertex) Transform(rotations []math.Rotation, offset math.Vec3) {
	v.Position = math.Rotate(v.Position, rotations...).Add(offset.Scale(GridScale))
	v.Normal = math.Rotate(v.Normal, rotations...)
}

// Place applies a scene placement matrix to the position and normal.
func (v *Vertex) Place(t math.Transformation) {
	v.Position = t.TransformPoint(v.Position)
	v.Normal = t.TransformDirection(v.Normal)
}

// MirrorX negates the X axis of the position and normal.
func (v *Vertex) MirrorX() {
	v.Position.X = -v.Position.X
	v.Normal.X = -v.Normal.X
}
