package mesh

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/swmesh/pkg/math"
)

const eps = 1e-6

func TestVertexTransform_TranslationUsesGridScale(t *testing.T) {
	v := Vertex{}
	v.Transform([]math.Rotation{{Axis: math.AxisZ, Angle: 0}}, math.Vec3{X: 4})

	if !v.Position.ApproxEqual(math.Vec3{X: 1}, eps) {
		t.Errorf("expected (1,0,0), got %v", v.Position)
	}
}

func TestVertexTransform_RotatesThenTranslates(t *testing.T) {
	v := Vertex{Position: math.Vec3{X: 1}, Normal: math.Vec3{X: 1}}
	v.Transform([]math.Rotation{{Axis: math.AxisZ, Angle: gomath.Pi / 2}}, math.Vec3{X: 4, Y: 0, Z: -8})

	if !v.Position.ApproxEqual(math.Vec3{X: 1, Y: 1, Z: -2}, eps) {
		t.Errorf("position: expected (1,1,-2), got %v", v.Position)
	}
	if !v.Normal.ApproxEqual(math.Vec3{Y: 1}, eps) {
		t.Errorf("normal should rotate without translation, got %v", v.Normal)
	}
}

func TestVertexTransform_KeepsColor(t *testing.T) {
	v := Vertex{Color: RGBA{1, 2, 3, 4}}
	v.Transform(nil, math.Vec3{X: 1})
	if v.Color != (RGBA{1, 2, 3, 4}) {
		t.Errorf("color changed: %v", v.Color)
	}
}

func TestVertexPlace(t *testing.T) {
	tr := math.IdentityTransformation()
	tr.Set(3, 0, 2)
	tr.Set(3, 1, 3)
	tr.Set(3, 2, 4)

	v := Vertex{Position: math.Vec3{X: 1, Y: 1, Z: 1}, Normal: math.Vec3{Y: 1}}
	v.Place(tr)

	if v.Position != (math.Vec3{X: 3, Y: 4, Z: 5}) {
		t.Errorf("position: expected (3,4,5), got %v", v.Position)
	}
	if v.Normal != (math.Vec3{Y: 1}) {
		t.Errorf("normal should not be translated, got %v", v.Normal)
	}
}

func TestVertexMirrorX(t *testing.T) {
	v := Vertex{Position: math.Vec3{X: 2, Y: 3, Z: 4}, Normal: math.Vec3{X: 1}}
	v.MirrorX()

	if v.Position != (math.Vec3{X: -2, Y: 3, Z: 4}) {
		t.Errorf("position: got %v", v.Position)
	}
	if v.Normal != (math.Vec3{X: -1}) {
		t.Errorf("normal: got %v", v.Normal)
	}
}
