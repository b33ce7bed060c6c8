package mesh

import (
	"bytes"
	"encoding/binary"
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/swmesh/pkg/math"
)

func quadMesh() *Mesh {
	return &Mesh{
		Vertices: quadVertices(),
		Faces:    []Face{{0, 1, 2}, {0, 2, 3}},
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	for _, profile := range []Profile{ProfileMinimal, ProfileExtended} {
		t.Run(profile.String(), func(t *testing.T) {
			want := quadMesh()

			data, err := Encode(want, profile)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			got, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if len(got.Vertices) != len(want.Vertices) {
				t.Fatalf("expected %d vertices, got %d", len(want.Vertices), len(got.Vertices))
			}
			for i := range want.Vertices {
				if got.Vertices[i] != want.Vertices[i] {
					t.Errorf("vertex %d: expected %+v, got %+v", i, want.Vertices[i], got.Vertices[i])
				}
			}
			if len(got.Faces) != len(want.Faces) {
				t.Fatalf("expected %d faces, got %d", len(want.Faces), len(got.Faces))
			}
			for i := range want.Faces {
				if got.Faces[i] != want.Faces[i] {
					t.Errorf("face %d: expected %v, got %v", i, want.Faces[i], got.Faces[i])
				}
			}
		})
	}
}

func TestEncode_ReencodeIsByteIdentical(t *testing.T) {
	original := createTestMesh(quadVertices(), quadIndices)

	m, err := Decode(original)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	data, err := Encode(m, ProfileMinimal)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if !bytes.Equal(data, original) {
		t.Errorf("re-encoded bytes differ from original:\n got %x\nwant %x", data, original)
	}
}

func TestEncode_LengthFromCounts(t *testing.T) {
	m := quadMesh()
	n, idx := len(m.Vertices), m.IndexCount()
	base := headerSize + n*vertexRecordSize + 4 + idx*2 + 4 + 2

	tests := []struct {
		profile Profile
		want    int
	}{
		{ProfileMinimal, base},
		{ProfileExtended, base + submeshRecordSize + len(submeshTrailer)},
	}

	for _, tc := range tests {
		data, err := Encode(m, tc.profile)
		if err != nil {
			t.Fatalf("Encode(%s) failed: %v", tc.profile, err)
		}
		if len(data) != tc.want {
			t.Errorf("%s: expected %d bytes, got %d", tc.profile, tc.want, len(data))
		}
	}
}

func TestEncode_HeaderBytes(t *testing.T) {
	data, err := Encode(quadMesh(), ProfileMinimal)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := []byte{'m', 'e', 's', 'h', 0x07, 0x00, 0x01, 0x00, 0x04, 0x00, 0x13, 0x00, 0x00, 0x00}
	if !bytes.Equal(data[:headerSize], want) {
		t.Errorf("header: got %x, want %x", data[:headerSize], want)
	}
	if !bytes.HasSuffix(data, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00}) {
		t.Errorf("minimal profile should end with an empty submesh count and trailer, got %x", data[len(data)-6:])
	}
}

func TestEncode_ExtendedSubmesh(t *testing.T) {
	data, err := Encode(quadMesh(), ProfileExtended)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	m, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(m.Submeshes) != 1 {
		t.Fatalf("expected 1 submesh, got %d", len(m.Submeshes))
	}

	s := m.Submeshes[0]
	if s.Start != 0 || s.End != 6 || s.Shader != 0 {
		t.Errorf("unexpected submesh %+v", s)
	}
	// The quad is flat in Z, so Z is widened.
	wantMin := math.Vec3{X: 0, Y: 0, Z: -0.125}
	wantMax := math.Vec3{X: 1, Y: 1, Z: 0.125}
	if s.Bounds.Min != wantMin || s.Bounds.Max != wantMax {
		t.Errorf("bounds: got %v..%v, want %v..%v", s.Bounds.Min, s.Bounds.Max, wantMin, wantMax)
	}

	tail := data[len(data)-len(submeshTrailer)-2 : len(data)-2]
	if !bytes.Equal(tail, submeshTrailer) {
		t.Errorf("submesh trailer: got %x, want %x", tail, submeshTrailer)
	}
}

func TestEncode_OriginOnlyBounds(t *testing.T) {
	m := &Mesh{Vertices: []Vertex{{Color: White}}}

	data, err := Encode(m, ProfileExtended)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Bounds follow the submesh range and shader fields.
	off := headerSize + vertexRecordSize + 4 + 4 + 4 + 4 + 2
	var got [6]float32
	if err := binary.Read(bytes.NewReader(data[off:]), binary.LittleEndian, &got); err != nil {
		t.Fatalf("reading bounds: %v", err)
	}

	want := [6]float32{-0.125, -0.125, -0.125, 0.125, 0.125, 0.125}
	if got != want {
		t.Errorf("bounds: got %v, want %v", got, want)
	}
}

func TestEncode_TooManyVertices(t *testing.T) {
	m := &Mesh{Vertices: make([]Vertex, MaxVertices+1)}

	_, err := Encode(m, ProfileMinimal)
	if !errors.Is(err, ErrTooManyVertices) {
		t.Errorf("expected ErrTooManyVertices, got %v", err)
	}

	m.Vertices = m.Vertices[:MaxVertices]
	if _, err := Encode(m, ProfileMinimal); err != nil {
		t.Errorf("%d vertices should encode, got %v", MaxVertices, err)
	}
}

func TestEncode_TooManyIndices(t *testing.T) {
	n := uint64(MaxIndices) + 1
	if err := checkIndexCount(int(n)); !errors.Is(err, ErrTooManyIndices) {
		t.Errorf("expected ErrTooManyIndices, got %v", err)
	}
	if err := checkIndexCount(MaxIndices); err != nil {
		t.Errorf("index count at the limit should pass, got %v", err)
	}
}

func TestEncode_InvalidFaceIndex(t *testing.T) {
	m := &Mesh{Vertices: quadVertices(), Faces: []Face{{0, 1, 4}}}

	_, err := Encode(m, ProfileMinimal)
	if !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("expected ErrInvalidIndex, got %v", err)
	}
}

func TestEncode_UnknownProfile(t *testing.T) {
	if _, err := Encode(quadMesh(), Profile(7)); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestColorFromFloat_Truncates(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 127}, // 127.5 truncates
		{0.999, 254},
		{-0.2, 0},
		{1.5, 255},
	}

	for _, tc := range tests {
		got := ColorFromFloat([4]float32{tc.in, tc.in, tc.in, tc.in})
		if got.R != tc.want || got.A != tc.want {
			t.Errorf("ColorFromFloat(%v) = %d, want %d", tc.in, got.R, tc.want)
		}
	}
}

func TestRGBA_Float(t *testing.T) {
	f := RGBA{255, 0, 51, 255}.Float()
	if f[0] != 1 || f[1] != 0 || f[3] != 1 {
		t.Errorf("unexpected float color %v", f)
	}
	if gomath.Abs(float64(f[2])-0.2) > 1e-6 {
		t.Errorf("expected blue 0.2, got %f", f[2])
	}
}

func TestParseProfile(t *testing.T) {
	for _, p := range []Profile{ProfileMinimal, ProfileExtended} {
		got, err := ParseProfile(p.String())
		if err != nil || got != p {
			t.Errorf("ParseProfile(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParseProfile("compact"); err == nil {
		t.Error("expected error for unknown profile name")
	}
}
