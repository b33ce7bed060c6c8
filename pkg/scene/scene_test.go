package scene

import (
	"errors"
	"testing"
)

func TestNormalizeKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "matrix cells",
			in:   `<transform 00="1" 01="0" 32="5"/>`,
			want: `<transform t00="1" t01="0" t32="5"/>`,
		},
		{
			name: "already prefixed",
			in:   `<transform r00="1"/>`,
			want: `<transform r00="1"/>`,
		},
		{
			name: "newline separated",
			in:   "<transform\n\t10=\"2\"/>",
			want: "<transform\n\tt10=\"2\"/>",
		},
		{
			name: "digits in values untouched",
			in:   `<position x="12" y="-33"/>`,
			want: `<position x="12" y="-33"/>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(NormalizeKeys([]byte(tt.in)))
			if got != tt.want {
				t.Errorf("NormalizeKeys(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMeshReference(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"meshes/tile_part.mesh", "tile_part.mesh"},
		{"tile_part.mesh", "tile_part.mesh"},
		{"meshes/component_robotic_pivot_b_no_trans.mesh", "assets_meshes_component_robotic_pivot_b_no_trans.mesh"},
		{"component_robotic_pivot_b_no_trans.mesh", "assets_meshes_component_robotic_pivot_b_no_trans.mesh"},
	}

	for _, tc := range tests {
		if got := meshReference(tc.in); got != tc.want {
			t.Errorf("meshReference(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseDocument_Invalid(t *testing.T) {
	_, err := parseDocument([]byte("<definition><meshes></definition>"))
	if !errors.Is(err, ErrInvalidXML) {
		t.Errorf("expected ErrInvalidXML, got %v", err)
	}
}
