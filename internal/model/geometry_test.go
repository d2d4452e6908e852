package model

import "testing"

func TestParseGeometryPolygon(t *testing.T) {
	multi, err := ParseGeometry(`[[[3.0,36.7],[3.5,36.7],[3.5,37.0],[3.0,37.0],[3.0,36.7]]]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(multi) != 1 {
		t.Fatalf("expected 1 polygon, got %d", len(multi))
	}
	if len(multi[0]) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(multi[0]))
	}
	if len(multi[0][0]) != 5 {
		t.Fatalf("expected 5 points, got %d", len(multi[0][0]))
	}
	if got := multi[0][0][0]; got[0] != 3.0 || got[1] != 36.7 {
		t.Errorf("first point = %v, want (3.0, 36.7)", got)
	}
}

func TestParseGeometryPolygonWithHole(t *testing.T) {
	multi, err := ParseGeometry(`[
		[[0,0],[10,0],[10,10],[0,10],[0,0]],
		[[4,4],[6,4],[6,6],[4,6],[4,4]]
	]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(multi) != 1 || len(multi[0]) != 2 {
		t.Fatalf("expected 1 polygon with 2 rings, got %d/%d", len(multi), len(multi[0]))
	}
}

func TestParseGeometryMultiPolygon(t *testing.T) {
	multi, err := ParseGeometry(`[
		[[[0,0],[1,0],[1,1],[0,1],[0,0]]],
		[[[5,5],[6,5],[6,6],[5,6],[5,5]]]
	]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(multi) != 2 {
		t.Fatalf("expected 2 polygons, got %d", len(multi))
	}
}

func TestParseGeometryMalformed(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"not json", "not json at all"},
		{"wrong shape", `{"type":"Polygon"}`},
		{"empty", `[]`},
		{"no rings", `[[]]`},
		{"short ring", `[[[0,0],[1,1]]]`},
		{"short pair", `[[[0],[1,1],[2,2]]]`},
		{"non numeric", `[[["a","b"],[1,1],[2,2]]]`},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGeometry(tt.in); err == nil {
				t.Errorf("expected error for %q", tt.in)
			}
		})
	}
}
