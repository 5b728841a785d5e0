package services

import "testing"

func TestClassifyItemDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expect   string
		expectOK bool
	}{
		{"base unit", "Base Unit", "Base Cabinets", true},
		{"base cabinet lowercase", "base cabinet with drawers", "Base Cabinets", true},
		{"wall unit", "Wall Unit 600mm", "Wall Cabinets", true},
		{"tall unit", "Tall Unit - Larder", "Tall Cabinets", true},
		{"mid tall", "Mid Tall Unit", "Tall Cabinets", true},
		{"suspended", "Suspended Cabinet", "Suspended Cabinets", true},
		{"open shelf", "Open Shelf 900mm", "Open Shelf & Panels", true},
		{"end panel", "End Panel", "Open Shelf & Panels", true},
		{"skirting", "Skirting Run", "Skirting", true},
		{"loft", "Loft Storage Unit", "Lofts", true},
		{"pooja", "Pooja Unit", "Pooja Units", true},
		{"filler", "Filler Strip", "Fillers", true},
		{"sliding wardrobe", "Sliding Wardrobe - 2 Door", "Sliding Wardrobes", true},
		{"hinged wardrobe", "Wardrobe 3 Door Hinged", "Hinged Wardrobes", true},
		{"sliding beats generic wardrobe", "2 Door Sliding Wardrobe", "Sliding Wardrobes", true},
		{"unrecognized", "Granite Countertop", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyItemDescription(tt.input)
			if ok != tt.expectOK {
				t.Fatalf("ClassifyItemDescription(%q) ok = %v, want %v", tt.input, ok, tt.expectOK)
			}
			if got != tt.expect {
				t.Errorf("ClassifyItemDescription(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestCanonicalTypeName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"known heading", "Base Cabinets:", "Base Cabinets"},
		{"known heading no colon", "Wall units", "Wall Cabinets"},
		{"unknown heading kept verbatim", "Custom Bay Unit", "Custom Bay Unit"},
		{"unknown heading colon stripped", "Custom Bay Unit:", "Custom Bay Unit"},
		{"whitespace trimmed", "  Lofts  ", "Lofts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalTypeName(tt.input)
			if got != tt.expect {
				t.Errorf("CanonicalTypeName(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}
