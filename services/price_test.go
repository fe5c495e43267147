package services

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"£200,000", 200000, true},
		{"£1,250,000", 1250000, true},
		{"£95000", 95000, true},
		{"£200,000.99", 200000, true}, // pence truncated
		{"200000", 200000, true},
		{"", 0, false},
		{"POA", 0, false},
		{"£", 0, false},
		{"£12a34", 0, false},
	}

	for _, tt := range tests {
		got := ParsePrice(tt.raw)
		if tt.ok {
			if got == nil {
				t.Errorf("ParsePrice(%q) = nil; want %d", tt.raw, tt.want)
				continue
			}
			if *got != tt.want {
				t.Errorf("ParsePrice(%q) = %d; want %d", tt.raw, *got, tt.want)
			}
		} else if got != nil {
			t.Errorf("ParsePrice(%q) = %d; want nil", tt.raw, *got)
		}
	}
}

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Guide Price £200,000", "£200,000"},
		{"£150,000.00", "£150,000.00"},
		{"Offers over £95,000 — chain free", "£95,000"},
		{"Price on application", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtractPrice(tt.text); got != tt.want {
			t.Errorf("ExtractPrice(%q) = %q; want %q", tt.text, got, tt.want)
		}
	}
}
