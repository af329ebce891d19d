package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint spans",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "contained span",
			a:        Span{File: 1, Start: 10, End: 40},
			b:        Span{File: 1, Start: 20, End: 30},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "different files keep receiver",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 2, Start: 0, End: 50},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"adjacent", Span{Start: 0, End: 4}, Span{Start: 4, End: 8}, false},
		{"overlapping", Span{Start: 0, End: 5}, Span{Start: 4, End: 8}, true},
		{"two empty at same offset", Span{Start: 3, End: 3}, Span{Start: 3, End: 3}, false},
		{"empty inside non-empty", Span{Start: 3, End: 3}, Span{Start: 0, End: 8}, true},
		{"empty at end of non-empty", Span{Start: 8, End: 8}, Span{Start: 0, End: 8}, false},
		{"different files", Span{File: 1, Start: 0, End: 8}, Span{File: 2, Start: 0, End: 8}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpan_LenEmptyContains(t *testing.T) {
	s := Span{File: 0, Start: 5, End: 9}
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	if s.Empty() {
		t.Fatal("expected non-empty span")
	}
	if !s.Contains(5) || !s.Contains(8) || s.Contains(9) {
		t.Fatal("Contains must treat span as half-open")
	}
	if s.String() != "0:5-9" {
		t.Fatalf("String() = %q", s.String())
	}
}
