package domain

import "testing"

func TestSpanContains(t *testing.T) {
	outer := Span{Start: 10, End: 20}

	tests := []struct {
		inner Span
		want  bool
	}{
		{Span{Start: 10, End: 20}, true},
		{Span{Start: 12, End: 15}, true},
		{Span{Start: 9, End: 15}, false},
		{Span{Start: 15, End: 21}, false},
	}
	for _, tt := range tests {
		if got := outer.Contains(tt.inner); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.inner, got, tt.want)
		}
	}
}

func TestCountSymbols(t *testing.T) {
	symbols := []Symbol{
		{Name: "ns", Children: []Symbol{
			{Name: "Class", Children: []Symbol{
				{Name: "method"},
				{Name: "field"},
			}},
			{Name: "fn"},
		}},
		{Name: "top"},
	}
	if got := CountSymbols(symbols); got != 6 {
		t.Errorf("CountSymbols = %d, want 6", got)
	}
	if got := CountSymbols(nil); got != 0 {
		t.Errorf("CountSymbols(nil) = %d, want 0", got)
	}
}
