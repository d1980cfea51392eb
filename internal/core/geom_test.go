package core

import "testing"

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected Rect
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: NewRect(5, 5, 5, 5),
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: Rect{},
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: NewRect(5, 5, 5, 5),
		},
		{
			name:     "partly off screen",
			a:        NewRect(0, 0, 80, 24),
			b:        NewRect(-3, 20, 10, 10),
			expected: NewRect(0, 20, 7, 4),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.Intersect(tc.b)
			if got != tc.expected {
				t.Errorf("Intersect() = %+v, expected %+v", got, tc.expected)
			}
			if rev := tc.b.Intersect(tc.a); rev != tc.expected {
				t.Errorf("Intersect() (reversed) = %+v, expected %+v", rev, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
	if r.Empty() {
		t.Error("20x15 rect should not be empty")
	}
	if !NewRect(0, 0, 0, 3).Empty() {
		t.Error("zero-width rect should be empty")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestParseColor(t *testing.T) {
	if ParseColor("SeaGreen") != ColorSeaGreen {
		t.Error("ParseColor should be case-insensitive")
	}
	if ParseColor("red") != ColorRed {
		t.Error("ParseColor(red) should be ColorRed")
	}
	if ParseColor("chartreuse") != ColorDefault {
		t.Error("unknown colors should fall back to default")
	}
	if ColorSeaGreen.String() != "seagreen" {
		t.Errorf("ColorSeaGreen.String() = %q", ColorSeaGreen.String())
	}
}

func TestCheckSurface(t *testing.T) {
	if err := DefaultConfig().CheckSurface(); err != nil {
		t.Errorf("default config should have a surface, got %v", err)
	}
	cfg := DefaultConfig()
	cfg.ScreenH = 0
	if err := cfg.CheckSurface(); err != ErrNoSurface {
		t.Errorf("zero height should report ErrNoSurface, got %v", err)
	}
}
