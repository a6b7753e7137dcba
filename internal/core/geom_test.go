package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"top-left corner", 2, 3, true},
		{"inside", 4, 5, true},
		{"last column", 5, 7, true},
		{"right edge exclusive", 6, 5, false},
		{"bottom edge exclusive", 3, 8, false},
		{"left of rect", 1, 4, false},
		{"above rect", 3, 2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)

	inner := outer.Centered(20, 10)
	if inner.X != 30 || inner.Y != 7 {
		t.Errorf("Centered(20, 10) = (%d, %d), expected (30, 7)", inner.X, inner.Y)
	}
	if inner.W != 20 || inner.H != 10 {
		t.Errorf("Centered size = %dx%d, expected 20x10", inner.W, inner.H)
	}

	// Larger than the outer rect sticks to the origin
	big := outer.Centered(100, 30)
	if big.X != 0 || big.Y != 0 {
		t.Errorf("Centered(100, 30) = (%d, %d), expected (0, 0)", big.X, big.Y)
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
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 || Min(7, 3) != 3 {
		t.Error("Min() returned the larger value")
	}
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Error("Max() returned the smaller value")
	}
}
