package drawutil

import (
	"testing"
)

func TestScrollStep(t *testing.T) {
	tt := []struct {
		s      string
		height int
		unit   int
		n      int
	}{
		{"", 400, 40, 40},
		{"0", 400, 40, 40},
		{"-1", 400, 40, 40},
		{"two", 400, 40, 40},
		{"1", 400, 40, 40},
		{"3", 400, 40, 120},
		{"%", 400, 40, 40},
		{"0%", 400, 40, 40},
		{"-42%", 400, 40, 40},
		{"five%", 400, 40, 40},
		{"10%", 400, 40, 40},
		{"25%", 400, 40, 100},
		{"123%", 400, 40, 400},
		{"0.1%", 400, 40, 40},
		{"", 400, 0, 1},
	}
	for _, tc := range tt {
		t.Setenv("mousescrollsize", tc.s)
		n := scrollStep(always{}, tc.height, tc.unit)
		if n != tc.n {
			t.Errorf("mousescrollsize of %q for height %d, unit %d is %d; expected %d",
				tc.s, tc.height, tc.unit, n, tc.n)
		}
	}
}

type always struct{}

func (a always) Do(f func()) { f() }
