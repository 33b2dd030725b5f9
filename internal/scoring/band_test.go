package scoring

import (
	"testing"
)

func TestBand(t *testing.T) {
	cases := []struct {
		correct, total int
		want           string
	}{
		{0, 0, ""},
		{38, 38, "9.0"},
		{36, 38, "8.5"}, // 0.947
		{29, 38, "7.0"}, // 0.763
		{19, 38, "5.0"}, // 0.5
		{5, 38, "3.5"},
		{0, 38, "3.5"},
	}

	for _, tc := range cases {
		if got := Band(tc.correct, tc.total); got != tc.want {
			t.Errorf("Band(%d, %d) = %q, want %q", tc.correct, tc.total, got, tc.want)
		}
	}
}
