package scoring

import (
	"testing"
)

func TestNormalizeCaseInsensitive(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Saturday", "saturday"},
		{" saturday ", "saturday"},
		{"NOT  GIVEN", "not given"},
		{"\tTrue\n", "true"},
		{"42", "42"},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in, CaseInsensitive); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeUpperExact(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"a", "A"},
		{" b ", "B"},
		{"C", "C"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in, UpperExact); got != tc.want {
			t.Errorf("Normalize(%q, UpperExact) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
