package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"  ", 10, ""},
		{"short", 10, "short"},
		{"abcdef", 4, "abc…"},
		{"abcdef", 1, "a"},
		{"카페 그린리프", 3, "카페…"},
		{"x", 0, "x"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	if got := formatDistance(0); got != "—" {
		t.Fatalf("formatDistance(0) = %q", got)
	}
	if got := formatDistance(350); got != "350 m" {
		t.Fatalf("formatDistance(350) = %q, want 350 m", got)
	}
	if got := formatDistance(1250); got != "1.2 km" && got != "1.3 km" {
		t.Fatalf("formatDistance(1250) = %q, want ~1.2 km", got)
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := map[int]string{
		-1:  "—",
		5:   "5 min",
		60:  "1h",
		125: "2h 5m",
	}
	for in, want := range cases {
		if got := formatMinutes(in); got != want {
			t.Fatalf("formatMinutes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitTags(t *testing.T) {
	got := splitTags(" cafe, park ,, cafe ,library")
	want := []string{"cafe", "park", "library"}
	if len(got) != len(want) {
		t.Fatalf("splitTags = %#v, want %#v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("splitTags = %#v, want %#v", got, want)
		}
	}
	if empty := splitTags("  "); empty == nil || len(empty) != 0 {
		t.Fatalf("splitTags(blank) = %#v, want empty non-nil", empty)
	}
}

func TestClampInt(t *testing.T) {
	if clampInt(-5, 0, 10) != 0 || clampInt(50, 0, 10) != 10 || clampInt(3, 0, 10) != 3 {
		t.Fatalf("clampInt misbehaves")
	}
}
