package fixture

import "testing"

func TestIsSchedulable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status string
		want   bool
	}{
		{"NS", true},
		{"tbd", true},
		{"", true},
		{"FT", false},
		{"PST", false},
		{"1H", false},
	}
	for _, tc := range cases {
		if got := IsSchedulable(tc.status); got != tc.want {
			t.Fatalf("IsSchedulable(%q): got=%t want=%t", tc.status, got, tc.want)
		}
	}
}

func TestIsAbandonedStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []string{"PST", "CANC", "pst", " canc "} {
		if !IsAbandonedStatus(status) {
			t.Fatalf("expected %q to be abandoned", status)
		}
	}
	for _, status := range []string{"NS", "TBD", "FT", ""} {
		if IsAbandonedStatus(status) {
			t.Fatalf("expected %q to not be abandoned", status)
		}
	}
}

func TestIsFinishedStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []string{"FT", "AET", "PEN", "ft"} {
		if !IsFinishedStatus(status) {
			t.Fatalf("expected %q to be finished", status)
		}
	}
	for _, status := range []string{"NS", "TBD", "1H", ""} {
		if IsFinishedStatus(status) {
			t.Fatalf("expected %q to not be finished", status)
		}
	}
}
