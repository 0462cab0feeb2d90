package standing

import "testing"

func TestNormalizeForm(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"WWDLW", "WWDLW"},
		{"w-w-d", "WWD"},
		{" W W L ", "WWL"},
		{"", ""},
		{"??", ""},
	}
	for _, tc := range cases {
		if got := NormalizeForm(tc.raw); got != tc.want {
			t.Fatalf("NormalizeForm(%q): got=%q want=%q", tc.raw, got, tc.want)
		}
	}
}

func TestFindTeam(t *testing.T) {
	t.Parallel()

	table := Table{
		LeagueID: 39,
		Rows: []Record{
			{Rank: 1, TeamName: "Arsenal"},
			{Rank: 2, TeamName: "Manchester City"},
		},
	}

	row, ok := table.FindTeam("Manchester City")
	if !ok || row.Rank != 2 {
		t.Fatalf("expected Manchester City at rank 2, got %+v ok=%t", row, ok)
	}
	if _, ok := table.FindTeam("Fulham"); ok {
		t.Fatalf("expected miss for absent team")
	}
}
