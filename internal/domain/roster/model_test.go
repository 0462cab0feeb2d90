package roster

import (
	"reflect"
	"testing"
)

func TestInjuredKeyPlayers(t *testing.T) {
	t.Parallel()

	squads := FixtureRoster{
		FixtureID: 1,
		Home: []Player{
			{ID: 10, Name: "Saka", Rating: 7.8},
			{ID: 11, Name: "White", Rating: 6.4},
		},
		Away: []Player{
			{ID: 20, Name: "Jimenez", Rating: 7.1},
		},
	}
	injuries := FixtureInjuries{
		FixtureID: 1,
		Items: []Injury{
			{PlayerID: 10, PlayerName: "Saka"},
			{PlayerID: 11, PlayerName: "White"},
			{PlayerID: 20, PlayerName: "Jimenez"},
		},
	}

	got := InjuredKeyPlayers(squads, injuries, 7.0)
	want := []string{"Saka", "Jimenez"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected key players: got=%v want=%v", got, want)
	}

	if got := InjuredKeyPlayers(squads, FixtureInjuries{}, 7.0); len(got) != 0 {
		t.Fatalf("expected no warnings without injuries, got %v", got)
	}
}
