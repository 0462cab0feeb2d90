package apifootball

// Wire shapes for the provider's v3 query endpoints. Every payload carries
// a top-level "response" list plus an "errors" field that is an empty list
// on success and an object keyed by error kind on failure, even under a
// 200 status.

type fixturesEnvelope struct {
	Errors   any           `json:"errors"`
	Results  int           `json:"results"`
	Response []fixtureItem `json:"response"`
}

type fixtureItem struct {
	Fixture struct {
		ID     int64  `json:"id"`
		Date   string `json:"date"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"league"`
	Teams struct {
		Home struct {
			Name string `json:"name"`
		} `json:"home"`
		Away struct {
			Name string `json:"name"`
		} `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type standingsEnvelope struct {
	Errors   any `json:"errors"`
	Response []struct {
		League struct {
			ID        int64            `json:"id"`
			Standings [][]standingItem `json:"standings"`
		} `json:"league"`
	} `json:"response"`
}

type standingItem struct {
	Rank int `json:"rank"`
	Team struct {
		Name string `json:"name"`
	} `json:"team"`
	Points      int    `json:"points"`
	GoalsDiff   int    `json:"goalsDiff"`
	Form        string `json:"form"`
	Description string `json:"description"`
}

type predictionsEnvelope struct {
	Errors   any              `json:"errors"`
	Response []predictionItem `json:"response"`
}

type predictionItem struct {
	Predictions struct {
		Winner struct {
			Name    string `json:"name"`
			Comment string `json:"comment"`
		} `json:"winner"`
		Advice  string `json:"advice"`
		Percent struct {
			Home string `json:"home"`
			Draw string `json:"draw"`
			Away string `json:"away"`
		} `json:"percent"`
	} `json:"predictions"`
	Teams struct {
		Home predictionTeam `json:"home"`
		Away predictionTeam `json:"away"`
	} `json:"teams"`
}

type predictionTeam struct {
	Name   string `json:"name"`
	League struct {
		Fixtures struct {
			Wins struct {
				Total int `json:"total"`
			} `json:"wins"`
			Loses struct {
				Total int `json:"total"`
			} `json:"loses"`
		} `json:"fixtures"`
		Goals struct {
			For struct {
				Total struct {
					Total int `json:"total"`
				} `json:"total"`
			} `json:"for"`
			Against struct {
				Total struct {
					Total int `json:"total"`
				} `json:"total"`
			} `json:"against"`
		} `json:"goals"`
	} `json:"league"`
}

type playersEnvelope struct {
	Errors   any `json:"errors"`
	Response []struct {
		Team struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"team"`
		Players []struct {
			Player struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			} `json:"player"`
			Statistics []struct {
				Games struct {
					Rating string `json:"rating"`
				} `json:"games"`
			} `json:"statistics"`
		} `json:"players"`
	} `json:"response"`
}

type injuriesEnvelope struct {
	Errors   any `json:"errors"`
	Response []struct {
		Player struct {
			ID     int64  `json:"id"`
			Name   string `json:"name"`
			Reason string `json:"reason"`
		} `json:"player"`
		Team struct {
			Name string `json:"name"`
		} `json:"team"`
	} `json:"response"`
}
