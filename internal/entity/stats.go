package entity

const (
	StatGamesPlayed = "games-played"
	StatWinsX       = "wins-by-side-a"
	StatWinsO       = "wins-by-side-b"
	StatDraws       = "draws"
)

var StatNames = []string{StatGamesPlayed, StatWinsX, StatWinsO, StatDraws}

type Stats struct {
	GamesPlayed int64 `json:"games_played"`
	WinsX       int64 `json:"wins_x"`
	WinsO       int64 `json:"wins_o"`
	Draws       int64 `json:"draws"`
}

// Set - assigns a counter by its storage name. Unknown names are ignored.
func (that *Stats) Set(name string, value int64) {
	switch name {
	case StatGamesPlayed:
		that.GamesPlayed = value
	case StatWinsX:
		that.WinsX = value
	case StatWinsO:
		that.WinsO = value
	case StatDraws:
		that.Draws = value
	}
}

// StatIncrements - the counters a finished game bumps.
func StatIncrements(result MoveResult) []string {
	switch {
	case result.Kind == ResultGameDrawn:
		return []string{StatGamesPlayed, StatDraws}
	case result.Kind == ResultGameWon && result.Winner == PlayerX:
		return []string{StatGamesPlayed, StatWinsX}
	case result.Kind == ResultGameWon && result.Winner == PlayerO:
		return []string{StatGamesPlayed, StatWinsO}
	default:
		return nil
	}
}
