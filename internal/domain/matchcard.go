package domain

// Board is one board's pairing and game result within a match card.
type Board struct {
	Number     int    `json:"number"`
	HomePlayer string `json:"homePlayer"`
	AwayPlayer string `json:"awayPlayer"`
	Result     string `json:"result"` // "1-0", "½-½", "0-1" or "" when unplayed
}

// MatchCard is the board-by-board detail of a single match.
type MatchCard struct {
	HomeTeam string  `json:"homeTeam"`
	AwayTeam string  `json:"awayTeam"`
	Score    string  `json:"score,omitempty"`
	Boards   []Board `json:"boards"`
}
