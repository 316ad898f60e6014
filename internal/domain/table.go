package domain

// TableRow is one standings entry from a division's league table.
// Board points keep their scraped text form because half points (½) are common.
type TableRow struct {
	Position    int     `json:"position"`
	Team        string  `json:"team"`
	Played      int     `json:"played"`
	Won         int     `json:"won"`
	Drawn       int     `json:"drawn"`
	Lost        int     `json:"lost"`
	BoardPoints string  `json:"boardPoints"`
	MatchPoints float64 `json:"matchPoints"`
}

// LeagueTable is the standings of one division.
type LeagueTable struct {
	Division string     `json:"division"`
	Rows     []TableRow `json:"rows"`
}
