package domain

import "time"

// Status describes the lifecycle of a fixture as inferred from the league site.
// It is derived from page text, never authoritative.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusPostponed Status = "postponed"
	StatusCancelled Status = "cancelled"
)

// Result is the outcome of a completed match from the club's perspective.
type Result string

const (
	ResultWin  Result = "Win"
	ResultLoss Result = "Loss"
	ResultDraw Result = "Draw"
)

// Venue records whether the club played at its own ground or travelled.
type Venue string

const (
	VenueHome Venue = "home"
	VenueAway Venue = "away"
)

// Fixture is the canonical match record exposed by the service.
// Team names are kept as scraped; one of them contains the club's name.
type Fixture struct {
	ID          string `json:"id"`
	HomeTeam    string `json:"homeTeam"`
	AwayTeam    string `json:"awayTeam"`
	Date        string `json:"date"` // YYYY-MM-DD, wall-clock in the club's locale
	Time        string `json:"time"` // HH:MM 24-hour
	Venue       Venue  `json:"venue"`
	Competition string `json:"competition"`
	Status      Status `json:"status"`
	Result      Result `json:"result,omitempty"`
	Score       string `json:"score,omitempty"`
	FixtureURL  string `json:"fixtureUrl,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Completed reports whether the fixture carries a real result.
// Invariant: completed fixtures have both a result and a score.
func (f Fixture) Completed() bool {
	return f.Status == StatusCompleted
}

// FixturesSnapshot is one full aggregation pass over every team page.
// Snapshots are ephemeral; each pass rebuilds the whole set.
type FixturesSnapshot struct {
	Fixtures  []Fixture `json:"fixtures"`
	FetchedAt time.Time `json:"fetchedAt"`
}
