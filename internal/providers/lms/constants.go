package lms

import "time"

const (
	userAgent          = "andover-fixtures-service/1.0 (github.com/andover-chess-club/fixtures-service)"
	defaultHTTPTimeout = 10 * time.Second

	// Cell counts below these minimums mean a decorative or malformed row.
	minFixtureCells = 6
	minTableCells   = 8
	minBoardCells   = 4

	// Club matches start at 19:30 unless the page says otherwise.
	defaultMatchTime = "19:30"

	// Competition label used when no division appears in the page breadcrumb.
	defaultCompetition = "Southampton Chess League"
)

// headerLabels are first-cell values that mark a header row, compared
// case-insensitively after trimming.
var headerLabels = []string{"Home Team", "Result", "Team", "Play"}
