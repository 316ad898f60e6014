package lms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andover-chess-club/fixtures-service/internal/domain"
	"github.com/andover-chess-club/fixtures-service/internal/timeutil"
)

// skip reasons surfaced via logs and metrics whenever a row is dropped.
const (
	skipShortRow     = "short_row"
	skipEmptyDate    = "empty_date"
	skipUnattributed = "unattributed_result"
)

// Fixture table columns: home team, result, away team, date, time, notes.
const (
	colHome = iota
	colResult
	colAway
	colDate
	colTime
	colNotes
)

// mapFixtureRow shapes one table row into a Fixture. The second return value
// names the skip reason when the row cannot be used; mapping never fails hard.
func mapFixtureRow(row Row, teamLetter, clubName, competition, baseURL string) (domain.Fixture, string) {
	if len(row.Cells) < minFixtureCells {
		return domain.Fixture{}, skipShortRow
	}

	date := ParseDate(row.Cells[colDate])
	if date == "" {
		return domain.Fixture{}, skipEmptyDate
	}

	home := row.Cells[colHome]
	away := row.Cells[colAway]
	resultText := row.Cells[colResult]
	notes := row.Cells[colNotes]

	fixture := domain.Fixture{
		ID:          fixtureID(clubName, teamLetter, date),
		HomeTeam:    home,
		AwayTeam:    away,
		Date:        date,
		Time:        ParseTime(row.Cells[colTime]),
		Venue:       venueFor(home, clubName),
		Competition: competition,
		Status:      domain.StatusUpcoming,
		Notes:       notes,
		FixtureURL:  absoluteURL(baseURL, row.Link),
	}

	switch {
	case mentionsStatus(resultText, notes, "postponed"):
		fixture.Status = domain.StatusPostponed
	case mentionsStatus(resultText, notes, "cancelled"):
		fixture.Status = domain.StatusCancelled
	case HasResult(resultText):
		result, ok := ResultFromScore(resultText, home, away, clubName)
		if !ok {
			// Can't attribute the result to a side; serve the fixture as
			// upcoming rather than publish a completed match with no outcome.
			return fixture, skipUnattributed
		}
		fixture.Status = domain.StatusCompleted
		fixture.Score = NormalizeScore(resultText)
		fixture.Result = result
	}

	return fixture, ""
}

// fixtureID derives the stable per-fixture identifier. Two fixtures for the
// same team on the same date collide; the league site gives us nothing better
// to key on, so the later row wins during merge.
func fixtureID(clubName, teamLetter, date string) string {
	return fmt.Sprintf("%s-%s-%s",
		slugify(clubName),
		strings.ToLower(teamLetter),
		timeutil.CompactDate(date),
	)
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(slug, " ", "-")
}

func venueFor(homeTeam, clubName string) domain.Venue {
	if containsFold(homeTeam, clubName) {
		return domain.VenueHome
	}
	return domain.VenueAway
}

func mentionsStatus(resultText, notes, word string) bool {
	return containsFold(resultText, word) || containsFold(notes, word)
}

func absoluteURL(baseURL, link string) string {
	if link == "" {
		return ""
	}
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(link, "/")
}

// League table columns: position, team, played, won, drawn, lost, board points,
// match points.
func mapTableRow(row Row) (domain.TableRow, string) {
	if len(row.Cells) < minTableCells {
		return domain.TableRow{}, skipShortRow
	}

	points, _ := sideValue(row.Cells[7])
	return domain.TableRow{
		Position:    intOrZero(row.Cells[0]),
		Team:        row.Cells[1],
		Played:      intOrZero(row.Cells[2]),
		Won:         intOrZero(row.Cells[3]),
		Drawn:       intOrZero(row.Cells[4]),
		Lost:        intOrZero(row.Cells[5]),
		BoardPoints: NormalizeScore(row.Cells[6]),
		MatchPoints: points,
	}, ""
}

// Match card columns: board number, home player, game result, away player.
func mapBoardRow(row Row) (domain.Board, string) {
	if len(row.Cells) < minBoardCells {
		return domain.Board{}, skipShortRow
	}

	return domain.Board{
		Number:     intOrZero(row.Cells[0]),
		HomePlayer: CleanPlayerName(row.Cells[1]),
		AwayPlayer: StripLeadingMarker(CleanPlayerName(row.Cells[3])),
		Result:     NormalizeScore(row.Cells[2]),
	}, ""
}

func intOrZero(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}
