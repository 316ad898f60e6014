package lms

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/andover-chess-club/fixtures-service/internal/domain"
)

// The league site prints dates like "Tue 23 Sep 25", usually without a year
// early in the season. The fallback year below matches the season the site
// currently shows; it will need revisiting when the league rolls over.
// TODO: derive the fallback from the season breadcrumb once its format is confirmed.
const fallbackYear = "25"

var monthLookup = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

var (
	timePattern   = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	dashPattern   = regexp.MustCompile(`[–—]`)
	spacePattern  = regexp.MustCompile(`\s+`)
	ratingPattern = regexp.MustCompile(`\s*\(\d+\)\s*$`)
	trailingCap   = regexp.MustCompile(`\s+[A-Z]$`)
	divPattern    = regexp.MustCompile(`(?i)\bdiv(?:ision)?\s*(\d+)`)
)

// ParseDate turns "<Weekday> <Day> <Mon> [<YY>]" into YYYY-MM-DD.
// Unparseable input degrades to "" and the caller drops the row.
func ParseDate(raw string) string {
	tokens := strings.Fields(raw)
	if len(tokens) < 3 {
		return ""
	}

	day, err := strconv.Atoi(tokens[1])
	if err != nil || day < 1 || day > 31 {
		return ""
	}

	monthKey := strings.ToLower(tokens[2])
	if len(monthKey) > 3 {
		monthKey = monthKey[:3]
	}
	month, ok := monthLookup[monthKey]
	if !ok {
		return ""
	}

	year := fallbackYear
	if len(tokens) > 3 {
		year = tokens[3]
	}
	year = expandYear(year)
	if year == "" {
		return ""
	}

	return fmt.Sprintf("%s-%s-%02d", year, month, day)
}

func expandYear(raw string) string {
	if len(raw) == 4 {
		if _, err := strconv.Atoi(raw); err == nil {
			return raw
		}
		return ""
	}
	if len(raw) == 2 {
		if _, err := strconv.Atoi(raw); err == nil {
			return "20" + raw
		}
	}
	return ""
}

// ParseTime extracts the first HH:MM from the text, defaulting to the usual
// club start time when nothing matches.
func ParseTime(raw string) string {
	match := timePattern.FindStringSubmatch(raw)
	if match == nil {
		return defaultMatchTime
	}
	hour, err := strconv.Atoi(match[1])
	if err != nil || hour > 23 {
		return defaultMatchTime
	}
	return fmt.Sprintf("%02d:%s", hour, match[2])
}

// NormalizeScore canonicalizes a scraped score: en/em dashes become ASCII
// hyphens and all whitespace is dropped, so "3 – 2" and "3 ½-2 ½" come out
// as "3-2" and "3½-2½". The ½ glyph is preserved.
func NormalizeScore(raw string) string {
	score := dashPattern.ReplaceAllString(raw, "-")
	return spacePattern.ReplaceAllString(strings.TrimSpace(score), "")
}

// HasResult reports whether a result cell carries a real result. The league
// site shows "0 - 0" as a placeholder until a result is entered.
func HasResult(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	return trimmed != "0-0" && trimmed != "0 - 0"
}

// ResultFromScore computes Win/Loss/Draw from the club's perspective. The club
// side is found by case-insensitive containment of the club name in the team
// names; chess match scores carry half points, so a small epsilon decides draws.
// Returns ok=false when the score or club attribution cannot be resolved.
func ResultFromScore(score, homeTeam, awayTeam, clubName string) (domain.Result, bool) {
	home, away, ok := splitScore(score)
	if !ok {
		return "", false
	}

	clubIsHome := containsFold(homeTeam, clubName)
	clubIsAway := containsFold(awayTeam, clubName)
	if clubIsHome == clubIsAway {
		// Club on both sides or neither: attribution is meaningless.
		return "", false
	}

	if math.Abs(home-away) < 0.01 {
		return domain.ResultDraw, true
	}

	clubWon := (clubIsHome && home > away) || (clubIsAway && away > home)
	if clubWon {
		return domain.ResultWin, true
	}
	return domain.ResultLoss, true
}

func splitScore(score string) (home, away float64, ok bool) {
	left, right, found := strings.Cut(NormalizeScore(score), "-")
	if !found {
		return 0, 0, false
	}
	home, ok = sideValue(left)
	if !ok {
		return 0, 0, false
	}
	away, ok = sideValue(right)
	if !ok {
		return 0, 0, false
	}
	return home, away, true
}

// sideValue parses one side of a score, mapping the ½ glyph to .5 so "3½"
// reads as 3.5 and a bare "½" as 0.5.
func sideValue(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), "½", ".5")
	if cleaned == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// CleanPlayerName strips the decorations the site appends to names on match
// cards: a trailing rating in parentheses and a single trailing capital-letter
// team marker. "J Smith (1824) A" becomes "J Smith".
func CleanPlayerName(raw string) string {
	// The marker may sit on either side of the rating, so strip in both orders.
	name := strings.TrimSpace(raw)
	name = trailingCap.ReplaceAllString(name, "")
	name = ratingPattern.ReplaceAllString(name, "")
	name = trailingCap.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// StripLeadingMarker removes a single leading capital-letter membership marker,
// which the site prefixes to the second name of a pairing. The marker is only
// stripped when at least two tokens remain, so a bare initial ("J Smith")
// survives intact.
func StripLeadingMarker(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) >= 3 && len(tokens[0]) == 1 && tokens[0] >= "A" && tokens[0] <= "Z" {
		return strings.Join(tokens[1:], " ")
	}
	return strings.TrimSpace(name)
}

// CompetitionFromBreadcrumb infers the competition label from breadcrumb text.
// A "Div N" (or "Division N") substring wins; anything else falls back to the
// generic league name.
func CompetitionFromBreadcrumb(breadcrumb string) string {
	match := divPattern.FindStringSubmatch(breadcrumb)
	if match == nil {
		return defaultCompetition
	}
	return "Division " + match[1]
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
