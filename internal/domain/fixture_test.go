package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestStatusValues(t *testing.T) {
	expected := map[Status]string{
		StatusUpcoming:  "upcoming",
		StatusCompleted: "completed",
		StatusPostponed: "postponed",
		StatusCancelled: "cancelled",
	}
	for status, want := range expected {
		if string(status) != want {
			t.Fatalf("expected %q got %q", want, status)
		}
	}
}

func TestCompleted(t *testing.T) {
	if (Fixture{Status: StatusUpcoming}).Completed() {
		t.Fatal("upcoming fixture should not be completed")
	}
	if !(Fixture{Status: StatusCompleted}).Completed() {
		t.Fatal("completed fixture should report completed")
	}
}

func TestFixtureJSONOmitsEmptyOptionals(t *testing.T) {
	f := Fixture{
		ID:          "andover-a-20250923",
		HomeTeam:    "Andover A",
		AwayTeam:    "Winchester A",
		Date:        "2025-09-23",
		Time:        "19:30",
		Venue:       VenueHome,
		Competition: "Southampton Chess League",
		Status:      StatusUpcoming,
	}

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, absent := range []string{"result", "score", "fixtureUrl", "notes"} {
		if strings.Contains(string(data), absent) {
			t.Fatalf("expected %q to be omitted, got %s", absent, data)
		}
	}
}

func TestFixtureJSONKeepsHalfPointScore(t *testing.T) {
	f := Fixture{Status: StatusCompleted, Result: ResultWin, Score: "3½-2½"}
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back Fixture
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.Score != "3½-2½" {
		t.Fatalf("expected half-point glyphs preserved, got %q", back.Score)
	}
}
