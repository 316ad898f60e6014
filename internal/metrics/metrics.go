package metrics

import (
	"sync"
	"time"
)

type teamStats struct {
	scrapes         int
	errors          int
	rowsSkipped     map[string]int
	lastScrapeDelay time.Duration
}

// Recorder captures lightweight, in-memory metrics about scrapes and cache usage.
// It is intentionally simple so it can be swapped for a real backend later.
type Recorder struct {
	mu          sync.Mutex
	teams       map[string]*teamStats
	cacheHits   int
	cacheMisses int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		teams: make(map[string]*teamStats),
		otel:  otel,
	}
}

// RecordScrape increments counters for one team-page scrape and stores the observed latency.
func (r *Recorder) RecordScrape(team string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(team)
	stats.scrapes++
	stats.lastScrapeDelay = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordScrape(team, duration, err)
	}
}

// RecordRowSkipped tracks a table row that was dropped during normalization.
// Reasons are small fixed strings ("short_row", "empty_date", ...) so data-quality
// regressions upstream show up as a counter, not silence.
func (r *Recorder) RecordRowSkipped(team, reason string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(team)
	if stats.rowsSkipped == nil {
		stats.rowsSkipped = make(map[string]int)
	}
	stats.rowsSkipped[reason]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRowSkipped(team, reason)
	}
}

// RecordCacheRead tracks whether a fixtures read was served from the cache slot.
func (r *Recorder) RecordCacheRead(hit bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	if hit {
		r.cacheHits++
	} else {
		r.cacheMisses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheRead(hit)
	}
}

// RecordHTTPRequest tracks a served HTTP request.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// RecordWarmerCycle tracks one background cache-warm attempt.
func (r *Recorder) RecordWarmerCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	if r.otel != nil {
		r.otel.recordWarmerCycle(duration, err)
	}
}

// Snapshot is a copy of the current stats for one team.
type Snapshot struct {
	Scrapes         int
	Errors          int
	RowsSkipped     map[string]int
	LastScrapeDelay time.Duration
}

// TeamSnapshot returns a copy of the current stats for the team.
func (r *Recorder) TeamSnapshot(team string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.teams[team]
	if !ok {
		return Snapshot{}
	}
	skipped := make(map[string]int, len(stats.rowsSkipped))
	for reason, n := range stats.rowsSkipped {
		skipped[reason] = n
	}
	return Snapshot{
		Scrapes:         stats.scrapes,
		Errors:          stats.errors,
		RowsSkipped:     skipped,
		LastScrapeDelay: stats.lastScrapeDelay,
	}
}

// CacheHits returns the number of cache-served reads.
func (r *Recorder) CacheHits() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cacheHits
}

// CacheMisses returns the number of reads that triggered an aggregation.
func (r *Recorder) CacheMisses() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cacheMisses
}

func (r *Recorder) ensureStats(team string) *teamStats {
	stats, ok := r.teams[team]
	if !ok {
		stats = &teamStats{}
		r.teams[team] = stats
	}
	return stats
}
