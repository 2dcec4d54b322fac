package h2h

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MatchRecord represents one completed match between two competitors.
//
// HomeWin is the normalized outcome marker: ingestion is responsible for
// turning whatever raw per-leg label the source publishes into this explicit
// indicator before a record reaches the analyzer. The analyzer never sees
// the raw text.
type MatchRecord struct {
	ID         string    `json:"id" column:"id"`
	Home       string    `json:"home" column:"home"`
	Away       string    `json:"away" column:"away"`
	HomeScore  int       `json:"homeScore" column:"home_score"`
	AwayScore  int       `json:"awayScore" column:"away_score"`
	HomeWin    bool      `json:"homeWin" column:"home_win"`
	KickoffUTC time.Time `json:"kickoffUtc" column:"kickoff_utc"`
}

// Table is an ordered match-history snapshot. It is built once per query
// cycle by the ingestion side and treated as immutable thereafter; hosts
// that refresh between cycles must hand queries a new Table rather than
// mutate an old one in place.
type Table []*MatchRecord

// NewMatchRecord creates a record with score defaults of -1 so that a
// genuinely parsed 0 can be told apart from an absent value during ingestion
func NewMatchRecord() *MatchRecord {
	return &MatchRecord{
		HomeScore: -1,
		AwayScore: -1,
	}
}

// HasResult reports whether both scores were actually parsed
func (m *MatchRecord) HasResult() bool {
	return m.HomeScore >= 0 && m.AwayScore >= 0
}

// ScoreString renders the score the way the source sites print it
func (m *MatchRecord) ScoreString() string {
	if !m.HasResult() {
		return ""
	}
	return fmt.Sprintf("%d - %d", m.HomeScore, m.AwayScore)
}

// IsBetween reports whether the record involves the two named competitors,
// in either home/away orientation
func (m *MatchRecord) IsBetween(a, b string) bool {
	return (m.Home == a && m.Away == b) || (m.Home == b && m.Away == a)
}

// Involves reports whether the named competitor appears on either side
func (m *MatchRecord) Involves(team string) bool {
	return m.Home == team || m.Away == team
}

// ParseScoreString extracts both goals from score strings in the formats
// the sources use: "2 - 1", "2-1", "2:1" etc.
func (m *MatchRecord) ParseScoreString(scoreStr string) error {
	if scoreStr == "" {
		return fmt.Errorf("empty score string")
	}

	scoreStr = strings.ReplaceAll(scoreStr, " ", "")
	scoreStr = strings.ReplaceAll(scoreStr, ":", "-")

	parts := strings.Split(scoreStr, "-")
	if len(parts) != 2 {
		return fmt.Errorf("unparseable score string %q", scoreStr)
	}

	home, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("unparseable home score in %q: %w", scoreStr, err)
	}
	away, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("unparseable away score in %q: %w", scoreStr, err)
	}
	if home < 0 || away < 0 {
		return fmt.Errorf("negative score in %q", scoreStr)
	}

	m.HomeScore = home
	m.AwayScore = away
	return nil
}

// Competitors extracts the unique competitor identifiers from a table
func (t Table) Competitors() []string {
	seen := make(map[string]bool)
	var names []string
	for _, rec := range t {
		if rec.Home != "" && !seen[rec.Home] {
			seen[rec.Home] = true
			names = append(names, rec.Home)
		}
		if rec.Away != "" && !seen[rec.Away] {
			seen[rec.Away] = true
			names = append(names, rec.Away)
		}
	}
	return names
}
