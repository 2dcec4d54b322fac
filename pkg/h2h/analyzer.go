package h2h

import (
	"fmt"
	"sort"
)

// ExpectedScore holds the mean historical scoring rates for a matchup:
// the home side's rate when playing at home and the away side's rate when
// playing away
type ExpectedScore struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// Matchup is one row of a TopMatchups summary: a directional (home, away)
// pairing, the mean outcome indicator across its recorded matches and the
// number of matches behind that mean
type Matchup struct {
	Home        string  `json:"home"`
	Away        string  `json:"away"`
	MeanOutcome float64 `json:"meanOutcome"`
	Played      int     `json:"played"`
}

// WinRate returns the historical fraction of outcomes favouring home in the
// directional matchup (home, away). The numerator counts home wins in that
// exact orientation; the denominator counts every appearance of home on
// either side of any matchup, a deliberately crude normalisation that keeps
// the rate comparable across competitors with different schedules.
//
// A competitor with zero appearances yields ErrNoAppearances rather than a
// NaN from the zero denominator.
func WinRate(home, away string, table Table) (float64, error) {
	wins := 0
	appearances := 0
	for _, rec := range table {
		if rec.Involves(home) {
			appearances++
		}
		if rec.Home == home && rec.Away == away && rec.HomeWin {
			wins++
		}
	}
	if appearances == 0 {
		return 0, fmt.Errorf("win rate %s vs %s: %w", home, away, ErrNoAppearances)
	}
	return float64(wins) / float64(appearances), nil
}

// ExpectedScoreFor returns the mean score for home across all its home
// matches and for away across all its away matches, regardless of opponent.
// This is the competitor's general home/away scoring tendency, not its
// record against this particular opponent.
//
// Either side having no matches in the required role yields
// ErrEmptyAggregate rather than a silent NaN.
func ExpectedScoreFor(home, away string, table Table) (ExpectedScore, error) {
	var homeSum, awaySum int
	var homeCount, awayCount int
	for _, rec := range table {
		if rec.Home == home {
			homeSum += rec.HomeScore
			homeCount++
		}
		if rec.Away == away {
			awaySum += rec.AwayScore
			awayCount++
		}
	}
	if homeCount == 0 {
		return ExpectedScore{}, fmt.Errorf("expected score: %s has no home matches: %w", home, ErrEmptyAggregate)
	}
	if awayCount == 0 {
		return ExpectedScore{}, fmt.Errorf("expected score: %s has no away matches: %w", away, ErrEmptyAggregate)
	}
	return ExpectedScore{
		Home: float64(homeSum) / float64(homeCount),
		Away: float64(awaySum) / float64(awayCount),
	}, nil
}

// TargetScoreProbability returns the probability of exactly target successes
// under a binomial model whose trial count is the sum of both expected
// scores and whose success probability is the matchup win rate.
//
// The trial count is generally not an integer; see BinomialPMF for how the
// mass function handles that.
func TargetScoreProbability(home, away string, target int, table Table) (float64, error) {
	rate, err := WinRate(home, away, table)
	if err != nil {
		return 0, err
	}
	exp, err := ExpectedScoreFor(home, away, table)
	if err != nil {
		return 0, err
	}
	trials := exp.Home + exp.Away
	return BinomialPMF(trials, rate, target)
}

// RecentHeadToHead returns up to count meetings between the two competitors
// in either home/away orientation, most recent first. Records are ordered
// by their kickoff timestamps; the stable sort preserves table order for
// equal or missing timestamps, so tables without timestamps fall back to
// their own (assumed chronological) ordering. Never errors: an empty
// history for the pair yields an empty slice.
func RecentHeadToHead(home, away string, table Table, count int) []*MatchRecord {
	meetings := make([]*MatchRecord, 0)
	for _, rec := range table {
		if rec.IsBetween(home, away) {
			meetings = append(meetings, rec)
		}
	}
	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].KickoffUTC.After(meetings[j].KickoffUTC)
	})
	if count >= 0 && len(meetings) > count {
		meetings = meetings[:count]
	}
	return meetings
}

// TopMatchups groups the table by directional (home, away) pairing,
// averages the outcome indicator per group and returns the count groups
// with the highest means, non-increasing. Ties are broken by pair name so
// the ordering is deterministic.
func TopMatchups(table Table, count int) []Matchup {
	type bucket struct {
		wins   int
		played int
	}
	groups := make(map[[2]string]*bucket)
	for _, rec := range table {
		key := [2]string{rec.Home, rec.Away}
		b, ok := groups[key]
		if !ok {
			b = &bucket{}
			groups[key] = b
		}
		b.played++
		if rec.HomeWin {
			b.wins++
		}
	}

	matchups := make([]Matchup, 0, len(groups))
	for key, b := range groups {
		matchups = append(matchups, Matchup{
			Home:        key[0],
			Away:        key[1],
			MeanOutcome: float64(b.wins) / float64(b.played),
			Played:      b.played,
		})
	}
	sort.Slice(matchups, func(i, j int) bool {
		if matchups[i].MeanOutcome != matchups[j].MeanOutcome {
			return matchups[i].MeanOutcome > matchups[j].MeanOutcome
		}
		if matchups[i].Home != matchups[j].Home {
			return matchups[i].Home < matchups[j].Home
		}
		return matchups[i].Away < matchups[j].Away
	})
	if count >= 0 && len(matchups) > count {
		matchups = matchups[:count]
	}
	return matchups
}
