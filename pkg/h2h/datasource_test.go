package h2h

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsFixture = `<html><body>
<h1>Completed results</h1>
<table>
  <tr><th>Kickoff</th><th>Home</th><th>Score</th><th>Away</th><th>Result</th></tr>
  <tr><td>2026-01-10 15:00</td><td>Arsenal</td><td>2 - 1</td><td>Spurs</td><td>W</td></tr>
  <tr><td>2026-01-17 12:30</td><td>Spurs</td><td>0-3</td><td>Arsenal</td><td>L</td></tr>
  <tr><td>2026-01-24 15:00</td><td>Chelsea</td><td>1:1</td><td>Arsenal</td><td>1</td></tr>
  <tr><td>2026-01-31 15:00</td><td>Leeds</td><td>postponed</td><td>Chelsea</td><td></td></tr>
</table>
</body></html>`

func TestParseResults(t *testing.T) {
	records, err := ParseResults(strings.NewReader(resultsFixture))
	require.NoError(t, err)
	// The postponed row has no parseable score and is dropped
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "Arsenal", first.Home)
	assert.Equal(t, "Spurs", first.Away)
	assert.Equal(t, 2, first.HomeScore)
	assert.Equal(t, 1, first.AwayScore)
	assert.True(t, first.HomeWin)
	assert.Equal(t, time.Date(2026, 1, 10, 15, 0, 0, 0, time.UTC), first.KickoffUTC)
	assert.NotEmpty(t, first.ID)

	// "0-3" with an L marker: away win in compact score format
	second := records[1]
	assert.Equal(t, 0, second.HomeScore)
	assert.Equal(t, 3, second.AwayScore)
	assert.False(t, second.HomeWin)

	// Numeric marker "1" with colon score format
	third := records[2]
	assert.Equal(t, 1, third.HomeScore)
	assert.Equal(t, 1, third.AwayScore)
	assert.True(t, third.HomeWin)
}

func TestParseResultsStableIDs(t *testing.T) {
	a, err := ParseResults(strings.NewReader(resultsFixture))
	require.NoError(t, err)
	b, err := ParseResults(strings.NewReader(resultsFixture))
	require.NoError(t, err)
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
	}
}

func TestParseResultsTimestamplessRowsStayDistinct(t *testing.T) {
	// Two completed matches between the same pair, neither with a usable
	// kickoff cell. Both must survive ingestion as separate rows.
	fixture := `<html><body><table>
	  <tr><td>tbc</td><td>Arsenal</td><td>2 - 1</td><td>Spurs</td><td>W</td></tr>
	  <tr><td>tbc</td><td>Arsenal</td><td>3 - 0</td><td>Spurs</td><td>W</td></tr>
	</table></body></html>`

	records, err := ParseResults(strings.NewReader(fixture))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.NotEqual(t, records[0].ID, records[1].ID)

	require.NoError(t, InitDatabase(":memory:"))
	defer CloseDatabase()
	require.NoError(t, SaveRecords(records))

	table, err := Snapshot()
	require.NoError(t, err)
	assert.Len(t, table, 2)
}

func TestParseResultsNoRows(t *testing.T) {
	_, err := ParseResults(strings.NewReader("<html><body><p>nothing here</p></body></html>"))
	assert.Error(t, err)
}

func TestNormalizeOutcome(t *testing.T) {
	cases := []struct {
		marker    string
		homeScore int
		awayScore int
		want      bool
	}{
		{"W", 0, 0, true},
		{"win", 0, 0, true},
		{"L", 3, 0, false},
		{"D", 1, 1, false},
		{"1", 0, 2, true},
		{"0", 2, 0, false},
		// Unrecognised markers fall back to the score differential
		{"leg 3", 2, 1, true},
		{"leg 3", 1, 2, false},
		{"", 2, 2, false},
	}
	for _, c := range cases {
		got := NormalizeOutcome(c.marker, c.homeScore, c.awayScore)
		assert.Equal(t, c.want, got, "marker=%q %d-%d", c.marker, c.homeScore, c.awayScore)
	}
}

func TestParseKickoffFormats(t *testing.T) {
	for _, s := range []string{
		"2026-01-10T15:00:00Z",
		"2026-01-10 15:00",
		"2026-01-10",
		"10/01/2026 15:00",
		"10/01/2026",
	} {
		ts, err := parseKickoff(s)
		require.NoError(t, err, s)
		assert.Equal(t, 2026, ts.Year())
		assert.Equal(t, time.January, ts.Month())
		assert.Equal(t, 10, ts.Day())
	}

	_, err := parseKickoff("next tuesday")
	assert.Error(t, err)
	_, err = parseKickoff("")
	assert.Error(t, err)
}

func TestParseScoreString(t *testing.T) {
	rec := NewMatchRecord()
	require.NoError(t, rec.ParseScoreString("2 - 1"))
	assert.Equal(t, 2, rec.HomeScore)
	assert.Equal(t, 1, rec.AwayScore)
	assert.True(t, rec.HasResult())
	assert.Equal(t, "2 - 1", rec.ScoreString())

	assert.Error(t, NewMatchRecord().ParseScoreString(""))
	assert.Error(t, NewMatchRecord().ParseScoreString("abandoned"))
	assert.Error(t, NewMatchRecord().ParseScoreString("1-2-3"))
}
