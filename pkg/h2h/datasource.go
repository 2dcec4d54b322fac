package h2h

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/richard-senior/h2h/internal/logger"
	"github.com/richard-senior/h2h/pkg/transport"
	"github.com/richard-senior/h2h/pkg/util"
)

// Datasource produces completed match records for the analyzer. The
// analyzer does not know or care whether the records came from a scrape,
// a file or an API; it only ever sees the finished Table.
type Datasource interface {
	FetchResults() ([]*MatchRecord, error)
}

// HTMLDatasource scrapes a results page whose completed matches are
// published as an HTML table. Expected row shape, one match per row:
//
//	<tr><td>kickoff</td><td>home</td><td>score</td><td>away</td><td>marker</td></tr>
//
// where the marker column is whatever per-leg label the site prints. The
// marker is normalized into MatchRecord.HomeWin here, at the ingestion
// boundary, so the raw text never reaches a query.
type HTMLDatasource struct {
	URL       string
	CachePath string
}

// NewHTMLDatasource builds a datasource for the configured results page
func NewHTMLDatasource() *HTMLDatasource {
	return &HTMLDatasource{
		URL:       Config.ResultsURL,
		CachePath: Config.CachePath,
	}
}

// FetchResults downloads (or re-reads from cache) the results page and
// extracts its match records
func (d *HTMLDatasource) FetchResults() ([]*MatchRecord, error) {
	if d.URL == "" {
		return nil, fmt.Errorf("no results url configured")
	}

	html, err := d.getPage(d.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results page: %w", err)
	}

	records, err := ParseResults(strings.NewReader(string(html)))
	if err != nil {
		return nil, err
	}
	logger.Info("Extracted match records from results page", len(records))
	return records, nil
}

// getPage returns the raw page bytes, preferring the file cache so repeated
// ingestion runs don't hammer the source
func (d *HTMLDatasource) getPage(url string) ([]byte, error) {
	cacheFilename := ""
	if d.CachePath != "" {
		if err := os.MkdirAll(d.CachePath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		cacheFilename = fmt.Sprintf("%sresults-%x.html", d.CachePath, sha1.Sum([]byte(url)))
		if data, err := os.ReadFile(cacheFilename); err == nil {
			logger.Info("Loaded results page from cache:", cacheFilename)
			return data, nil
		}
	}

	data, err := transport.GetHTML(url)
	if err != nil {
		return nil, err
	}

	if cacheFilename != "" {
		if err := os.WriteFile(cacheFilename, data, 0644); err != nil {
			logger.Warn("Failed to write results page cache", cacheFilename, err)
		}
	}
	return data, nil
}

// ParseResults extracts match records from results-page HTML
func ParseResults(r io.Reader) ([]*MatchRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse results html: %w", err)
	}

	var records []*MatchRecord
	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return // header or filler row
		}

		rec := NewMatchRecord()
		kickoff := strings.TrimSpace(cells.Eq(0).Text())
		rec.Home = strings.TrimSpace(cells.Eq(1).Text())
		scoreStr := strings.TrimSpace(cells.Eq(2).Text())
		rec.Away = strings.TrimSpace(cells.Eq(3).Text())

		if rec.Home == "" || rec.Away == "" {
			logger.Debug("Skipping row with missing competitor name", i)
			return
		}
		if err := rec.ParseScoreString(scoreStr); err != nil {
			logger.Debug("Skipping row with unparseable score", scoreStr)
			return
		}

		t, err := parseKickoff(kickoff)
		if err != nil {
			logger.Warn("Row has no usable kickoff timestamp, relying on page order", rec.Home, rec.Away)
		} else {
			rec.KickoffUTC = t
		}

		marker := ""
		if cells.Length() > 4 {
			marker = strings.TrimSpace(cells.Eq(4).Text())
		}
		rec.HomeWin = NormalizeOutcome(marker, rec.HomeScore, rec.AwayScore)
		rec.ID = generateMatchID(rec.Home, rec.Away, rec.KickoffUTC, i)

		records = append(records, rec)
	})

	if len(records) == 0 {
		return nil, fmt.Errorf("no match rows found in results page")
	}
	return records, nil
}

// NormalizeOutcome turns the source's raw per-leg marker into an explicit
// home-win indicator. A marker that is already a 0/1 number or a recognised
// win/loss label is trusted; anything else falls back to the score
// differential, which is always well defined for a completed match.
func NormalizeOutcome(marker string, homeScore, awayScore int) bool {
	switch strings.ToUpper(strings.TrimSpace(marker)) {
	case "W", "WIN", "HOME", "H", "TRUE":
		return true
	case "L", "LOSS", "AWAY", "A", "FALSE", "D", "DRAW":
		return false
	}
	if n, err := util.GetAsInteger(marker); err == nil && (n == 0 || n == 1) {
		return n == 1
	}
	if marker != "" {
		logger.Debug("Unrecognised outcome marker, deriving from score", marker)
	}
	return homeScore > awayScore
}

// parseKickoff accepts the timestamp formats the result pages are known to
// use
func parseKickoff(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04",
		"2006-01-02",
		"02/01/2006 15:04",
		"02/01/2006",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// generateMatchID builds a stable identifier so repeated scrapes of the
// same page upsert rather than duplicate. Rows without a usable kickoff
// timestamp are keyed on their page position instead; the same pair can
// meet any number of times and each meeting must keep its own row
func generateMatchID(home, away string, kickoff time.Time, row int) string {
	slug := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
	}
	if kickoff.IsZero() {
		return fmt.Sprintf("%s-%s-row%d", slug(home), slug(away), row)
	}
	return fmt.Sprintf("%s-%s-%d", slug(home), slug(away), kickoff.Unix())
}

// Update runs one full ingestion cycle: fetch, normalize, persist. The
// stored history is the input for the next query cycle's Snapshot.
func Update(ds Datasource) error {
	records, err := ds.FetchResults()
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	if err := SaveRecords(records); err != nil {
		return fmt.Errorf("failed to store ingested records: %w", err)
	}
	return nil
}
