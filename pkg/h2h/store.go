package h2h

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/richard-senior/h2h/internal/logger"
	_ "modernc.org/sqlite"
)

var db *sql.DB

// InitDatabase opens (or creates) the match-history database at the given
// path and ensures the schema exists. Pass ":memory:" in tests.
func InitDatabase(path string) error {
	if db != nil {
		db.Close()
		db = nil
	}

	d, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err = d.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	db = d

	if err := createMatchTable(); err != nil {
		return err
	}

	logger.Info("Database initialized successfully", path)
	return nil
}

// CloseDatabase closes the database connection
func CloseDatabase() error {
	if db != nil {
		err := db.Close()
		db = nil
		return err
	}
	return nil
}

func getDB() (*sql.DB, error) {
	if db == nil {
		if err := InitDatabase(Config.DbPath); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func createMatchTable() error {
	d, err := getDB()
	if err != nil {
		return err
	}

	createSQL := `CREATE TABLE IF NOT EXISTS match (
		id TEXT PRIMARY KEY,
		home TEXT NOT NULL,
		away TEXT NOT NULL,
		home_score INTEGER DEFAULT -1,
		away_score INTEGER DEFAULT -1,
		home_win INTEGER DEFAULT 0,
		kickoff_utc DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := d.Exec(createSQL); err != nil {
		return fmt.Errorf("failed to create match table: %w", err)
	}

	for _, indexSQL := range []string{
		"CREATE INDEX IF NOT EXISTS idx_match_home ON match(home)",
		"CREATE INDEX IF NOT EXISTS idx_match_away ON match(away)",
		"CREATE INDEX IF NOT EXISTS idx_match_kickoff ON match(kickoff_utc)",
	} {
		if _, err := d.Exec(indexSQL); err != nil {
			logger.Warn("Failed to create index", err)
		}
	}
	return nil
}

// SaveRecords upserts all records in one transaction, keyed on record ID.
// Re-running an ingestion over an already stored page is therefore safe.
func SaveRecords(records []*MatchRecord) error {
	d, err := getDB()
	if err != nil {
		return err
	}

	tx, err := d.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO match
		(id, home, away, home_score, away_score, home_win, kickoff_utc, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			home = excluded.home,
			away = excluded.away,
			home_score = excluded.home_score,
			away_score = excluded.away_score,
			home_win = excluded.home_win,
			kickoff_utc = excluded.kickoff_utc,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, rec := range records {
		if rec.ID == "" || rec.Home == "" || rec.Away == "" {
			logger.Warn("Skipping record with missing identifiers", rec.Home, rec.Away)
			continue
		}
		_, err := stmt.Exec(rec.ID, rec.Home, rec.Away, rec.HomeScore, rec.AwayScore,
			rec.HomeWin, rec.KickoffUTC.UTC().Format(time.RFC3339), now)
		if err != nil {
			return fmt.Errorf("failed to upsert match %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	logger.Info("Saved match records", len(records))
	return nil
}

// Snapshot loads the complete stored history in chronological order as a
// fresh immutable Table for one query cycle
func Snapshot() (Table, error) {
	d, err := getDB()
	if err != nil {
		return nil, err
	}

	rows, err := d.Query(`SELECT id, home, away, home_score, away_score, home_win, kickoff_utc
		FROM match ORDER BY kickoff_utc ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query match table: %w", err)
	}
	defer rows.Close()

	var table Table
	for rows.Next() {
		rec := &MatchRecord{}
		var kickoff string
		if err := rows.Scan(&rec.ID, &rec.Home, &rec.Away, &rec.HomeScore,
			&rec.AwayScore, &rec.HomeWin, &kickoff); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		if kickoff != "" {
			t, err := time.Parse(time.RFC3339, kickoff)
			if err != nil {
				logger.Warn("Unparseable kickoff timestamp in db", kickoff, err)
			} else {
				rec.KickoffUTC = t
			}
		}
		table = append(table, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return table, nil
}
