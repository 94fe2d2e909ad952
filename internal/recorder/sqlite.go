package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"autodailies/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id           TEXT PRIMARY KEY,
			account          TEXT NOT NULL,
			timestamp        INTEGER NOT NULL,
			success          INTEGER NOT NULL,
			reason           TEXT,
			coins_before     INTEGER,
			coins_after      INTEGER,
			gold_before      INTEGER,
			gold_after       INTEGER,
			checkin_earned   INTEGER,
			checkin_streak   INTEGER,
			giveaways_found  INTEGER,
			giveaways_joined INTEGER,
			cases_available  INTEGER,
			cases_opened     INTEGER,
			cases_ignored    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_account_ts ON runs(account, timestamp)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun inserts one row for a finished account run.
func (r *SQLiteRecorder) RecordRun(res model.RunResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var checkinEarned, checkinStreak int
	if res.Checkin != nil {
		checkinEarned = res.Checkin.Earned
		checkinStreak = res.Checkin.Streak
	}
	var gaFound, gaJoined int
	if res.Giveaway != nil {
		gaFound = len(res.Giveaway.Giveaways)
		gaJoined = len(res.Giveaway.Joined)
	}
	var csAvailable, csOpened, csIgnored int
	if res.Cases != nil {
		csAvailable = len(res.Cases.Available)
		csOpened = res.Cases.Opened
		csIgnored = res.Cases.Ignored
	}

	_, err := r.db.Exec(`INSERT INTO runs (
		run_id, account, timestamp, success, reason,
		coins_before, coins_after, gold_before, gold_after,
		checkin_earned, checkin_streak,
		giveaways_found, giveaways_joined,
		cases_available, cases_opened, cases_ignored
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.Account, time.Now().Unix(), boolToInt(res.Success), res.Reason,
		res.Initial.Balance.Coins, res.Final.Balance.Coins,
		res.Initial.Balance.Gold, res.Final.Balance.Gold,
		checkinEarned, checkinStreak,
		gaFound, gaJoined,
		csAvailable, csOpened, csIgnored,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Close closes the database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
