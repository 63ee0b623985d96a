package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"TradingAssistant/internal/logger"
)

// SQLiteRecorder persists the run history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logger.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *logger.Logger) (*SQLiteRecorder, error) {
	if log == nil {
		log = logger.Nop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.Named("recorder")}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id               TEXT PRIMARY KEY,
			timestamp        INTEGER NOT NULL,
			source           TEXT,
			start_date       TEXT,
			end_date         TEXT,
			start_time       TEXT,
			end_time         TEXT,
			interval         TEXT,
			auto_time        INTEGER,
			success          INTEGER,
			model_count      INTEGER,
			historical_count INTEGER,
			action           TEXT,
			total_score      REAL,
			error            TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON analysis_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores run, filling in ID and Timestamp when unset.
func (r *SQLiteRecorder) RecordRun(run *Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}

	_, err := r.db.Exec(`INSERT INTO analysis_runs
		(id, timestamp, source, start_date, end_date, start_time, end_time,
		 interval, auto_time, success, model_count, historical_count,
		 action, total_score, error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.Timestamp.UnixMilli(), run.Source,
		run.StartDate, run.EndDate, run.StartTime, run.EndTime,
		run.Interval, run.AutoTime, run.Success,
		run.ModelCount, run.HistoricalCount,
		run.Action, run.TotalScore, run.Error,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (r *SQLiteRecorder) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, source, start_date, end_date,
		start_time, end_time, interval, auto_time, success, model_count,
		historical_count, action, total_score, error
		FROM analysis_runs ORDER BY timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			run Run
			ts  int64
		)
		if err := rows.Scan(&run.ID, &ts, &run.Source, &run.StartDate, &run.EndDate,
			&run.StartTime, &run.EndTime, &run.Interval, &run.AutoTime, &run.Success,
			&run.ModelCount, &run.HistoricalCount, &run.Action, &run.TotalScore, &run.Error); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Timestamp = time.UnixMilli(ts)
		out = append(out, run)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
