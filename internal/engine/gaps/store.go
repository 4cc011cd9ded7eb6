package gaps

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Local analysis history — every report is persisted so past runs can be
// listed, re-read, and compared without refetching comments.

// AnalysisSummary is one row in the history listing.
type AnalysisSummary struct {
	ID             int64   `json:"id"`
	Source         string  `json:"source"`
	SourceRef      string  `json:"source_ref"`
	Title          string  `json:"title,omitempty"`
	CommentCount   int     `json:"comment_count"`
	PainPointCount int     `json:"pain_point_count"`
	TopCategory    string  `json:"top_category,omitempty"`
	TopSeverity    float64 `json:"top_severity"`
	CreatedAt      string  `json:"created_at"`
}

var (
	historyDB   *sql.DB
	historyOnce sync.Once
	historyErr  error
)

// openHistoryDB opens (or creates) the SQLite history database.
func openHistoryDB() (*sql.DB, error) {
	historyOnce.Do(func() {
		dir := filepath.Join(os.Getenv("HOME"), ".gapsight")
		if err := os.MkdirAll(dir, 0750); err != nil {
			historyErr = fmt.Errorf("history: mkdir %s: %w", dir, err)
			return
		}
		dbPath := filepath.Join(dir, "history.db")
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			historyErr = fmt.Errorf("history: open db: %w", err)
			return
		}
		db.SetMaxOpenConns(1) // SQLite: single writer
		if err := initHistorySchema(db); err != nil {
			historyErr = fmt.Errorf("history: init schema: %w", err)
			return
		}
		historyDB = db
	})
	return historyDB, historyErr
}

// initHistorySchema creates the analyses table if it doesn't exist.
func initHistorySchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS analyses (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		source           TEXT NOT NULL,
		source_ref       TEXT NOT NULL,
		title            TEXT,
		comment_count    INTEGER NOT NULL,
		pain_point_count INTEGER NOT NULL,
		top_category     TEXT,
		top_severity     REAL NOT NULL DEFAULT 0,
		report           TEXT NOT NULL,
		created_at       TEXT NOT NULL
	)`)
	return err
}

// SaveAnalysis persists a report and returns its history ID.
func SaveAnalysis(ctx context.Context, report Report) (int64, error) {
	db, err := openHistoryDB()
	if err != nil {
		return 0, err
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("history: marshal report: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := db.ExecContext(ctx,
		`INSERT INTO analyses (source, source_ref, title, comment_count, pain_point_count, top_category, top_severity, report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.Source, report.SourceRef, report.Title,
		report.Stats.TotalComments, len(report.PainPoints),
		report.TopCategory(), report.TopSeverity(), string(reportJSON), now,
	)
	if err != nil {
		return 0, fmt.Errorf("history: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: last id: %w", err)
	}

	// Mirror per-category rows into the Postgres archive when configured.
	// Archive failures don't fail the save — the local history row is the
	// source of truth.
	if arch := GetArchive(); arch != nil {
		if err := arch.RecordAnalysis(ctx, id, report.Source, report.PainPoints); err != nil {
			slog.Warn("history: archive mirror failed", slog.Int64("id", id), slog.Any("error", err))
		}
	}
	return id, nil
}

// ListAnalyses returns recent analyses, newest first.
// source filters by feedback source when non-empty; limit defaults to 20.
func ListAnalyses(ctx context.Context, source string, limit int) ([]AnalysisSummary, error) {
	db, err := openHistoryDB()
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `SELECT id, source, source_ref, title, comment_count, pain_point_count, top_category, top_severity, created_at
	          FROM analyses`
	args := []any{}
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	var out []AnalysisSummary
	for rows.Next() {
		var s AnalysisSummary
		if err := rows.Scan(&s.ID, &s.Source, &s.SourceRef, &s.Title,
			&s.CommentCount, &s.PainPointCount, &s.TopCategory, &s.TopSeverity, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetAnalysis loads a persisted report by ID.
func GetAnalysis(ctx context.Context, id int64) (*Report, error) {
	db, err := openHistoryDB()
	if err != nil {
		return nil, err
	}

	var reportJSON string
	err = db.QueryRowContext(ctx, `SELECT report FROM analyses WHERE id = ?`, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("history: analysis %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("history: get: %w", err)
	}

	var report Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("history: decode report %d: %w", id, err)
	}
	report.ID = id
	return &report, nil
}

// DeleteAnalysis removes a persisted report by ID.
func DeleteAnalysis(ctx context.Context, id int64) error {
	db, err := openHistoryDB()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("history: delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("history: delete rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("history: analysis %d not found", id)
	}
	return nil
}
