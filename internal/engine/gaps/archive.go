package gaps

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Postgres archive — optional cross-run store of per-category pain-point
// rows, enabling trend queries over a trailing window. Disabled unless
// DATABASE_URL is set.

// Package-level singleton, set from main.go.
var archive *Archive

// SetArchive sets the package-level archive instance.
func SetArchive(a *Archive) { archive = a }

// GetArchive returns the package-level archive instance (may be nil).
func GetArchive() *Archive { return archive }

// Archive holds the pgx connection pool for the trends store.
type Archive struct {
	pool *pgxpool.Pool
}

// ConnectArchive creates a pgx pool and runs schema migrations.
func ConnectArchive(ctx context.Context, databaseURL string) (*Archive, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	a := &Archive{pool: pool}
	if err := a.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("archive postgres connected", slog.String("addr", config.ConnConfig.Host))
	return a, nil
}

func (a *Archive) Close() {
	a.pool.Close()
}

func (a *Archive) runMigrations(ctx context.Context) error {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("read schema dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := schemaFS.ReadFile("schema/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if _, err := a.pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("migrate %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// RecordAnalysis inserts one row per category for a completed analysis.
// Multiple pain points in the same category are folded into one row
// (summed mentions, max severity).
func (a *Archive) RecordAnalysis(ctx context.Context, analysisRef int64, source string, points []PainPoint) error {
	type catAgg struct {
		mentions int
		severity float64
	}
	byCat := make(map[Category]*catAgg)
	for _, p := range points {
		agg, ok := byCat[p.Category]
		if !ok {
			agg = &catAgg{}
			byCat[p.Category] = agg
		}
		agg.mentions += p.Frequency
		if p.Severity > agg.severity {
			agg.severity = p.Severity
		}
	}

	for cat, agg := range byCat {
		_, err := a.pool.Exec(ctx,
			`INSERT INTO pain_point_categories (analysis_ref, source, category, mentions, severity)
			 VALUES ($1, $2, $3, $4, $5)`,
			analysisRef, source, string(cat), agg.mentions, agg.severity,
		)
		if err != nil {
			return fmt.Errorf("archive insert %s: %w", cat, err)
		}
	}
	return nil
}

// CategoryTrend aggregates one category over the queried window.
type CategoryTrend struct {
	Category    string  `json:"category"`
	Analyses    int     `json:"analyses"`
	Mentions    int     `json:"mentions"`
	AvgSeverity float64 `json:"avg_severity"`
}

// CategoryTrends returns per-category totals over the trailing window,
// ordered by mentions descending. days defaults to 30.
func (a *Archive) CategoryTrends(ctx context.Context, days int) ([]CategoryTrend, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	rows, err := a.pool.Query(ctx,
		`SELECT category, COUNT(DISTINCT analysis_ref), COALESCE(SUM(mentions), 0), COALESCE(AVG(severity), 0)
		 FROM pain_point_categories
		 WHERE created_at > now() - make_interval(days => $1)
		 GROUP BY category
		 ORDER BY SUM(mentions) DESC, category`,
		days,
	)
	if err != nil {
		return nil, fmt.Errorf("archive trends: %w", err)
	}
	defer rows.Close()

	var out []CategoryTrend
	for rows.Next() {
		var t CategoryTrend
		if err := rows.Scan(&t.Category, &t.Analyses, &t.Mentions, &t.AvgSeverity); err != nil {
			return nil, fmt.Errorf("archive trends scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
