package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/perevir/internal"
)

// Store keeps the history of completed benchmark runs so latency can be
// compared across model or server changes.
type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		service_name TEXT NOT NULL,
		endpoint TEXT NOT NULL,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		dataset TEXT,
		request_count INTEGER NOT NULL,
		total_ms REAL,
		mean_ms REAL,
		min_ms REAL,
		max_ms REAL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- run_measurements stores the per-request latencies of a run in
	-- sequence order
	CREATE TABLE IF NOT EXISTS run_measurements (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		source_text TEXT NOT NULL,
		translated_text TEXT,
		latency_ms REAL NOT NULL,
		PRIMARY KEY (run_id, seq),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_measurements_run ON run_measurements(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) SaveRun(ctx context.Context, run internal.RunRecord) error {
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, service_name, endpoint, source_lang, target_lang, dataset, request_count, total_ms, mean_ms, min_ms, max_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.ServiceName, run.Endpoint, run.SourceLang, run.TargetLang,
		run.Dataset, run.RequestCount, run.TotalMs, run.MeanMs, run.MinMs, run.MaxMs, createdAt)
	return err
}

// SaveMeasurements inserts the full measurement sequence of a run in one
// transaction. Source text is NFC-normalized before storing.
func (s *Store) SaveMeasurements(ctx context.Context, measurements []internal.MeasurementRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_measurements (run_id, seq, source_text, translated_text, latency_ms) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range measurements {
		_, err := stmt.ExecContext(ctx, m.RunID, m.Seq,
			norm.NFC.String(m.SourceText), m.TranslatedText, m.LatencyMs)
		if err != nil {
			return fmt.Errorf("failed to insert measurement %d: %w", m.Seq, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetRun(ctx context.Context, id string) (*internal.RunRecord, error) {
	var run internal.RunRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, service_name, endpoint, source_lang, target_lang, dataset, request_count, total_ms, mean_ms, min_ms, max_ms, created_at
		 FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &run.ServiceName, &run.Endpoint, &run.SourceLang, &run.TargetLang,
			&run.Dataset, &run.RequestCount, &run.TotalMs, &run.MeanMs, &run.MinMs, &run.MaxMs, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *Store) ListRuns(ctx context.Context) ([]internal.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, service_name, endpoint, source_lang, target_lang, dataset, request_count, total_ms, mean_ms, min_ms, max_ms, created_at
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []internal.RunRecord
	for rows.Next() {
		var run internal.RunRecord
		if err := rows.Scan(&run.ID, &run.ServiceName, &run.Endpoint, &run.SourceLang, &run.TargetLang,
			&run.Dataset, &run.RequestCount, &run.TotalMs, &run.MeanMs, &run.MinMs, &run.MaxMs, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) GetMeasurements(ctx context.Context, runID string) ([]internal.MeasurementRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, seq, source_text, translated_text, latency_ms
		 FROM run_measurements WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var measurements []internal.MeasurementRecord
	for rows.Next() {
		var m internal.MeasurementRecord
		if err := rows.Scan(&m.RunID, &m.Seq, &m.SourceText, &m.TranslatedText, &m.LatencyMs); err != nil {
			return nil, err
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}

type Stats struct {
	TotalRuns     int
	TotalRequests int
	BestMeanMs    float64
	WorstMeanMs   float64
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(request_count), 0), COALESCE(MIN(mean_ms), 0), COALESCE(MAX(mean_ms), 0) FROM runs`).
		Scan(&stats.TotalRuns, &stats.TotalRequests, &stats.BestMeanMs, &stats.WorstMeanMs)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Store) DeleteRun(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM run_measurements WHERE run_id = ?`, id); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

func (s *Store) ClearRuns(ctx context.Context) (int64, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM run_measurements`); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	return s.db.Close()
}
