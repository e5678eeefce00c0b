package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"auilqec/internal/report"
)

// PostgresStore archives finished comparison runs. The core pipeline
// stays derived-and-immutable; the archive is a downstream consumer,
// like visualization.
type PostgresStore struct {
	db *sql.DB
}

// Config contains database connection parameters.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// NewPostgresStore creates a new database connection with connection
// pooling and verifies it with a bounded ping.
func NewPostgresStore(config Config) (*PostgresStore, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.Database, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// InitSchema creates the archive tables.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	schema := `
	-- One row per comparison run; the full payload is kept verbatim so
	-- a run can be re-rendered without recomputation.
	CREATE TABLE IF NOT EXISTS sweep_runs (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		system_size BIGINT NOT NULL,
		grid_points INT NOT NULL,
		trial_seed BIGINT NOT NULL,
		payload JSONB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sweep_runs_created ON sweep_runs (created_at DESC);

	-- Per-code detection rates, queryable without unpacking payloads.
	CREATE TABLE IF NOT EXISTS run_classifications (
		run_id UUID NOT NULL REFERENCES sweep_runs(id) ON DELETE CASCADE,
		code TEXT NOT NULL,
		true_positive_rate DOUBLE PRECISION NOT NULL,
		false_positive_rate DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (run_id, code)
	);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// InsertRun archives one report and returns its run id.
func (s *PostgresStore) InsertRun(ctx context.Context, rpt *report.Report) (uuid.UUID, error) {
	payload, err := json.Marshal(rpt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO sweep_runs (id, created_at, system_size, grid_points, trial_seed, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, rpt.GeneratedAt, rpt.SystemSize, len(rpt.Grid), rpt.Trial.Seed, payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_classifications (run_id, code, true_positive_rate, false_positive_rate)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range rpt.Classifications {
		if _, err := stmt.ExecContext(ctx, id, c.Code, c.TruePositiveRate, c.FalsePositiveRate); err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert classification for %s: %w", c.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// RunRecord is one archived run's identifying metadata.
type RunRecord struct {
	ID         uuid.UUID `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	SystemSize int       `json:"system_size"`
	GridPoints int       `json:"grid_points"`
	TrialSeed  int64     `json:"trial_seed"`
}

// ListRuns returns the most recent runs, newest first.
func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit < 1 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, system_size, grid_points, trial_seed
		FROM sweep_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.SystemSize, &r.GridPoints, &r.TrialSeed); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// GetRun retrieves one archived report by run id.
func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM sweep_runs WHERE id = $1
	`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	var rpt report.Report
	if err := json.Unmarshal(payload, &rpt); err != nil {
		return nil, fmt.Errorf("failed to decode archived run %s: %w", id, err)
	}
	return &rpt, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
