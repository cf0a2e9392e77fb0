package postgres

import (
	"context"
	"database/sql"
	"math"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/RMahshie/nmrcentroid/internal/repository"
	"github.com/RMahshie/nmrcentroid/pkg/models"
)

const schema = `
	CREATE TABLE IF NOT EXISTS integration_runs (
		id          UUID PRIMARY KEY,
		source_path TEXT NOT NULL,
		x_label     TEXT NOT NULL,
		y_label     TEXT NOT NULL,
		points      INTEGER NOT NULL,
		area_y      DOUBLE PRECISION NOT NULL,
		area_xy     DOUBLE PRECISION NOT NULL,
		centroid    DOUBLE PRECISION,
		plot_path   TEXT NOT NULL,
		plot_key    TEXT,
		results_key TEXT,
		created_at  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS integration_runs_source_path_idx ON integration_runs (source_path, created_at DESC);`

const selectColumns = `
	SELECT id, source_path, x_label, y_label, points, area_y, area_xy, centroid, plot_path, plot_key, results_key, created_at
	FROM integration_runs`

// PostgresRunRepository implements RunRepository for PostgreSQL
type PostgresRunRepository struct {
	db *sql.DB
}

// Open connects to PostgreSQL using the lib/pq driver and verifies the connection
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// NewPostgresRunRepository creates a new PostgreSQL run repository
func NewPostgresRunRepository(db *sql.DB) repository.RunRepository {
	return &PostgresRunRepository{db: db}
}

// EnsureSchema creates the runs table if it does not exist
func (r *PostgresRunRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// Create inserts a new run record. A NaN centroid is stored as NULL.
func (r *PostgresRunRepository) Create(ctx context.Context, run *models.Run) error {
	query := `
		INSERT INTO integration_runs (id, source_path, x_label, y_label, points, area_y, area_xy, centroid, plot_path, plot_key, results_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	var centroid sql.NullFloat64
	if !math.IsNaN(run.Result.Centroid) {
		centroid = sql.NullFloat64{Float64: run.Result.Centroid, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.SourcePath,
		run.XLabel,
		run.YLabel,
		run.Result.Points,
		run.Result.AreaY,
		run.Result.AreaXY,
		centroid,
		run.PlotPath,
		run.PlotKey,
		run.ResultsKey,
		run.CreatedAt)

	return err
}

// GetByID retrieves a run by ID
func (r *PostgresRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	query := selectColumns + `
	WHERE id = $1`

	return scanRun(r.db.QueryRowContext(ctx, query, id))
}

// ListBySource retrieves runs for an input path, newest first
func (r *PostgresRunRepository) ListBySource(ctx context.Context, sourcePath string) ([]*models.Run, error) {
	query := selectColumns + `
	WHERE source_path = $1
	ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, sourcePath)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*models.Run, error) {
	var run models.Run
	var centroid sql.NullFloat64
	var plotKey, resultsKey sql.NullString

	err := row.Scan(
		&run.ID,
		&run.SourcePath,
		&run.XLabel,
		&run.YLabel,
		&run.Result.Points,
		&run.Result.AreaY,
		&run.Result.AreaXY,
		&centroid,
		&run.PlotPath,
		&plotKey,
		&resultsKey,
		&run.CreatedAt)

	if err != nil {
		return nil, err
	}

	run.Result.Centroid = math.NaN()
	if centroid.Valid {
		run.Result.Centroid = centroid.Float64
	}
	if plotKey.Valid {
		run.PlotKey = &plotKey.String
	}
	if resultsKey.Valid {
		run.ResultsKey = &resultsKey.String
	}

	return &run, nil
}
