package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"solarpulse/backend/services/energy-service/internal/models"
)

// WindowSums is the result of a windowed aggregation. Samples carries
// the matched row count so callers can tell an empty window from one
// that genuinely sums to zero.
type WindowSums struct {
	Production  float64
	Consumption float64
	Samples     int64
}

// TelemetryRepository persists energy samples.
type TelemetryRepository struct {
	db *sql.DB
}

// NewTelemetryRepository returns repository.
func NewTelemetryRepository(db *sql.DB) *TelemetryRepository {
	return &TelemetryRepository{db: db}
}

// Insert stores a new telemetry sample.
func (r *TelemetryRepository) Insert(ctx context.Context, sample *models.TelemetrySample) error {
	const query = `
		INSERT INTO telemetry_samples (subject_id, recorded_at, production, consumption, grid_import, grid_export, granularity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		sample.SubjectID,
		sample.Timestamp,
		sample.Production,
		sample.Consumption,
		sample.GridImport,
		sample.GridExport,
		sample.Granularity,
	).Scan(&sample.ID)
}

// Latest returns the most recent realtime sample for the subject, or
// nil when the subject has none.
func (r *TelemetryRepository) Latest(ctx context.Context, subjectID string) (*models.TelemetrySample, error) {
	const query = `
		SELECT id, subject_id, recorded_at, production, consumption, grid_import, grid_export, granularity
		FROM telemetry_samples
		WHERE subject_id = $1 AND granularity = $2
		ORDER BY recorded_at DESC
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, subjectID, models.GranularityRealtime)
	var s models.TelemetrySample
	err := row.Scan(
		&s.ID,
		&s.SubjectID,
		&s.Timestamp,
		&s.Production,
		&s.Consumption,
		&s.GridImport,
		&s.GridExport,
		&s.Granularity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// History returns up to limit samples recorded at or after from,
// most recent first.
func (r *TelemetryRepository) History(ctx context.Context, subjectID string, from time.Time, limit int) ([]models.TelemetrySample, error) {
	if limit <= 0 {
		limit = 24
	}
	const query = `
		SELECT id, subject_id, recorded_at, production, consumption, grid_import, grid_export, granularity
		FROM telemetry_samples
		WHERE subject_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at DESC
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, subjectID, from, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.TelemetrySample
	for rows.Next() {
		var s models.TelemetrySample
		if err := rows.Scan(
			&s.ID,
			&s.SubjectID,
			&s.Timestamp,
			&s.Production,
			&s.Consumption,
			&s.GridImport,
			&s.GridExport,
			&s.Granularity,
		); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// SumWindow aggregates production and consumption for one subject over
// samples recorded at or after from.
func (r *TelemetryRepository) SumWindow(ctx context.Context, subjectID string, from time.Time) (WindowSums, error) {
	const query = `
		SELECT COALESCE(SUM(production), 0), COALESCE(SUM(consumption), 0), COUNT(*)
		FROM telemetry_samples
		WHERE subject_id = $1 AND recorded_at >= $2
	`
	var sums WindowSums
	err := r.db.QueryRowContext(ctx, query, subjectID, from).
		Scan(&sums.Production, &sums.Consumption, &sums.Samples)
	if err != nil {
		return WindowSums{}, err
	}
	return sums, nil
}

// FleetSums aggregates production and consumption across every subject
// over samples recorded at or after from.
func (r *TelemetryRepository) FleetSums(ctx context.Context, from time.Time) (WindowSums, error) {
	const query = `
		SELECT COALESCE(SUM(production), 0), COALESCE(SUM(consumption), 0), COUNT(*)
		FROM telemetry_samples
		WHERE recorded_at >= $1
	`
	var sums WindowSums
	err := r.db.QueryRowContext(ctx, query, from).
		Scan(&sums.Production, &sums.Consumption, &sums.Samples)
	if err != nil {
		return WindowSums{}, err
	}
	return sums, nil
}
