package repository

import (
	"context"

	"voltgrid/internal/models"
)

// BatchRepository tracks ingestion batch lifecycle rows.
type BatchRepository struct{}

// NewBatchRepository returns a batch repository.
func NewBatchRepository() *BatchRepository {
	return &BatchRepository{}
}

// Start inserts the batch row in RUNNING state. Must precede any load.
func (r *BatchRepository) Start(ctx context.Context, q Querier, id string) error {
	const query = `
		INSERT INTO ingestion_batches (id, started_at, status)
		VALUES ($1::uuid, NOW(), $2)
	`
	_, err := q.ExecContext(ctx, query, id, models.BatchRunning)
	return err
}

// Complete marks the batch COMPLETED with the final aggregate counts.
// Called exactly once, after every file has been attempted.
func (r *BatchRepository) Complete(ctx context.Context, q Querier, id string, stats models.RunStats) error {
	const query = `
		UPDATE ingestion_batches
		SET completed_at = NOW(), status = $2,
			files_processed = $3,
			stations_inserted = $4,
			stations_updated = $5,
			connectors_inserted = $6
		WHERE id = $1::uuid
	`
	_, err := q.ExecContext(ctx, query, id, models.BatchCompleted,
		stats.FilesProcessed, stats.StationsInserted, stats.StationsUpdated, stats.ConnectorsInserted)
	return err
}

// ListRecent returns the newest batches, newest first. A batch stuck in
// RUNNING with an old start time is an orphan from a killed run.
func (r *BatchRepository) ListRecent(ctx context.Context, q Querier, limit int) ([]models.Batch, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
		SELECT id, started_at, completed_at, status,
			files_processed, stations_inserted, stations_updated, connectors_inserted
		FROM ingestion_batches
		ORDER BY started_at DESC
		LIMIT $1
	`
	rows, err := q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []models.Batch
	for rows.Next() {
		var b models.Batch
		if err := rows.Scan(
			&b.ID,
			&b.StartedAt,
			&b.CompletedAt,
			&b.Status,
			&b.FilesProcessed,
			&b.StationsInserted,
			&b.StationsUpdated,
			&b.ConnectorsInserted,
		); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
