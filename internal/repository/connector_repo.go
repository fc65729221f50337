package repository

import (
	"context"

	"voltgrid/internal/models"
)

// ConnectorRepository persists connectors keyed on connector_no.
type ConnectorRepository struct{}

// NewConnectorRepository returns a connector repository.
func NewConnectorRepository() *ConnectorRepository {
	return &ConnectorRepository{}
}

// Upsert inserts the connector or, on repeat sight, refreshes only the
// power rating and lineage columns.
func (r *ConnectorRepository) Upsert(ctx context.Context, q Querier, c models.Connector, stationID int64, batchID string) error {
	const query = `
		INSERT INTO connectors (
			station_id, connector_no, connector_type, connector_format,
			power_kw, source_file, ingestion_batch_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7::uuid)
		ON CONFLICT (connector_no) DO UPDATE SET
			power_kw = EXCLUDED.power_kw,
			ingestion_batch_id = EXCLUDED.ingestion_batch_id,
			updated_at = NOW()
	`
	_, err := q.ExecContext(ctx, query,
		stationID,
		c.ConnectorNo,
		c.Type,
		c.Format,
		c.PowerKW,
		nullable(c.SourceFile),
		batchID,
	)
	return err
}
