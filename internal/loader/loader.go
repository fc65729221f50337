// Package loader owns the write side of the pipeline: one transaction per
// file, savepoints around individual records so a constraint violation
// skips the record without poisoning its siblings.
package loader

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"voltgrid/internal/models"
	"voltgrid/internal/repository"
)

// fileTx is the transactional slice of *sql.Tx the loader drives.
type fileTx interface {
	repository.Querier
	Commit() error
	Rollback() error
}

// stationWriter and connectorWriter are the repository surface the loader
// depends on.
type stationWriter interface {
	Upsert(ctx context.Context, q repository.Querier, st models.Station, batchID string) (int64, bool, error)
}

type connectorWriter interface {
	Upsert(ctx context.Context, q repository.Querier, c models.Connector, stationID int64, batchID string) error
}

// Loader performs batch-scoped idempotent upserts. It holds the run's
// single connection pool and serializes all writes on it.
type Loader struct {
	begin      func(ctx context.Context) (fileTx, error)
	stations   stationWriter
	connectors connectorWriter
	batchID    string
	logger     *zap.Logger
}

// New builds a loader bound to one ingestion batch.
func New(pool *sql.DB, batchID string, logger *zap.Logger) *Loader {
	return &Loader{
		begin: func(ctx context.Context) (fileTx, error) {
			tx, err := pool.BeginTx(ctx, nil)
			if err != nil {
				return nil, err
			}
			return tx, nil
		},
		stations:   repository.NewStationRepository(),
		connectors: repository.NewConnectorRepository(),
		batchID:    batchID,
		logger:     logger,
	}
}

// LoadFile writes one file's canonical records as a unit. Stations go first
// so connectors can resolve their owner through the station_no -> id map
// built in this call; a connector whose station did not persist is skipped,
// not an error. Returns the per-file counts used for batch totals.
func (l *Loader) LoadFile(ctx context.Context, stations []models.Station, connectors []models.Connector) (models.FileStats, error) {
	var stats models.FileStats

	tx, err := l.begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("loader: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stationIDs := make(map[string]int64, len(stations))

	for _, st := range stations {
		var (
			id       int64
			inserted bool
		)
		recordErr, txErr := writeGuarded(ctx, tx, func() error {
			var upsertErr error
			id, inserted, upsertErr = l.stations.Upsert(ctx, tx, st, l.batchID)
			return upsertErr
		})
		if txErr != nil {
			return stats, txErr
		}
		if recordErr != nil {
			l.logger.Warn("station upsert failed, skipping record",
				zap.String("station_no", st.StationNo),
				zap.Error(recordErr))
			stats.RecordsFailed++
			continue
		}

		stationIDs[st.StationNo] = id
		if inserted {
			stats.StationsInserted++
		} else {
			stats.StationsUpdated++
		}
	}

	for _, c := range connectors {
		stationID, resolved := stationIDs[c.StationNo]
		if !resolved {
			// Owning station never persisted in this call; discard quietly.
			l.logger.Debug("connector references unknown station",
				zap.String("connector_no", c.ConnectorNo),
				zap.String("station_no", c.StationNo))
			stats.ConnectorsSkipped++
			continue
		}

		recordErr, txErr := writeGuarded(ctx, tx, func() error {
			return l.connectors.Upsert(ctx, tx, c, stationID, l.batchID)
		})
		if txErr != nil {
			return stats, txErr
		}
		if recordErr != nil {
			l.logger.Warn("connector upsert failed, skipping record",
				zap.String("connector_no", c.ConnectorNo),
				zap.Error(recordErr))
			stats.RecordsFailed++
			continue
		}
		stats.ConnectorsInserted++
	}

	if err := tx.Commit(); err != nil {
		return models.FileStats{}, fmt.Errorf("loader: commit: %w", err)
	}
	return stats, nil
}

// writeGuarded runs one record write inside a savepoint. A write error
// rolls back to the savepoint and comes back as recordErr; the surrounding
// file transaction stays healthy. txErr is reserved for transaction
// plumbing failures, which are file-fatal.
func writeGuarded(ctx context.Context, tx repository.Querier, write func() error) (recordErr, txErr error) {
	if _, err := tx.ExecContext(ctx, "SAVEPOINT record_write"); err != nil {
		return nil, fmt.Errorf("loader: savepoint: %w", err)
	}
	if writeErr := write(); writeErr != nil {
		if _, err := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT record_write"); err != nil {
			return nil, fmt.Errorf("loader: rollback savepoint: %w", err)
		}
		return writeErr, nil
	}
	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT record_write"); err != nil {
		return nil, fmt.Errorf("loader: release savepoint: %w", err)
	}
	return nil, nil
}
