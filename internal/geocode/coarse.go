// Package geocode backfills station coordinates after loading. Two
// independent maintenance passes: a coarse city-centroid approximation and
// a precise, rate-limited external lookup. Both select only stations still
// missing coordinates, so re-running either is safe.
package geocode

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"voltgrid/internal/models"
	"voltgrid/internal/repository"
)

// Only the first few unknown cities are logged in detail so a file full of
// typos does not flood the log stream.
const maxLoggedMisses = 20

// Summary reports one enrichment pass.
type Summary struct {
	Matched int
	Failed  int
}

// storeTx is the transactional slice of *sql.Tx the coarse pass drives.
type storeTx interface {
	repository.Querier
	Commit() error
	Rollback() error
}

// geoStore is the station selection and update surface the coarse pass
// needs from the repository layer.
type geoStore interface {
	MissingCoordsByCity(ctx context.Context, q repository.Querier) ([]models.GeoRef, error)
	SetLocation(ctx context.Context, q repository.Querier, id int64, lat, lon float64) error
}

// CityPass assigns city-centroid coordinates to stations that have a
// derived city but no location yet.
type CityPass struct {
	pool      repository.Querier
	begin     func(ctx context.Context) (storeTx, error)
	stations  geoStore
	batchSize int
	jitter    float64
	logger    *zap.Logger
}

// NewCityPass builds the coarse pass. batchSize groups updates per commit;
// jitter bounds the random de-overlap offset in degrees.
func NewCityPass(pool *sql.DB, batchSize int, jitter float64, logger *zap.Logger) *CityPass {
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &CityPass{
		pool: pool,
		begin: func(ctx context.Context) (storeTx, error) {
			tx, err := pool.BeginTx(ctx, nil)
			if err != nil {
				return nil, err
			}
			return tx, nil
		},
		stations:  repository.NewStationRepository(),
		batchSize: batchSize,
		jitter:    jitter,
		logger:    logger,
	}
}

// Run walks every station missing coordinates, resolving its city against
// the centroid table. Updates commit in fixed-size batches, trading
// durability for throughput; a final commit flushes the remainder.
func (p *CityPass) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	refs, err := p.stations.MissingCoordsByCity(ctx, p.pool)
	if err != nil {
		return summary, fmt.Errorf("geocode: select stations by city: %w", err)
	}
	p.logger.Info("coarse geocoding started", zap.Int("candidates", len(refs)))

	tx, err := p.begin(ctx)
	if err != nil {
		return summary, fmt.Errorf("geocode: begin tx: %w", err)
	}
	// tx goes nil when a mid-pass re-begin fails; the committed final tx
	// just answers ErrTxDone here.
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	pending := 0
	for _, ref := range refs {
		folded := FoldCity(ref.City)
		centroid, ok := LookupCity(folded)
		if !ok {
			summary.Failed++
			if summary.Failed <= maxLoggedMisses {
				p.logger.Warn("unknown city",
					zap.String("station_no", ref.StationNo),
					zap.String("city", ref.City),
					zap.String("folded", folded))
			}
			continue
		}

		// Unseeded jitter: output coordinates differ between runs, which is
		// fine for visual de-overlap but not for deterministic consumers.
		c := Jitter(centroid, p.jitter)
		if err := p.stations.SetLocation(ctx, tx, ref.ID, c.Lat, c.Lon); err != nil {
			return summary, fmt.Errorf("geocode: set location: %w", err)
		}
		summary.Matched++
		pending++

		if pending >= p.batchSize {
			if err := tx.Commit(); err != nil {
				return summary, fmt.Errorf("geocode: commit batch: %w", err)
			}
			p.logger.Info("progress", zap.Int("matched", summary.Matched), zap.Int("failed", summary.Failed))
			tx, err = p.begin(ctx)
			if err != nil {
				return summary, fmt.Errorf("geocode: begin tx: %w", err)
			}
			pending = 0
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("geocode: final commit: %w", err)
	}

	p.logger.Info("coarse geocoding finished",
		zap.Int("matched", summary.Matched),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

// Jitter offsets a centroid by up to ±bound degrees on each axis so
// stations in one city do not collapse onto a single point.
func Jitter(c Coordinate, bound float64) Coordinate {
	return Coordinate{
		Lat: c.Lat + (rand.Float64()*2-1)*bound,
		Lon: c.Lon + (rand.Float64()*2-1)*bound,
	}
}
