package geocode

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"voltgrid/internal/repository"
)

// AddressPass resolves exact coordinates through an external lookup for a
// bounded working set of stations per run. Each hit commits immediately so
// an interrupted run resumes where it left off.
type AddressPass struct {
	pool     *sql.DB
	stations *repository.StationRepository
	client   *NominatimClient
	limit    int
	delay    time.Duration
	logger   *zap.Logger
}

// NewAddressPass builds the precise pass. delay is the mandatory pause
// between consecutive lookups; it paces requests under the external
// service's rate limit and is not a retry policy.
func NewAddressPass(pool *sql.DB, client *NominatimClient, limit int, delay time.Duration, logger *zap.Logger) *AddressPass {
	if limit <= 0 {
		limit = 100
	}
	return &AddressPass{
		pool:     pool,
		stations: repository.NewStationRepository(),
		client:   client,
		limit:    limit,
		delay:    delay,
		logger:   logger,
	}
}

// Run looks up each candidate once. Misses and transport errors are counted
// and left for a future run; nothing is retried within this one.
func (p *AddressPass) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	refs, err := p.stations.MissingCoordsWithAddress(ctx, p.pool, p.limit)
	if err != nil {
		return summary, fmt.Errorf("geocode: select stations by address: %w", err)
	}
	p.logger.Info("precise geocoding started", zap.Int("candidates", len(refs)))

	for i, ref := range refs {
		if i > 0 {
			time.Sleep(p.delay)
		}

		coord, ok, err := p.client.Lookup(ctx, ref.Address, ref.City)
		if err != nil {
			summary.Failed++
			p.logger.Warn("geocode lookup failed",
				zap.String("station_no", ref.StationNo),
				zap.Error(err))
			continue
		}
		if !ok {
			summary.Failed++
			p.logger.Info("no geocode match", zap.String("station_no", ref.StationNo))
			continue
		}

		if err := p.stations.SetLocation(ctx, p.pool, ref.ID, coord.Lat, coord.Lon); err != nil {
			return summary, fmt.Errorf("geocode: set location: %w", err)
		}
		summary.Matched++
		p.logger.Info("station geocoded",
			zap.String("station_no", ref.StationNo),
			zap.Float64("lat", coord.Lat),
			zap.Float64("lon", coord.Lon))
	}

	p.logger.Info("precise geocoding finished",
		zap.Int("matched", summary.Matched),
		zap.Int("failed", summary.Failed))
	return summary, nil
}
