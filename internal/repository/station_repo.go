package repository

import (
	"context"
	"database/sql"

	"voltgrid/internal/models"
)

// StationRepository persists stations keyed on station_no.
type StationRepository struct{}

// NewStationRepository returns a station repository.
func NewStationRepository() *StationRepository {
	return &StationRepository{}
}

// Upsert inserts the station or refreshes its mutable subset (name, service
// type, brand) plus lineage columns. The xmax trick surfaces which branch
// fired so the loader can keep accurate insert/update counts.
func (r *StationRepository) Upsert(ctx context.Context, q Querier, st models.Station, batchID string) (int64, bool, error) {
	const query = `
		INSERT INTO stations (
			station_no, station_name, service_type, brand,
			charge_network_operator, station_operator, is_green,
			address, city, district, source_file, ingestion_batch_id, data_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::uuid, $13)
		ON CONFLICT (station_no) DO UPDATE SET
			station_name = EXCLUDED.station_name,
			service_type = EXCLUDED.service_type,
			brand = EXCLUDED.brand,
			source_file = EXCLUDED.source_file,
			ingestion_batch_id = EXCLUDED.ingestion_batch_id,
			data_hash = EXCLUDED.data_hash,
			updated_at = NOW()
		RETURNING id, (xmax = 0) AS inserted
	`

	var (
		id       int64
		inserted bool
	)
	err := q.QueryRowContext(ctx, query,
		st.StationNo,
		st.Name,
		st.ServiceType,
		nullable(st.Brand),
		nullable(st.NetworkOperator),
		nullable(st.StationOperator),
		st.IsGreen,
		nullable(st.Address),
		nullable(st.City),
		nullable(st.District),
		nullable(st.SourceFile),
		batchID,
		nullable(st.DataHash),
	).Scan(&id, &inserted)
	if err != nil {
		return 0, false, err
	}
	return id, inserted, nil
}

// MissingCoordsByCity returns every station without a location but with a
// derived city, for the coarse enrichment pass.
func (r *StationRepository) MissingCoordsByCity(ctx context.Context, q Querier) ([]models.GeoRef, error) {
	const query = `
		SELECT id, station_no, COALESCE(address, ''), COALESCE(city, '')
		FROM stations
		WHERE location IS NULL AND city IS NOT NULL AND city <> ''
		ORDER BY id
	`
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGeoRefs(rows)
}

// MissingCoordsWithAddress returns a bounded working set of stations without
// a location but with a street address, for the precise enrichment pass.
func (r *StationRepository) MissingCoordsWithAddress(ctx context.Context, q Querier, limit int) ([]models.GeoRef, error) {
	const query = `
		SELECT id, station_no, COALESCE(address, ''), COALESCE(city, '')
		FROM stations
		WHERE location IS NULL AND address IS NOT NULL AND address <> ''
		ORDER BY id
		LIMIT $1
	`
	rows, err := q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGeoRefs(rows)
}

// SetLocation writes the station's geographic point. PostGIS wants lon,lat.
func (r *StationRepository) SetLocation(ctx context.Context, q Querier, id int64, lat, lon float64) error {
	const query = `
		UPDATE stations
		SET location = ST_SetSRID(ST_MakePoint($2, $3), 4326)
		WHERE id = $1
	`
	_, err := q.ExecContext(ctx, query, id, lon, lat)
	return err
}

func scanGeoRefs(rows *sql.Rows) ([]models.GeoRef, error) {
	var refs []models.GeoRef
	for rows.Next() {
		var ref models.GeoRef
		if err := rows.Scan(&ref.ID, &ref.StationNo, &ref.Address, &ref.City); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// nullable maps "" to NULL so optional text columns stay NULL instead of
// accumulating empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
