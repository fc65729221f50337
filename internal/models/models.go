package models

import "time"

// Station is one charging location, keyed by the regulator-assigned
// station number. StationNo never changes after first sight; name, service
// type and brand refresh on re-ingestion.
type Station struct {
	ID              int64       `db:"id"`
	StationNo       string      `db:"station_no"`
	Name            string      `db:"station_name"`
	ServiceType     ServiceType `db:"service_type"`
	Brand           string      `db:"brand"`
	NetworkOperator string      `db:"charge_network_operator"`
	StationOperator string      `db:"station_operator"`
	IsGreen         bool        `db:"is_green"`
	Address         string      `db:"address"`
	City            string      `db:"city"`
	District        string      `db:"district"`
	SourceFile      string      `db:"source_file"`
	BatchID         string      `db:"ingestion_batch_id"`
	DataHash        string      `db:"data_hash"`
	CreatedAt       time.Time   `db:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at"`
}

// Connector is one physical socket belonging to a station. Only the power
// rating refreshes on re-ingestion.
type Connector struct {
	ID          int64         `db:"id"`
	StationNo   string        `db:"-"`
	ConnectorNo string        `db:"connector_no"`
	Type        ConnectorType `db:"connector_type"`
	Format      string        `db:"connector_format"`
	PowerKW     float64       `db:"power_kw"`
	SourceFile  string        `db:"source_file"`
	BatchID     string        `db:"ingestion_batch_id"`
}

// Batch is one pipeline execution; every row written during the run carries
// its id for lineage.
type Batch struct {
	ID                 string      `db:"id"`
	StartedAt          time.Time   `db:"started_at"`
	CompletedAt        *time.Time  `db:"completed_at"`
	Status             BatchStatus `db:"status"`
	FilesProcessed     int         `db:"files_processed"`
	StationsInserted   int         `db:"stations_inserted"`
	StationsUpdated    int         `db:"stations_updated"`
	ConnectorsInserted int         `db:"connectors_inserted"`
}

// GeoRef is the slice of a station the enrichment passes need.
type GeoRef struct {
	ID        int64
	StationNo string
	Address   string
	City      string
}
