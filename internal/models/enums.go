package models

import "strings"

// ServiceType says who may use a station. The regulator's exports spell the
// two values in several Turkish variants; anything unmapped defaults to
// public service.
type ServiceType string

const (
	ServicePublic  ServiceType = "PUBLIC"
	ServicePrivate ServiceType = "PRIVATE"
)

var serviceTypeVariants = map[string]ServiceType{
	"HALKA_ACIK": ServicePublic,
	"HALKA ACIK": ServicePublic,
	"OZEL":       ServicePrivate,
	"ÖZEL":       ServicePrivate,
	"PUBLIC":     ServicePublic,
	"PRIVATE":    ServicePrivate,
}

// ServiceTypeFromRaw maps a raw spreadsheet cell to a canonical service type.
func ServiceTypeFromRaw(raw string) ServiceType {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if st, ok := serviceTypeVariants[key]; ok {
		return st
	}
	return ServicePublic
}

// ConnectorType is the current family of a physical socket.
type ConnectorType string

const (
	ConnectorAC ConnectorType = "AC"
	ConnectorDC ConnectorType = "DC"
)

// ConnectorTypeFromRaw classifies a raw type cell. DC-prefixed tokens
// (DC, DC_CCS, ...) map to DC; everything else, including blanks, to AC.
func ConnectorTypeFromRaw(raw string) ConnectorType {
	token := NormalizeToken(raw)
	if strings.HasPrefix(token, string(ConnectorDC)) {
		return ConnectorDC
	}
	return ConnectorAC
}

const defaultConnectorFormat = "AC_TYPE2"

// ConnectorFormatFromRaw produces an enumeration-safe socket-standard token.
// The regulator's format vocabulary is open, so the value stays a token
// rather than a closed enum.
func ConnectorFormatFromRaw(raw string) string {
	token := NormalizeToken(raw)
	if token == "" {
		return defaultConnectorFormat
	}
	return token
}

// NormalizeToken upper-cases and underscores a free-text cell so it is safe
// to treat as an enum value.
func NormalizeToken(raw string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(raw)), " ", "_")
}

// BatchStatus is the lifecycle state of an ingestion batch.
type BatchStatus string

const (
	// BatchRunning is set when the batch row is created. A batch that keeps
	// this status forever marks a run killed mid-flight.
	BatchRunning BatchStatus = "RUNNING"
	// BatchCompleted is terminal and set exactly once.
	BatchCompleted BatchStatus = "COMPLETED"
)
