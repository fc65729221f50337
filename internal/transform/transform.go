// Package transform maps raw spreadsheet records to canonical station and
// connector payloads. Malformed records are filtered, never fatal: one bad
// row must not abort a file, let alone the batch.
package transform

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"voltgrid/internal/models"
	"voltgrid/internal/parser"
)

// Result carries the surviving records plus drop counts for the log stream.
// Drops are visible in logs only; they never corrupt the aggregate counts.
type Result struct {
	Stations          []models.Station
	Connectors        []models.Connector
	DroppedStations   int
	DroppedConnectors int
}

// Apply normalizes every raw record, dropping those without a business key
// or, for connectors, without an extractable positive power rating.
func Apply(raw parser.Result) Result {
	var res Result
	for _, rs := range raw.Stations {
		st, ok := Station(rs)
		if !ok {
			res.DroppedStations++
			continue
		}
		res.Stations = append(res.Stations, st)
	}
	for _, rc := range raw.Connectors {
		c, ok := Connector(rc)
		if !ok {
			res.DroppedConnectors++
			continue
		}
		res.Connectors = append(res.Connectors, c)
	}
	return res
}

// Station normalizes one raw station. Returns false when the business key
// is missing.
func Station(raw parser.RawStation) (models.Station, bool) {
	if raw.StationNo == "" {
		return models.Station{}, false
	}

	city, district := ParseAddress(raw.Address)

	return models.Station{
		StationNo:       raw.StationNo,
		Name:            raw.Name,
		ServiceType:     models.ServiceTypeFromRaw(raw.ServiceType),
		Brand:           raw.Brand,
		NetworkOperator: raw.NetworkOperator,
		StationOperator: raw.StationOperator,
		IsGreen:         parseGreenFlag(raw.Green),
		Address:         raw.Address,
		City:            city,
		District:        district,
		SourceFile:      raw.SourceFile,
		DataHash:        ContentHash(raw),
	}, true
}

// Connector normalizes one raw connector. Returns false when the business
// key is missing or no positive power rating can be extracted; a connector
// must never reach storage with power <= 0.
func Connector(raw parser.RawConnector) (models.Connector, bool) {
	if raw.ConnectorNo == "" {
		return models.Connector{}, false
	}

	power, ok := ParsePower(raw.PowerKW)
	if !ok || power <= 0 {
		return models.Connector{}, false
	}

	return models.Connector{
		StationNo:   raw.StationNo,
		ConnectorNo: raw.ConnectorNo,
		Type:        models.ConnectorTypeFromRaw(raw.ConnectorType),
		Format:      models.ConnectorFormatFromRaw(raw.ConnectorFormat),
		PowerKW:     power,
		SourceFile:  raw.SourceFile,
	}, true
}

var (
	kwSuffixRe = regexp.MustCompile(`(?i)\s*KW\s*$`)
	numericRe  = regexp.MustCompile(`(\d+\.?\d*)`)
)

// ParsePower extracts a power rating from a cell that may carry a "kW"
// suffix and either decimal separator ("22,5 kW" -> 22.5).
func ParsePower(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = kwSuffixRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", ".")

	m := numericRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// cityRe matches the trailing "/ CITY" token of a regulator-style address.
var cityRe = regexp.MustCompile(`/\s*([A-ZİŞĞÜÖÇ]+)\s*$`)

// ParseAddress applies the best-effort "... / DISTRICT / CITY" heuristic.
// Addresses that do not match leave both parts empty; malformed input never
// fails the record.
func ParseAddress(address string) (city, district string) {
	if strings.TrimSpace(address) == "" {
		return "", ""
	}
	upper := strings.ToUpper(address)

	m := cityRe.FindStringSubmatch(upper)
	if m == nil {
		return "", ""
	}
	city = strings.TrimSpace(m[1])

	districtRe, err := regexp.Compile(`([A-ZİŞĞÜÖÇ]+)\s*/\s*` + regexp.QuoteMeta(city))
	if err != nil {
		return city, ""
	}
	if dm := districtRe.FindStringSubmatch(upper); dm != nil {
		district = strings.TrimSpace(dm[1])
	}
	return city, district
}

// ContentHash digests the raw pre-normalization record. Map marshaling sorts
// keys, so the digest is independent of field order. Stored for change
// detection; nothing compares it against prior hashes yet.
func ContentHash(raw parser.RawStation) string {
	payload := map[string]string{
		"station_no":              raw.StationNo,
		"station_name":            raw.Name,
		"service_type":            raw.ServiceType,
		"brand":                   raw.Brand,
		"charge_network_operator": raw.NetworkOperator,
		"station_operator":        raw.StationOperator,
		"is_green":                raw.Green,
		"address":                 raw.Address,
		"source_file":             raw.SourceFile,
	}
	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

var greenValues = map[string]struct{}{
	"EVET": {},
	"YES":  {},
	"TRUE": {},
	"1":    {},
}

func parseGreenFlag(raw string) bool {
	_, ok := greenValues[strings.ToUpper(strings.TrimSpace(raw))]
	return ok
}
