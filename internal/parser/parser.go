// Package parser turns a workbook grid into raw station and connector
// records. It is a pure transformation: one pass, no shared state, all
// validation deferred to the transformer.
package parser

import (
	"errors"
	"strings"
)

// headerMarker identifies the header row in the regulator's exports.
const headerMarker = "İstasyon No"

// connectorMarker tags connector-number cells; rows without it below a
// station are layout noise and get skipped.
const connectorMarker = "SKT"

// Fixed column offsets in the export layout.
const (
	colSeqNo = iota
	colStationNo
	colStationName
	colServiceType
	colBrand
	colNetworkOperator
	colStationOperator
	colGreen
	colAddress
	colConnectorNo
	colConnectorType
	colConnectorFormat
	colPower
)

// ErrNoHeader reports a file whose header row could not be located. The
// orchestrator skips the file and carries on.
var ErrNoHeader = errors.New("parser: header row not found")

// RawStation is one station row, unvalidated strings at fixed offsets.
type RawStation struct {
	StationNo       string
	Name            string
	ServiceType     string
	Brand           string
	NetworkOperator string
	StationOperator string
	Green           string
	Address         string
	SourceFile      string
}

// RawConnector is one connector row attributed to the station above it.
type RawConnector struct {
	StationNo       string
	ConnectorNo     string
	ConnectorType   string
	ConnectorFormat string
	PowerKW         string
	SourceFile      string
}

// Result is the raw output of parsing a single file.
type Result struct {
	Stations   []RawStation
	Connectors []RawConnector
}

// Parse scans the grid for the header row, then classifies every row below
// it: a non-empty sequence cell starts a new station, an empty one with an
// SKT-tagged connector cell extends the currently open station. Rows
// matching neither rule are dropped silently, so stations may trail zero or
// many connector rows.
func Parse(grid [][]string, sourceFile string) (Result, error) {
	headerIdx := -1
	for i, row := range grid {
		for _, cell := range row {
			if strings.Contains(cell, headerMarker) {
				headerIdx = i
				break
			}
		}
		if headerIdx >= 0 {
			break
		}
	}
	if headerIdx < 0 {
		return Result{}, ErrNoHeader
	}

	var res Result
	// Cursor holds the business key only; pointing into res.Stations would
	// go stale when append reallocates.
	openStation := ""

	for _, row := range grid[headerIdx+1:] {
		if cell(row, colSeqNo) != "" {
			st := RawStation{
				StationNo:       cell(row, colStationNo),
				Name:            cell(row, colStationName),
				ServiceType:     cell(row, colServiceType),
				Brand:           cell(row, colBrand),
				NetworkOperator: cell(row, colNetworkOperator),
				StationOperator: cell(row, colStationOperator),
				Green:           cell(row, colGreen),
				Address:         cell(row, colAddress),
				SourceFile:      sourceFile,
			}
			if st.StationNo != "" {
				res.Stations = append(res.Stations, st)
				openStation = st.StationNo
			}
			continue
		}

		if openStation == "" {
			continue
		}
		connectorNo := cell(row, colConnectorNo)
		if connectorNo == "" || !strings.Contains(connectorNo, connectorMarker) {
			continue
		}
		res.Connectors = append(res.Connectors, RawConnector{
			StationNo:       openStation,
			ConnectorNo:     connectorNo,
			ConnectorType:   cell(row, colConnectorType),
			ConnectorFormat: cell(row, colConnectorFormat),
			PowerKW:         cell(row, colPower),
			SourceFile:      sourceFile,
		})
	}

	return res, nil
}

// notAvailable lists cell values that mean "no value" in the exports.
var notAvailable = map[string]struct{}{
	"-":   {},
	"N/A": {},
	"NA":  {},
}

// cell returns the trimmed value at idx, or "" when the row is short or the
// cell carries a not-available placeholder.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[idx])
	if _, ok := notAvailable[strings.ToUpper(v)]; ok {
		return ""
	}
	return v
}
