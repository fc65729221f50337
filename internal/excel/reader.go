// Package excel flattens legacy (.xls) and modern (.xlsx) workbooks into a
// plain string grid so the parser never touches a spreadsheet library.
package excel

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Regulator exports stay far below this; it only bounds the legacy reader.
const maxLegacyRows = 65536

// ReadGrid opens a workbook and returns the first sheet as rows of cell
// strings. Cell values are not trimmed here; the parser owns cleaning.
func ReadGrid(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		return readLegacy(path)
	case ".xlsx":
		return readWorkbook(path)
	default:
		return nil, fmt.Errorf("excel: unsupported extension %q", filepath.Ext(path))
	}
}

func readLegacy(path string) ([][]string, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("excel: open xls %s: %w", filepath.Base(path), err)
	}
	return wb.ReadAllCells(maxLegacyRows), nil
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excel: open xlsx %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel: %s has no sheets", filepath.Base(path))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("excel: read rows %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}
