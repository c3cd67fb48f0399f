package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/LabpsicofisioUCU/ViCC/domain/core"
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
)

// DataReader reads stimulus attribute tables from Excel and CSV files.
// Expected layout: header row with an id column followed by attribute names,
// then one row per stimulus with numeric attribute values.
type DataReader struct{}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader() *DataReader {
	return &DataReader{}
}

// ReadTable loads the attribute table at path, dispatching on extension.
func (r *DataReader) ReadTable(path string) (*sampling.AttributeTable, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("table file not found: %s", path)
	}

	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		return r.readCSV(path)
	}
	return r.readExcel(path)
}

func (r *DataReader) readExcel(path string) (*sampling.AttributeTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	return r.processRows(rows)
}

func (r *DataReader) readCSV(path string) (*sampling.AttributeTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return r.processRows(rows)
}

// processRows converts raw string rows into an AttributeTable.
func (r *DataReader) processRows(rows [][]string) (*sampling.AttributeTable, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", core.ErrEmptyTable)
	}

	header := rows[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: need an id column and at least one attribute", core.ErrEmptyTable)
	}
	names := make([]string, len(header)-1)
	for i, h := range header[1:] {
		names[i] = strings.TrimSpace(h)
	}

	ids := make([]string, 0, len(rows)-1)
	columns := make([][]float64, len(names))
	for c := range columns {
		columns[c] = make([]float64, 0, len(rows)-1)
	}

	for rowIdx, row := range rows[1:] {
		if len(row) == 0 {
			continue // trailing blank rows are common in exported sheets
		}
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", core.ErrColumnMismatch, rowIdx+2, len(row), len(header))
		}
		ids = append(ids, strings.TrimSpace(row[0]))
		for c, cell := range row[1:] {
			value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d, attribute %q: %q", core.ErrNonNumericValue, rowIdx+2, names[c], cell)
			}
			columns[c] = append(columns[c], value)
		}
	}

	return sampling.NewAttributeTable(ids, names, columns)
}
