// Package loader reads two-column spectral tables from disk.
//
// The first row is a header. Column 0 is the chemical shift and column 1 the
// intensity; any further columns are ignored. Files ending in .xlsx are read
// from their first sheet, everything else is parsed as CSV.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/RMahshie/nmrcentroid/pkg/models"
)

var (
	// ErrFileNotFound is returned when the input path does not exist
	ErrFileNotFound = errors.New("cannot find file")
	// ErrTooFewColumns is returned when the header has fewer than two columns
	ErrTooFewColumns = errors.New("at least two columns are required")
	// ErrNoData is returned when the table has a header but no rows
	ErrNoData = errors.New("no data rows found")
)

// Load checks that path exists and reads its first two columns
func Load(path string) (*models.Spectrum, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return LoadCSVFromReader(file)
}

// LoadCSVFromReader parses CSV text from r
func LoadCSVFromReader(r io.Reader) (*models.Spectrum, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return fromRecords(records)
}

// LoadXLSX reads the first sheet of an Excel workbook
func LoadXLSX(path string) (*models.Spectrum, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoData
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return fromRecords(rows)
}

func fromRecords(records [][]string) (*models.Spectrum, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	header := records[0]
	if len(header) < 2 {
		return nil, ErrTooFewColumns
	}

	s := &models.Spectrum{
		XLabel:    cleanCell(header[0]),
		YLabel:    cleanCell(header[1]),
		Shift:     make([]float64, 0, len(records)-1),
		Intensity: make([]float64, 0, len(records)-1),
	}

	for i, record := range records[1:] {
		line := i + 2 // 1-based, after the header
		if len(record) < 2 {
			return nil, fmt.Errorf("row %d: %w", line, ErrTooFewColumns)
		}

		x, err := parseCell(record[0])
		if err != nil {
			return nil, fmt.Errorf("row %d, column %q: %w", line, s.XLabel, err)
		}
		y, err := parseCell(record[1])
		if err != nil {
			return nil, fmt.Errorf("row %d, column %q: %w", line, s.YLabel, err)
		}

		s.Shift = append(s.Shift, x)
		s.Intensity = append(s.Intensity, y)
	}

	if s.Len() == 0 {
		return nil, ErrNoData
	}

	return s, nil
}

func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(v), "\""))
}

func parseCell(v string) (float64, error) {
	return strconv.ParseFloat(cleanCell(v), 64)
}
