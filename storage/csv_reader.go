package storage

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"upwork-analytics/errors"
	"upwork-analytics/models"
	"upwork-analytics/utils"
)

// CSVReader loads the scraped job export from a CSV file
type CSVReader struct {
	filePath string
	logger   *utils.Logger
}

// NewCSVReader creates a new CSVReader
func NewCSVReader(filePath string, logger *utils.Logger) *CSVReader {
	return &CSVReader{filePath: filePath, logger: logger}
}

// Key returns the file path the reader is bound to
func (r *CSVReader) Key() string {
	return r.filePath
}

// ReadTable parses the whole file into memory
func (r *CSVReader) ReadTable() (*models.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(fmt.Sprintf("input file %s", r.filePath), err)
		}
		return nil, errors.Unavailable(fmt.Sprintf("opening %s", r.filePath), err)
	}
	defer file.Close()

	table, err := ParseCSV(file)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Loaded %d rows x %d columns from: %s", len(table.Rows), len(table.Header), r.filePath)
	return table, nil
}

// ParseCSV reads a header row followed by records. Short records are padded
// with empty cells and long ones truncated to the header width.
func ParseCSV(src io.Reader) (*models.Table, error) {
	reader := csv.NewReader(bufio.NewReader(src))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.InvalidInput("csv has no header row", nil)
	}
	if err != nil {
		return nil, errors.InvalidInput("reading csv header", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	table := &models.Table{Header: header}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("reading csv record %d", len(table.Rows)+1), err)
		}

		row := make([]string, len(header))
		copy(row, rec)
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
