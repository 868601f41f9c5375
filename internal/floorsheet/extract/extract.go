// Package extract turns uploaded floor-sheet CSV files into raw rows for the
// pipeline. This is the upstream file-extraction collaborator: the pipeline
// itself never sees CSV text.
package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/floorsight/backend/internal/contracts"
)

// Rows reads a CSV stream and returns one RawRow per data record. The first
// record is the header and becomes the row keys verbatim; header resolution
// against canonical fields is the pipeline's job. Every cell is kept as a
// string. Short records are padded with empty cells and fully blank records
// are skipped.
func Rows(r io.Reader) ([]contracts.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports frequently have ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, contracts.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []contracts.RawRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if blank(record) {
			continue
		}

		row := make(contracts.RawRow, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if i < len(record) {
				row[key] = record[i]
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, contracts.ErrNoRows
	}
	return rows, nil
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
