package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one CSV data row keyed by resolved field.
type Row map[Field]string

// ReadRows parses a ledger export into field-keyed rows. Delimiters ';' and
// ',' are both accepted (the ERP exports semicolons, hand-edited files tend
// to be comma-separated). Short rows are padded; unknown columns dropped.
func ReadRows(r io.Reader) ([]Row, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading import file: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = detectDelimiter(string(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("empty file: no header row")
		}
		return nil, nil, fmt.Errorf("reading header row: %w", err)
	}
	fields := MapHeaders(headers)

	var unknown []string
	for i, f := range fields {
		if f == "" && strings.TrimSpace(headers[i]) != "" {
			unknown = append(unknown, strings.TrimSpace(headers[i]))
		}
	}

	var rows []Row
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading row %d: %w", len(rows)+2, err)
		}
		row := make(Row)
		for i, f := range fields {
			if f == "" || i >= len(rec) {
				continue
			}
			row[f] = strings.TrimSpace(rec[i])
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, unknown, nil
}

// detectDelimiter picks ';' when the header line contains more semicolons
// than commas.
func detectDelimiter(data string) rune {
	head := data
	if idx := strings.IndexByte(head, '\n'); idx >= 0 {
		head = head[:idx]
	}
	if strings.Count(head, ";") > strings.Count(head, ",") {
		return ';'
	}
	return ','
}
