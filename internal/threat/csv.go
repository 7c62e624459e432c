package threat

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	dErrors "remedia/pkg/domain-errors"
)

// Well-known CSV column names mapped onto first-class Record fields. Every
// other column ends up in the extras mapping as a string value.
const (
	columnThreatID    = "threat_id"
	columnPath        = "file_path"
	columnHash        = "sha256"
	columnDescription = "description"
)

// ParseCSV reads threat records from a tabular file. The first row is the
// header; a threat_id column is required. Row order is preserved, which is
// what lets batch reports be correlated by index.
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, dErrors.New(dErrors.CodeValidation, "CSV input is empty")
	}
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeValidation, "read CSV header", err)
	}

	idCol := -1
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
		if header[i] == columnThreatID {
			idCol = i
		}
	}
	if idCol == -1 {
		return nil, dErrors.New(dErrors.CodeValidation, "CSV header must contain a threat_id column")
	}

	var records []Record
	for row := 2; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, dErrors.Wrap(dErrors.CodeValidation, fmt.Sprintf("read CSV row %d", row), err)
		}

		rec, err := recordFromRow(header, fields)
		if err != nil {
			return nil, dErrors.Wrap(dErrors.CodeValidation, fmt.Sprintf("CSV row %d", row), err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func recordFromRow(header, fields []string) (Record, error) {
	var rec Record
	for i, value := range fields {
		if i >= len(header) {
			break
		}
		value = strings.TrimSpace(value)
		switch header[i] {
		case columnThreatID:
			rec.ID = value
		case columnPath:
			rec.Path = value
		case columnHash:
			rec.Hash = value
		case columnDescription:
			rec.Description = value
		default:
			if value != "" {
				rec.Extra = append(rec.Extra, Field{Key: header[i], Value: value})
			}
		}
	}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}
