package frame

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// LoadCSV reads a CSV file into a typed frame, inferring column types.
// Without a header row the columns are named by position.
func LoadCSV(path string, hasHeader bool) (Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return Frame{}, fmt.Errorf("could not open '%s': %w", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(bufio.NewReader(file)).ReadAll()
	if err != nil {
		return Frame{}, fmt.Errorf("could not read '%s': %w", path, err)
	}
	if len(records) == 0 {
		return New()
	}

	var header []string
	if hasHeader {
		header = records[0]
		records = records[1:]
	} else {
		header = make([]string, len(records[0]))
		for j := range header {
			header[j] = strconv.Itoa(j)
		}
	}

	cols := make([]Series, len(header))
	for j, name := range header {
		raw := make([]string, len(records))
		for i, rec := range records {
			if j >= len(rec) {
				return Frame{}, fmt.Errorf("row %d has %d fields, want %d", i, len(rec), len(header))
			}
			raw[i] = rec[j]
		}
		s, err := InferSeries(name, raw)
		if err != nil {
			return Frame{}, err
		}
		cols[j] = s
	}
	return New(cols...)
}
