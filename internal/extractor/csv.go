package extractor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

func ExtractCSV(data []byte, maxRows int) (*Table, error) {
	if err := ValidateText(data); err != nil {
		return nil, err
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode file: %w", err)
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = sniffDelimiter(text)

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("file has no header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &Table{Columns: normalizeHeader(header)}

	for maxRows <= 0 || len(t.Rows) < maxRows {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(t.Rows)+2, err)
		}
		if isBlank(record) {
			continue
		}
		t.Rows = append(t.Rows, fitRow(record, len(t.Columns)))
	}

	return t, nil
}

// sniffDelimiter picks the candidate separator that occurs most often in the
// first line, ignoring quoted sections. Comma wins ties and empty input.
func sniffDelimiter(text string) rune {
	line := text
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		line = text[:i]
	}

	counts := map[rune]int{}
	inQuotes := false
	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case !inQuotes && (c == ',' || c == ';' || c == '\t'):
			counts[c]++
		}
	}

	best := ','
	for _, c := range []rune{';', '\t'} {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}
