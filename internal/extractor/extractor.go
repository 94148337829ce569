package extractor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for files that are neither delimited text nor XLSX.
var ErrUnsupported = errors.New("unsupported file type")

// Table is the tabular content of an upload. Every row has exactly
// len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatXLSX
)

const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DetectFormat decides how to parse a file from its extension, falling back
// to the reported content type.
func DetectFormat(filename, contentType string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".tsv", ".txt":
		return FormatCSV
	case ".xlsx":
		return FormatXLSX
	}

	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	switch ct {
	case "text/csv", "application/csv", "text/plain", "text/tab-separated-values", "application/vnd.ms-excel":
		return FormatCSV
	case ContentTypeXLSX:
		return FormatXLSX
	}

	return FormatUnknown
}

// Extension is the file extension used when an upload has no usable name.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatXLSX:
		return ".xlsx"
	default:
		return ""
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return ContentTypeCSV
	case FormatXLSX:
		return ContentTypeXLSX
	default:
		return "application/octet-stream"
	}
}

// Extract parses data as a table. maxRows limits data rows read; 0 means all.
func Extract(filename, contentType string, data []byte, maxRows int) (*Table, error) {
	switch DetectFormat(filename, contentType) {
	case FormatCSV:
		return ExtractCSV(data, maxRows)
	case FormatXLSX:
		return ExtractXLSX(data, maxRows)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
}

// normalizeHeader trims names, replaces blanks with Column_N and renames
// repeats to name.1, name.2 so every column keeps a distinct key.
func normalizeHeader(raw []string) []string {
	headers := make([]string, len(raw))
	counts := make(map[string]int, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		if _, dup := counts[h]; dup {
			base := h
			for {
				counts[base]++
				h = fmt.Sprintf("%s.%d", base, counts[base])
				if _, taken := counts[h]; !taken {
					break
				}
			}
		}
		counts[h] = 0
		headers[i] = h
	}
	return headers
}

// fitRow pads or truncates record to n cells.
func fitRow(record []string, n int) []string {
	row := make([]string, n)
	copy(row, record)
	return row
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
