package analyzer

import (
	"math"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/extractor"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/models"
)

// Column names the summary is computed from. Matching ignores case,
// surrounding whitespace and a trailing unit such as "Pressure (bar)".
const (
	ColumnType        = "Type"
	ColumnPressure    = "Pressure"
	ColumnTemperature = "Temperature"
)

// Summarize computes row count, pressure and temperature means rounded to
// two decimals, and the equipment type distribution.
func Summarize(t *extractor.Table) models.Summary {
	s := models.Summary{TypeDistribution: map[string]int{}}
	if t == nil {
		return s
	}

	s.TotalRows = len(t.Rows)
	s.AveragePressure = columnMean(t, ColumnPressure)
	s.AverageTemperature = columnMean(t, ColumnTemperature)

	if idx := columnIndex(t.Columns, ColumnType); idx >= 0 {
		for _, row := range t.Rows {
			v := strings.TrimSpace(row[idx])
			if v == "" {
				continue
			}
			s.TypeDistribution[v]++
		}
	}

	return s
}

// columnMean returns nil when the column is absent or holds no numbers.
func columnMean(t *extractor.Table, name string) *float64 {
	idx := columnIndex(t.Columns, name)
	if idx < 0 {
		return nil
	}

	var sum float64
	var n int
	for _, row := range t.Rows {
		if v, ok := parseNumeric(row[idx]); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return nil
	}

	mean := round2(sum / float64(n))
	return &mean
}

func columnIndex(columns []string, name string) int {
	for i, c := range columns {
		if strings.EqualFold(stripUnit(c), name) {
			return i
		}
	}
	return -1
}

// stripUnit drops a trailing "(unit)" or "[unit]".
func stripUnit(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, "(["); i > 0 {
		name = strings.TrimSpace(name[:i])
	}
	return name
}

// parseNumeric accepts plain floats and a decimal comma when no dot is present.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
