package analyzer

import (
	"math"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/extractor"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/models"
)

type columnKind int

const (
	kindText columnKind = iota
	kindInt
	kindFloat
)

// Preview returns the first n rows keyed by column name. Columns whose
// non-blank cells are all numeric yield numbers; blank cells become "".
func Preview(t *extractor.Table, n int) models.Preview {
	p := models.Preview{Columns: []string{}, Rows: []map[string]any{}}
	if t == nil {
		return p
	}

	p.Columns = append(p.Columns, t.Columns...)

	rows := t.Rows
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}

	kinds := make([]columnKind, len(t.Columns))
	for i := range t.Columns {
		kinds[i] = inferKind(rows, i)
	}

	for _, row := range rows {
		m := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			m[col] = cellValue(row[i], kinds[i])
		}
		p.Rows = append(p.Rows, m)
	}

	return p
}

func inferKind(rows [][]string, col int) columnKind {
	kind := kindInt
	seen := false
	for _, row := range rows {
		v := strings.TrimSpace(row[col])
		if v == "" {
			continue
		}
		seen = true
		if _, err := strconv.ParseInt(v, 10, 64); err == nil {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return kindText
		}
		kind = kindFloat
	}
	if !seen {
		return kindText
	}
	return kind
}

func cellValue(raw string, kind columnKind) any {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	switch kind {
	case kindInt:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case kindFloat:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return raw
	}
}
