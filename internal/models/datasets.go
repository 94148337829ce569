package models

import (
	"sort"
	"time"
)

// Dataset is one uploaded equipment file and what was derived from it.
type Dataset struct {
	ID          int64     `json:"id" db:"id"`
	Filename    string    `json:"filename" db:"filename"`
	FileKey     string    `json:"-" db:"file_key"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	ContentType string    `json:"content_type" db:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at" db:"uploaded_at"`
	Summary     *Summary  `json:"summary" db:"-"`
	ReportKey   *string   `json:"-" db:"report_key"`
}

// Summary holds the aggregate statistics computed for one dataset.
// Averages are nil when the source column is absent.
type Summary struct {
	TotalRows          int            `json:"total_rows"`
	AveragePressure    *float64       `json:"average_pressure"`
	AverageTemperature *float64       `json:"average_temperature"`
	TypeDistribution   map[string]int `json:"type_distribution"`
}

// TypeLabels returns the distribution categories ordered by count
// descending, then by name.
func (s *Summary) TypeLabels() []string {
	if s == nil {
		return []string{}
	}
	labels := make([]string, 0, len(s.TypeDistribution))
	for k := range s.TypeDistribution {
		labels = append(labels, k)
	}
	sort.Slice(labels, func(i, j int) bool {
		ci, cj := s.TypeDistribution[labels[i]], s.TypeDistribution[labels[j]]
		if ci != cj {
			return ci > cj
		}
		return labels[i] < labels[j]
	})
	return labels
}

type UploadRequest struct {
	File        []byte
	Filename    string
	ContentType string
}

type UploadResponse struct {
	Message   string  `json:"message"`
	Data      Summary `json:"data"`
	Report    string  `json:"report"`
	DatasetID int64   `json:"dataset_id"`
}

type HistoryItem struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
	Summary    *Summary  `json:"summary"`
	ReportURL  *string   `json:"report_url"`
}

type DatasetPage struct {
	Items    []HistoryItem `json:"items"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// Preview is a row sample of one dataset's raw content. Row values are
// int64, float64 or string; blank cells are "".
type Preview struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}
