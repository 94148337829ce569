package services

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/utils"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "History"

var exportHeaders = []string{
	"ID", "Filename", "Uploaded At", "Total Rows", "Avg Pressure", "Avg Temperature", "Type Distribution",
}

// Export writes every dataset's summary to an XLSX workbook, newest first.
func (s *datasetService) Export(ctx context.Context) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, utils.WrapInternalError("Failed to build export", err)
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(exportSheet, 1, 1, headerStyle)

	row := 2
	for offset := 0; ; offset += s.cfg.MaxPageSize {
		list, err := s.repo.List(ctx, offset, s.cfg.MaxPageSize)
		if err != nil {
			s.logger.Error("Failed to list datasets for export", "error", err)
			return nil, utils.NewInternalError("Failed to export datasets")
		}

		for _, ds := range list {
			values := []any{ds.ID, ds.Filename, ds.UploadedAt.Format("2006-01-02 15:04:05")}
			if ds.Summary != nil {
				values = append(values, ds.Summary.TotalRows, optional(ds.Summary.AveragePressure), optional(ds.Summary.AverageTemperature), distribution(ds.Summary.TypeLabels(), ds.Summary.TypeDistribution))
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
				return nil, utils.WrapInternalError("Failed to build export", err)
			}
			row++
		}

		if len(list) < s.cfg.MaxPageSize {
			break
		}
	}

	f.SetColWidth(exportSheet, "B", "B", 28)
	f.SetColWidth(exportSheet, "C", "C", 20)
	f.SetColWidth(exportSheet, "G", "G", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, utils.WrapInternalError("Failed to write export", err)
	}

	s.logger.Info("History exported", "rows", row-2)
	return buf.Bytes(), nil
}

func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func distribution(labels []string, counts map[string]int) string {
	out := ""
	for i, l := range labels {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%d", l, counts[l])
	}
	return out
}
