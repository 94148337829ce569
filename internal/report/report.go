package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/charts"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/models"
	"github.com/go-pdf/fpdf"
)

const Title = "Chemical Equipment Data Report"

// Layout in points from the top-left corner of an A4 page.
const (
	marginLeft   = 50.0
	marginTop    = 42.0
	marginBottom = 80.0
	titleGap     = 40.0
	lineHeight   = 22.0
	chartWidth   = 240.0
	chartHeight  = 180.0
)

type Input struct {
	DatasetID   int64
	Filename    string
	Summary     models.Summary
	GeneratedAt time.Time
}

// Generate renders a PDF with one "key: value" line per summary field
// followed by the pie and bar charts.
func Generate(in Input) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.SetAutoPageBreak(false, marginBottom)
	_, pageHeight := pdf.GetPageSize()

	pdf.AddPage()
	y := marginTop

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(marginLeft, y, Title)
	y += titleGap

	// Core fonts are cp1252; non-ASCII filenames need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range Lines(in) {
		pdf.Text(marginLeft, y, tr(line))
		y += lineHeight
		if y > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}
	}

	if err := drawCharts(pdf, &in.Summary, y, pageHeight); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Lines returns the text lines printed in the report body.
func Lines(in Input) []string {
	s := in.Summary
	lines := []string{
		"dataset: " + in.Filename,
		"total_rows: " + strconv.Itoa(s.TotalRows),
		"average_pressure: " + formatAverage(s.AveragePressure),
		"average_temperature: " + formatAverage(s.AverageTemperature),
		"type_distribution: " + formatDistribution(&s),
	}
	if !in.GeneratedAt.IsZero() {
		lines = append(lines, "generated_at: "+in.GeneratedAt.UTC().Format(time.RFC3339))
	}
	return lines
}

func formatAverage(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatDistribution(s *models.Summary) string {
	labels := s.TypeLabels()
	if len(labels) == 0 {
		return "none"
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprintf("%s=%d", l, s.TypeDistribution[l])
	}
	return strings.Join(parts, ", ")
}

func drawCharts(pdf *fpdf.Fpdf, s *models.Summary, y, pageHeight float64) error {
	pie, err := charts.RenderPiePNG(s, charts.DefaultWidth, charts.DefaultHeight)
	if err != nil {
		return err
	}
	bar, err := charts.RenderBarPNG(s, charts.DefaultWidth, charts.DefaultHeight)
	if err != nil {
		return err
	}

	if y+chartHeight > pageHeight-marginBottom {
		pdf.AddPage()
		y = marginTop
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, img := range []struct {
		name string
		data []byte
	}{{"pie", pie}, {"bar", bar}} {
		pdf.RegisterImageOptionsReader(img.name, opts, bytes.NewReader(img.data))
		pdf.ImageOptions(img.name, marginLeft+float64(i)*(chartWidth+15), y, chartWidth, chartHeight, false, opts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to embed charts: %w", err)
	}
	return nil
}
