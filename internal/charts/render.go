package charts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/models"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 480
	DefaultHeight = 360
)

const noTypeData = "No type data"

func fill(hex string) chart.Style {
	return chart.Style{
		FillColor:   drawing.ColorFromHex(strings.TrimPrefix(hex, "#")),
		StrokeColor: drawing.ColorWhite,
		StrokeWidth: 1,
	}
}

// RenderPiePNG draws the type distribution. An empty distribution renders a
// single grey slice labelled "No type data".
func RenderPiePNG(s *models.Summary, width, height int) ([]byte, error) {
	cfg := Pie(s)

	var values []chart.Value
	for i, label := range cfg.Labels {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%g)", label, cfg.Datasets[0].Data[i]),
			Value: cfg.Datasets[0].Data[i],
			Style: fill(cfg.Datasets[0].BackgroundColor[i]),
		})
	}
	if len(values) == 0 {
		values = []chart.Value{{Label: noTypeData, Value: 1, Style: fill("#e5e7eb")}}
	}

	pie := chart.PieChart{
		Title:  "Type Distribution",
		Width:  width,
		Height: height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderBarPNG draws the pressure and temperature averages.
func RenderBarPNG(s *models.Summary, width, height int) ([]byte, error) {
	cfg := Bar(s)

	maxValue := 0.0
	bars := make([]chart.Value, len(cfg.Labels))
	for i, label := range cfg.Labels {
		v := cfg.Datasets[0].Data[i]
		if v > maxValue {
			maxValue = v
		}
		bars[i] = chart.Value{Label: label, Value: v, Style: fill(cfg.Datasets[0].BackgroundColor[i])}
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	bar := chart.BarChart{
		Title:    "Averages",
		Width:    width,
		Height:   height,
		BarWidth: width / 4,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue * 1.1},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bar.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}
