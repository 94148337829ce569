// Package charts maps dataset summaries to pie and bar chart configurations
// and renders them as PNG images.
package charts

import "github.com/BerylCAtieno/chemical-equipment-visualizer/internal/models"

// Palettes used by the dashboard. Pie colours repeat when there are more
// categories than entries.
var (
	PiePalette = []string{"#4dc9f6", "#f67019", "#f53794", "#537bc4", "#acc236"}
	BarPalette = []string{"#36a2eb", "#ff6384"}
)

const (
	LabelAvgPressure    = "Avg Pressure"
	LabelAvgTemperature = "Avg Temperature"
)

// Dataset follows the shape chart libraries expect for one data series.
type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor"`
}

type Config struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Pie maps the type distribution to a pie chart. Labels and data share the
// order given by Summary.TypeLabels.
func Pie(s *models.Summary) Config {
	labels := s.TypeLabels()
	data := make([]float64, len(labels))
	colors := make([]string, len(labels))
	for i, l := range labels {
		data[i] = float64(s.TypeDistribution[l])
		colors[i] = PiePalette[i%len(PiePalette)]
	}

	return Config{
		Labels:   labels,
		Datasets: []Dataset{{Data: data, BackgroundColor: colors}},
	}
}

// Bar maps the two averages to a two-bar chart; missing averages are zero.
func Bar(s *models.Summary) Config {
	var pressure, temperature float64
	if s != nil {
		if s.AveragePressure != nil {
			pressure = *s.AveragePressure
		}
		if s.AverageTemperature != nil {
			temperature = *s.AverageTemperature
		}
	}

	return Config{
		Labels: []string{LabelAvgPressure, LabelAvgTemperature},
		Datasets: []Dataset{{
			Label:           "Averages",
			Data:            []float64{pressure, temperature},
			BackgroundColor: append([]string(nil), BarPalette...),
		}},
	}
}
