package report

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/models"
	"github.com/go-pdf/fpdf"
)

func float(v float64) *float64 { return &v }

func sampleInput() Input {
	return Input{
		DatasetID: 3,
		Filename:  "plant.csv",
		Summary: models.Summary{
			TotalRows:          5,
			AveragePressure:    float(4.7),
			AverageTemperature: float(108),
			TypeDistribution:   map[string]int{"Pump": 3, "Valve": 2},
		},
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestLines(t *testing.T) {
	lines := Lines(sampleInput())

	want := []string{
		"dataset: plant.csv",
		"total_rows: 5",
		"average_pressure: 4.7",
		"average_temperature: 108",
		"type_distribution: Pump=3, Valve=2",
		"generated_at: 2024-05-01T12:00:00Z",
	}
	if len(lines) != len(want) {
		t.Fatalf("Lines() = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLinesMissingValues(t *testing.T) {
	lines := Lines(Input{Filename: "empty.csv"})

	joined := strings.Join(lines, "\n")
	for _, want := range []string{"average_pressure: n/a", "type_distribution: none"} {
		if !strings.Contains(joined, want) {
			t.Errorf("lines %q missing %q", joined, want)
		}
	}
	if strings.Contains(joined, "generated_at") {
		t.Error("generated_at printed for zero time")
	}
}

func TestGenerateAndReadLines(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"full summary", sampleInput()},
		{"missing values", Input{DatasetID: 4, Filename: "empty.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Generate(tt.in)
			if err != nil {
				t.Fatalf("Generate returned error: %v", err)
			}
			if !bytes.HasPrefix(data, []byte("%PDF-")) {
				t.Fatalf("output does not start with a PDF header: %q", data[:8])
			}

			got, err := ReadLines(data)
			if err != nil {
				t.Fatalf("ReadLines returned error: %v", err)
			}
			want := Lines(tt.in)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("ReadLines = %q, want %q", got, want)
			}
		})
	}
}

func TestExtractTextStartsWithTitle(t *testing.T) {
	data, err := Generate(sampleInput())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	text, err := ExtractText(data)
	if err != nil {
		t.Fatalf("ExtractText returned error: %v", err)
	}
	if !strings.HasPrefix(text, Title) {
		t.Errorf("text does not start with %q:\n%s", Title, text)
	}
}

func TestExtractTextRejectsOtherPDFs(t *testing.T) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Text(50, 50, "Quarterly invoice")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("Output returned error: %v", err)
	}

	if _, err := ExtractText(buf.Bytes()); !errors.Is(err, ErrNotReport) {
		t.Errorf("err = %v, want ErrNotReport", err)
	}
}

func TestExtractTextRejectsGarbage(t *testing.T) {
	if _, err := ExtractText([]byte("not a pdf")); err == nil {
		t.Error("expected error for non-PDF input")
	}
}
