package extractor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

const equipmentCSV = `Equipment Name,Type,Flowrate,Pressure,Temperature
Pump-1,Pump,120,5.2,110
Valve-1,Valve,60,4.1,95
Pump-2,Pump,130,5.6,115
`

func TestExtractCSV(t *testing.T) {
	table, err := ExtractCSV([]byte(equipmentCSV), 0)
	if err != nil {
		t.Fatalf("ExtractCSV returned error: %v", err)
	}

	wantCols := []string{"Equipment Name", "Type", "Flowrate", "Pressure", "Temperature"}
	if !reflect.DeepEqual(table.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", table.Columns, wantCols)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(table.Rows))
	}
	if table.Rows[1][1] != "Valve" {
		t.Errorf("Rows[1][1] = %q, want Valve", table.Rows[1][1])
	}
}

func TestExtractCSVVariants(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		maxRows  int
		wantCols []string
		wantRows [][]string
	}{
		{
			name:     "utf-8 bom",
			data:     append([]byte{0xEF, 0xBB, 0xBF}, []byte("Type,Pressure\nPump,1\n")...),
			wantCols: []string{"Type", "Pressure"},
			wantRows: [][]string{{"Pump", "1"}},
		},
		{
			name:     "semicolon delimited",
			data:     []byte("Type;Pressure\nPump;1,5\n"),
			wantCols: []string{"Type", "Pressure"},
			wantRows: [][]string{{"Pump", "1,5"}},
		},
		{
			name:     "tab delimited",
			data:     []byte("Type\tPressure\nValve\t2\n"),
			wantCols: []string{"Type", "Pressure"},
			wantRows: [][]string{{"Valve", "2"}},
		},
		{
			name:     "ragged rows and blank header",
			data:     []byte("Type,,Pressure\nPump\nValve,x,3,extra\n"),
			wantCols: []string{"Type", "Column_2", "Pressure"},
			wantRows: [][]string{{"Pump", "", ""}, {"Valve", "x", "3"}},
		},
		{
			name:     "blank lines skipped",
			data:     []byte("Type\nPump\n,\n\nValve\n"),
			wantCols: []string{"Type"},
			wantRows: [][]string{{"Pump"}, {"Valve"}},
		},
		{
			name:     "row limit",
			data:     []byte("Type\nA\nB\nC\n"),
			maxRows:  2,
			wantCols: []string{"Type"},
			wantRows: [][]string{{"A"}, {"B"}},
		},
		{
			name:     "windows-1252",
			data:     []byte("Type,Temperature\nCaf\xe9,20\n"),
			wantCols: []string{"Type", "Temperature"},
			wantRows: [][]string{{"Café", "20"}},
		},
		{
			name:     "duplicate headers",
			data:     []byte("A,A,B,A, A.1\n1,2,3,4,5\n"),
			wantCols: []string{"A", "A.1", "B", "A.2", "A.1.1"},
			wantRows: [][]string{{"1", "2", "3", "4", "5"}},
		},
		{
			name:     "duplicate blank-derived header",
			data:     []byte("Column_2,\nx,y\n"),
			wantCols: []string{"Column_2", "Column_2.1"},
			wantRows: [][]string{{"x", "y"}},
		},
		{
			name:     "header only",
			data:     []byte("Type,Pressure\n"),
			wantCols: []string{"Type", "Pressure"},
			wantRows: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ExtractCSV(tt.data, tt.maxRows)
			if err != nil {
				t.Fatalf("ExtractCSV returned error: %v", err)
			}
			if !reflect.DeepEqual(table.Columns, tt.wantCols) {
				t.Errorf("Columns = %v, want %v", table.Columns, tt.wantCols)
			}
			if !reflect.DeepEqual(table.Rows, tt.wantRows) {
				t.Errorf("Rows = %v, want %v", table.Rows, tt.wantRows)
			}
		})
	}
}

func TestExtractCSVRejectsBadInput(t *testing.T) {
	if _, err := ExtractCSV(nil, 0); err == nil {
		t.Error("expected error for empty file")
	}
	binary := make([]byte, 64)
	if _, err := ExtractCSV(binary, 0); err == nil {
		t.Error("expected error for binary file")
	}
	if _, err := ExtractCSV([]byte("Type\n\"unterminated\n"), 0); err == nil {
		t.Error("expected error for malformed quoting")
	}
}

func TestExtractXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"Equipment Name", "Type", "Pressure"},
		{"Pump-1", "Pump", 5.5},
		{"Valve-1", "Valve", 4},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow returned error: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer returned error: %v", err)
	}

	table, err := Extract("plant.xlsx", "", buf.Bytes(), 0)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if !reflect.DeepEqual(table.Columns, []string{"Equipment Name", "Type", "Pressure"}) {
		t.Errorf("Columns = %v", table.Columns)
	}
	want := [][]string{{"Pump-1", "Pump", "5.5"}, {"Valve-1", "Valve", "4"}}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Rows = %v, want %v", table.Rows, want)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename, contentType string
		want                  Format
	}{
		{"a.csv", "", FormatCSV},
		{"A.CSV", "application/octet-stream", FormatCSV},
		{"a.tsv", "", FormatCSV},
		{"a.xlsx", "", FormatXLSX},
		{"upload", "text/csv; charset=utf-8", FormatCSV},
		{"upload", ContentTypeXLSX, FormatXLSX},
		{"a.pdf", "application/pdf", FormatUnknown},
	}

	for _, tt := range tests {
		if got := DetectFormat(tt.filename, tt.contentType); got != tt.want {
			t.Errorf("DetectFormat(%q, %q) = %v, want %v", tt.filename, tt.contentType, got, tt.want)
		}
	}
}

func TestExtractUnsupported(t *testing.T) {
	_, err := Extract("report.pdf", "application/pdf", []byte("%PDF-1.4"), 0)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}
