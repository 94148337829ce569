package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/db"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/models"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()

	database, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.RunMigrations(database); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewRepository(database)
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	ds := &models.Dataset{Filename: "plant.csv", FileKey: "uploads/x/plant.csv", FileSize: 42, ContentType: "text/csv"}
	if err := repo.Create(ctx, ds); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if ds.ID == 0 {
		t.Fatal("Create did not assign an id")
	}

	pressure := 5.25
	summary := &models.Summary{TotalRows: 3, AveragePressure: &pressure, TypeDistribution: map[string]int{"Pump": 3}}
	if err := repo.UpdateSummary(ctx, ds.ID, summary); err != nil {
		t.Fatalf("UpdateSummary returned error: %v", err)
	}
	if err := repo.UpdateReport(ctx, ds.ID, "reports/report_1.pdf"); err != nil {
		t.Fatalf("UpdateReport returned error: %v", err)
	}

	got, err := repo.GetByID(ctx, ds.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil for existing dataset")
	}
	if got.Filename != "plant.csv" || got.FileSize != 42 {
		t.Errorf("got %+v, want filename plant.csv size 42", got)
	}
	if got.Summary == nil || got.Summary.TotalRows != 3 || *got.Summary.AveragePressure != 5.25 {
		t.Errorf("summary = %+v, want 3 rows and pressure 5.25", got.Summary)
	}
	if got.Summary.AverageTemperature != nil {
		t.Errorf("AverageTemperature = %v, want nil", *got.Summary.AverageTemperature)
	}
	if got.ReportKey == nil || *got.ReportKey != "reports/report_1.pdf" {
		t.Errorf("ReportKey = %v, want reports/report_1.pdf", got.ReportKey)
	}
}

func TestGetByIDMissing(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.GetByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got != nil {
		t.Errorf("GetByID = %+v, want nil", got)
	}
}

func TestListNewestFirstWithPaging(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"a.csv", "b.csv", "c.csv"} {
		ds := &models.Dataset{Filename: name, UploadedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := repo.Create(ctx, ds); err != nil {
			t.Fatalf("Create(%s) returned error: %v", name, err)
		}
	}

	total, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if total != 3 {
		t.Errorf("Count = %d, want 3", total)
	}

	first, err := repo.List(ctx, 0, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(first) != 2 || first[0].Filename != "c.csv" || first[1].Filename != "b.csv" {
		t.Errorf("first page = %v, want c.csv, b.csv", filenames(first))
	}

	second, err := repo.List(ctx, 2, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(second) != 1 || second[0].Filename != "a.csv" {
		t.Errorf("second page = %v, want a.csv", filenames(second))
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	ds := &models.Dataset{Filename: "gone.csv"}
	if err := repo.Create(ctx, ds); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := repo.Delete(ctx, ds.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	got, err := repo.GetByID(ctx, ds.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got != nil {
		t.Error("dataset still present after Delete")
	}
}

func filenames(list []*models.Dataset) []string {
	out := make([]string, len(list))
	for i, ds := range list {
		out[i] = ds.Filename
	}
	return out
}
