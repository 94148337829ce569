package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/models"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, ds *models.Dataset) error
	GetByID(ctx context.Context, id int64) (*models.Dataset, error)
	UpdateSummary(ctx context.Context, id int64, summary *models.Summary) error
	UpdateReport(ctx context.Context, id int64, reportKey string) error
	List(ctx context.Context, offset, limit int) ([]*models.Dataset, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// datasetRow mirrors the datasets table; summary is stored as JSON text.
type datasetRow struct {
	ID          int64          `db:"id"`
	Filename    string         `db:"filename"`
	FileKey     string         `db:"file_key"`
	FileSize    int64          `db:"file_size"`
	ContentType string         `db:"content_type"`
	UploadedAt  time.Time      `db:"uploaded_at"`
	Summary     sql.NullString `db:"summary"`
	ReportKey   sql.NullString `db:"report_key"`
}

func (r datasetRow) toModel() (*models.Dataset, error) {
	ds := &models.Dataset{
		ID:          r.ID,
		Filename:    r.Filename,
		FileKey:     r.FileKey,
		FileSize:    r.FileSize,
		ContentType: r.ContentType,
		UploadedAt:  r.UploadedAt,
	}

	if r.Summary.Valid && r.Summary.String != "" {
		var s models.Summary
		if err := json.Unmarshal([]byte(r.Summary.String), &s); err != nil {
			return nil, fmt.Errorf("failed to decode summary of dataset %d: %w", r.ID, err)
		}
		ds.Summary = &s
	}
	if r.ReportKey.Valid && r.ReportKey.String != "" {
		key := r.ReportKey.String
		ds.ReportKey = &key
	}

	return ds, nil
}

const selectColumns = `id, filename, file_key, file_size, content_type, uploaded_at, summary, report_key`

func (r *repository) Create(ctx context.Context, ds *models.Dataset) error {
	query := `
		INSERT INTO datasets (filename, file_key, file_size, content_type, uploaded_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if ds.UploadedAt.IsZero() {
		ds.UploadedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, query,
		ds.Filename,
		ds.FileKey,
		ds.FileSize,
		ds.ContentType,
		ds.UploadedAt,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ds.ID = id

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*models.Dataset, error) {
	var row datasetRow

	query := `SELECT ` + selectColumns + ` FROM datasets WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return row.toModel()
}

func (r *repository) UpdateSummary(ctx context.Context, id int64, summary *models.Summary) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `UPDATE datasets SET summary = $2 WHERE id = $1`, id, string(summaryJSON))
	return err
}

func (r *repository) UpdateReport(ctx context.Context, id int64, reportKey string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE datasets SET report_key = $2 WHERE id = $1`, id, reportKey)
	return err
}

// List returns datasets newest first.
func (r *repository) List(ctx context.Context, offset, limit int) ([]*models.Dataset, error) {
	var rows []datasetRow

	query := `
		SELECT ` + selectColumns + `
		FROM datasets
		ORDER BY uploaded_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, err
	}

	out := make([]*models.Dataset, 0, len(rows))
	for _, row := range rows {
		ds, err := row.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
	}

	return out, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM datasets`); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	return err
}
