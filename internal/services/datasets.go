package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/analyzer"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/charts"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/config"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/extractor"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/models"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/report"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/repository"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/storage"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/utils"
)

// ReportsPath is the URL prefix reports are served under.
const ReportsPath = "/media/reports/"

const (
	ChartPie = "pie"
	ChartBar = "bar"
)

type DatasetService interface {
	Upload(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error)
	List(ctx context.Context, page, pageSize int) (*models.DatasetPage, error)
	Get(ctx context.Context, id int64) (*models.Dataset, error)
	Preview(ctx context.Context, id int64) (*models.Preview, error)
	Report(ctx context.Context, name string) ([]byte, error)
	Chart(ctx context.Context, id int64, kind string) ([]byte, error)
	Export(ctx context.Context) ([]byte, error)
	Delete(ctx context.Context, id int64) error
}

type datasetService struct {
	repo    repository.Repository
	storage storage.Storage
	cfg     *config.Config
	logger  *utils.Logger
	now     func() time.Time
}

func NewService(repo repository.Repository, store storage.Storage, cfg *config.Config, logger *utils.Logger) DatasetService {
	return &datasetService{
		repo:    repo,
		storage: store,
		cfg:     cfg,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *datasetService) Upload(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
	log := s.logger.With("filename", req.Filename)

	format := extractor.DetectFormat(req.Filename, req.ContentType)
	if format == extractor.FormatUnknown {
		log.Warn("Unsupported file type", "content_type", req.ContentType)
		return nil, utils.NewBadRequestError("Only CSV and XLSX files are allowed")
	}

	table, err := extractor.Extract(req.Filename, req.ContentType, req.File, 0)
	if err != nil {
		log.Warn("Failed to parse upload", "error", err)
		return nil, utils.NewBadRequestError(fmt.Sprintf("Could not read file: %v", err))
	}

	summary := analyzer.Summarize(table)

	fileKey := storage.UploadKey(utils.GenerateID(), storedName(req.Filename, format))
	if err := s.storage.Upload(ctx, fileKey, req.File, format.ContentType()); err != nil {
		log.Error("Failed to store upload", "error", err, "key", fileKey)
		return nil, utils.NewInternalError("Failed to store file")
	}

	ds := &models.Dataset{
		Filename:    req.Filename,
		FileKey:     fileKey,
		FileSize:    int64(len(req.File)),
		ContentType: format.ContentType(),
		UploadedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, ds); err != nil {
		log.Error("Failed to save dataset", "error", err)
		_ = s.storage.Delete(ctx, fileKey)
		return nil, utils.NewInternalError("Failed to save dataset")
	}

	log = log.With("dataset_id", ds.ID)

	if err := s.repo.UpdateSummary(ctx, ds.ID, &summary); err != nil {
		log.Error("Failed to save summary", "error", err)
		s.rollback(ctx, ds, "")
		return nil, utils.NewInternalError("Failed to save summary")
	}

	reportName, err := s.writeReport(ctx, ds, summary)
	if err != nil {
		log.Error("Failed to generate report", "error", err)
		s.rollback(ctx, ds, reportName)
		return nil, utils.NewInternalError("Failed to generate report")
	}

	log.Info("Dataset uploaded",
		"rows", summary.TotalRows,
		"types", len(summary.TypeDistribution))

	return &models.UploadResponse{
		Message:   "CSV uploaded successfully. PDF report generated.",
		Data:      summary,
		Report:    ReportsPath + reportName,
		DatasetID: ds.ID,
	}, nil
}

// storedName reduces a client-supplied filename to a single path segment.
// Names that reduce to nothing usable become "upload" plus the format's
// extension.
func storedName(filename string, format extractor.Format) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	switch name {
	case "", ".", "..", "/":
		return "upload" + format.Extension()
	}
	return name
}

// writeReport renders and stores the PDF, then records its key. The returned
// name is set once storage has been attempted so rollback can remove it.
func (s *datasetService) writeReport(ctx context.Context, ds *models.Dataset, summary models.Summary) (string, error) {
	pdf, err := report.Generate(report.Input{
		DatasetID:   ds.ID,
		Filename:    ds.Filename,
		Summary:     summary,
		GeneratedAt: s.now(),
	})
	if err != nil {
		return "", err
	}

	name := storage.ReportName(ds.ID)
	if err := s.storage.Upload(ctx, storage.ReportKey(name), pdf, "application/pdf"); err != nil {
		return name, err
	}

	if err := s.repo.UpdateReport(ctx, ds.ID, storage.ReportKey(name)); err != nil {
		return name, err
	}

	return name, nil
}

func (s *datasetService) rollback(ctx context.Context, ds *models.Dataset, reportName string) {
	if reportName != "" {
		_ = s.storage.Delete(ctx, storage.ReportKey(reportName))
	}
	_ = s.storage.Delete(ctx, ds.FileKey)
	if err := s.repo.Delete(ctx, ds.ID); err != nil {
		s.logger.Error("Failed to roll back dataset", "error", err, "dataset_id", ds.ID)
	}
}

// List returns one page of history, newest first. Out-of-range page values
// are clamped rather than rejected.
func (s *datasetService) List(ctx context.Context, page, pageSize int) (*models.DatasetPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.cfg.DefaultPageSize
	}
	if pageSize > s.cfg.MaxPageSize {
		pageSize = s.cfg.MaxPageSize
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("Failed to count datasets", "error", err)
		return nil, utils.NewInternalError("Failed to list datasets")
	}

	list, err := s.repo.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("Failed to list datasets", "error", err, "page", page)
		return nil, utils.NewInternalError("Failed to list datasets")
	}

	items := make([]models.HistoryItem, 0, len(list))
	for _, ds := range list {
		items = append(items, toHistoryItem(ds))
	}

	return &models.DatasetPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func toHistoryItem(ds *models.Dataset) models.HistoryItem {
	item := models.HistoryItem{
		ID:         ds.ID,
		Filename:   ds.Filename,
		UploadedAt: ds.UploadedAt,
		Summary:    ds.Summary,
	}
	if ds.ReportKey != nil {
		url := ReportsPath + path.Base(*ds.ReportKey)
		item.ReportURL = &url
	}
	return item
}

func (s *datasetService) Get(ctx context.Context, id int64) (*models.Dataset, error) {
	ds, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get dataset", "error", err, "dataset_id", id)
		return nil, utils.NewInternalError("Failed to retrieve dataset")
	}
	if ds == nil {
		return nil, utils.NewNotFoundError("Dataset not found.")
	}

	return ds, nil
}

// Preview returns the first PreviewRows rows of the stored file.
func (s *datasetService) Preview(ctx context.Context, id int64) (*models.Preview, error) {
	ds, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if ds.FileKey == "" {
		return nil, utils.NewBadRequestError("No file available for this dataset.")
	}

	exists, err := s.storage.Exists(ctx, ds.FileKey)
	if err != nil {
		s.logger.Error("Failed to check dataset file", "error", err, "dataset_id", id)
		return nil, utils.NewInternalError("Failed to read dataset file")
	}
	if !exists {
		return nil, utils.NewBadRequestError("No file available for this dataset.")
	}

	data, err := s.storage.Download(ctx, ds.FileKey)
	if err != nil {
		s.logger.Error("Failed to download dataset file", "error", err, "dataset_id", id)
		return nil, utils.NewInternalError("Failed to read dataset file")
	}

	table, err := extractor.Extract(ds.Filename, ds.ContentType, data, s.cfg.PreviewRows)
	if err != nil {
		s.logger.Error("Failed to parse dataset file", "error", err, "dataset_id", id)
		return nil, utils.NewInternalError(fmt.Sprintf("Could not read CSV: %v", err))
	}

	preview := analyzer.Preview(table, s.cfg.PreviewRows)
	return &preview, nil
}

func (s *datasetService) Report(ctx context.Context, name string) ([]byte, error) {
	if name == "" || name != path.Base(name) || !strings.HasSuffix(name, ".pdf") {
		return nil, utils.NewNotFoundError("Report not found.")
	}

	data, err := s.storage.Download(ctx, storage.ReportKey(name))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, utils.NewNotFoundError("Report not found.")
	}
	if err != nil {
		s.logger.Error("Failed to download report", "error", err, "name", name)
		return nil, utils.NewInternalError("Failed to read report")
	}

	return data, nil
}

func (s *datasetService) Chart(ctx context.Context, id int64, kind string) ([]byte, error) {
	ds, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var png []byte
	switch kind {
	case ChartPie:
		png, err = charts.RenderPiePNG(ds.Summary, charts.DefaultWidth, charts.DefaultHeight)
	case ChartBar:
		png, err = charts.RenderBarPNG(ds.Summary, charts.DefaultWidth, charts.DefaultHeight)
	default:
		return nil, utils.NewNotFoundError("Unknown chart type")
	}
	if err != nil {
		s.logger.Error("Failed to render chart", "error", err, "dataset_id", id, "kind", kind)
		return nil, utils.NewInternalError("Failed to render chart")
	}

	return png, nil
}

func (s *datasetService) Delete(ctx context.Context, id int64) error {
	ds, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete dataset", "error", err, "dataset_id", id)
		return utils.NewInternalError("Failed to delete dataset")
	}

	if ds.FileKey != "" {
		if err := s.storage.Delete(ctx, ds.FileKey); err != nil {
			s.logger.Warn("Failed to delete dataset file", "error", err, "dataset_id", id)
		}
	}
	if ds.ReportKey != nil {
		if err := s.storage.Delete(ctx, *ds.ReportKey); err != nil {
			s.logger.Warn("Failed to delete report", "error", err, "dataset_id", id)
		}
	}

	s.logger.Info("Dataset deleted", "dataset_id", id)
	return nil
}
