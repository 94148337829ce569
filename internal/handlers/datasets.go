package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/models"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/services"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/utils"
	"github.com/gorilla/mux"
)

type DatasetHandler struct {
	service       services.DatasetService
	logger        *utils.Logger
	maxFileSize   int64
	publicBaseURL string
}

func NewDatasetHandler(service services.DatasetService, logger *utils.Logger, maxFileSize int64, publicBaseURL string) *DatasetHandler {
	return &DatasetHandler{
		service:       service,
		logger:        logger,
		maxFileSize:   maxFileSize,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// UploadDataset accepts an equipment file and returns its summary.
// @Summary Upload an equipment CSV
// @Description Parses the file, stores it, computes summary statistics and generates a PDF report
// @Tags datasets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /upload/ [post]
func (h *DatasetHandler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	// Multipart framing adds a little on top of the file itself.
	limit := h.maxFileSize + 1<<20
	if r.ContentLength > limit {
		h.respondError(w, utils.NewBadRequestError("File size exceeds limit"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, utils.NewBadRequestError("File size exceeds limit"))
			return
		}
		h.respondError(w, utils.NewBadRequestError("Invalid form data"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, utils.NewBadRequestError("No file provided."))
		return
	}
	defer file.Close()

	h.logger.Info("File upload attempt",
		"filename", header.Filename,
		"size", header.Size,
		"reported_content_type", header.Header.Get("Content-Type"))

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		h.respondError(w, utils.NewInternalError("Failed to read file"))
		return
	}

	if int64(len(data)) > h.maxFileSize {
		h.respondError(w, utils.NewBadRequestError("File size exceeds limit"))
		return
	}

	if len(data) == 0 {
		h.respondError(w, utils.NewBadRequestError("Uploaded file is empty"))
		return
	}

	resp, err := h.service.Upload(r.Context(), &models.UploadRequest{
		File:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	resp.Report = h.absoluteURL(r, resp.Report)
	h.respondJSON(w, http.StatusOK, resp)
}

// ListDatasets returns a page of upload history.
// @Summary List uploaded datasets
// @Description Newest first. Invalid page values fall back to page 1 with the default page size.
// @Tags datasets
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(5)
// @Success 200 {object} models.DatasetPage
// @Failure 500 {object} map[string]string
// @Router /datasets/ [get]
func (h *DatasetHandler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)

	result, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		h.respondError(w, err)
		return
	}

	for i := range result.Items {
		if u := result.Items[i].ReportURL; u != nil {
			abs := h.absoluteURL(r, *u)
			result.Items[i].ReportURL = &abs
		}
	}

	h.respondJSON(w, http.StatusOK, result)
}

// parsePaging reads page and page_size. If either is not an integer both
// fall back to defaults; zero page size means "service default".
func parsePaging(r *http.Request) (int, int) {
	q := r.URL.Query()
	page, pageSize := 1, 0

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 1, 0
		}
		page = n
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 1, 0
		}
		pageSize = n
	}

	return page, pageSize
}

// GetDataset returns one dataset's metadata and summary.
// @Summary Get a dataset
// @Tags datasets
// @Produce json
// @Param id path int true "Dataset ID"
// @Success 200 {object} models.HistoryItem
// @Failure 404 {object} map[string]string
// @Router /datasets/{id}/ [get]
func (h *DatasetHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	id, ok := h.datasetID(w, r)
	if !ok {
		return
	}

	ds, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	item := models.HistoryItem{
		ID:         ds.ID,
		Filename:   ds.Filename,
		UploadedAt: ds.UploadedAt,
		Summary:    ds.Summary,
	}
	if ds.ReportKey != nil {
		u := h.absoluteURL(r, services.ReportsPath+strings.TrimPrefix(*ds.ReportKey, "reports/"))
		item.ReportURL = &u
	}

	h.respondJSON(w, http.StatusOK, item)
}

// DeleteDataset removes a dataset, its file and its report.
// @Summary Delete a dataset
// @Tags datasets
// @Param id path int true "Dataset ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /datasets/{id}/ [delete]
func (h *DatasetHandler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	id, ok := h.datasetID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PreviewDataset returns the first rows of the stored file.
// @Summary Preview a dataset
// @Tags datasets
// @Produce json
// @Param id path int true "Dataset ID"
// @Success 200 {object} models.Preview
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /datasets/{id}/preview/ [get]
func (h *DatasetHandler) PreviewDataset(w http.ResponseWriter, r *http.Request) {
	id, ok := h.datasetID(w, r)
	if !ok {
		return
	}

	preview, err := h.service.Preview(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, preview)
}

// DatasetChart renders a dataset's pie or bar chart.
// @Summary Render a dataset chart
// @Tags datasets
// @Produce png
// @Param id path int true "Dataset ID"
// @Param kind path string true "pie or bar"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /datasets/{id}/charts/{kind}.png [get]
func (h *DatasetHandler) DatasetChart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.datasetID(w, r)
	if !ok {
		return
	}

	png, err := h.service.Chart(r.Context(), id, mux.Vars(r)["kind"])
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}

// ExportDatasets downloads the upload history as a workbook.
// @Summary Export history as XLSX
// @Tags datasets
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /datasets/export/ [get]
func (h *DatasetHandler) ExportDatasets(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Export(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="datasets.xlsx"`)
	w.Write(data)
}

// Report serves a generated PDF report.
// @Summary Download a PDF report
// @Tags reports
// @Produce application/pdf
// @Param name path string true "Report file name"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /media/reports/{name} [get]
func (h *DatasetHandler) Report(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	data, err := h.service.Report(r.Context(), name)
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+name+`"`)
	w.Write(data)
}

func (h *DatasetHandler) datasetID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, utils.NewBadRequestError("Dataset ID must be a positive integer"))
		return 0, false
	}
	return id, true
}

// absoluteURL resolves a server-relative path against PUBLIC_BASE_URL or,
// when unset, the scheme and host the request arrived on.
func (h *DatasetHandler) absoluteURL(r *http.Request, path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if h.publicBaseURL != "" {
		return h.publicBaseURL + path
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + r.Host + path
}

func (h *DatasetHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *DatasetHandler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	if appErr, ok := utils.AsAppError(err); ok {
		status = appErr.StatusCode
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request error", "status", status, "error", err)
	} else {
		h.logger.Warn("Request rejected", "status", status, "error", message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
