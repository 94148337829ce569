package router

import (
	"net/http"

	_ "github.com/BerylCAtieno/chemical-equipment-visualizer/docs"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/handlers"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/middleware"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/services"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/utils"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	MaxFileSize   int64
	PublicBaseURL string
}

func NewRouter(datasetService services.DatasetService, logger *utils.Logger, opts Options) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	h := handlers.NewDatasetHandler(datasetService, logger, opts.MaxFileSize, opts.PublicBaseURL)

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	// Dataset endpoints
	r.HandleFunc("/upload/", h.UploadDataset).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/datasets/", h.ListDatasets).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/datasets/export/", h.ExportDatasets).Methods(http.MethodGet)
	r.HandleFunc("/datasets/{id:[0-9]+}/", h.GetDataset).Methods(http.MethodGet)
	r.HandleFunc("/datasets/{id:[0-9]+}/", h.DeleteDataset).Methods(http.MethodDelete, http.MethodOptions)
	r.HandleFunc("/datasets/{id:[0-9]+}/preview/", h.PreviewDataset).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/datasets/{id:[0-9]+}/charts/{kind:[a-z]+}.png", h.DatasetChart).Methods(http.MethodGet)

	// Generated reports
	r.HandleFunc("/media/reports/{name}", h.Report).Methods(http.MethodGet)

	// API docs
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return r
}
