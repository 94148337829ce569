package dashboard

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/charts"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/middleware"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/utils"
	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"average": func(v *float64) string {
		if v == nil {
			return "-"
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	},
	"cell": func(v any) string {
		if v == nil {
			return ""
		}
		return fmt.Sprint(v)
	},
	"formatTime": func(t time.Time) string {
		return t.Local().Format("2006-01-02 15:04:05")
	},
}

var indexTemplate = template.Must(template.New("index.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/index.html"))

type Server struct {
	ctrl          *Controller
	flash         *FlashAlerter
	logger        *utils.Logger
	maxUploadSize int64
}

// NewServer serves ctrl. flash must be the Alerter ctrl was built with so
// alerts reach the next rendered page.
func NewServer(ctrl *Controller, flash *FlashAlerter, logger *utils.Logger, maxUploadSize int64) *Server {
	return &Server{
		ctrl:          ctrl,
		flash:         flash,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.Recovery(s.logger))

	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.HandleFunc("/upload", s.upload).Methods(http.MethodPost)
	r.HandleFunc("/history", s.history).Methods(http.MethodGet)
	r.HandleFunc("/history/{id:[0-9]+}/load", s.load).Methods(http.MethodPost)
	r.HandleFunc("/history/{id:[0-9]+}/preview", s.preview).Methods(http.MethodPost)
	r.HandleFunc("/preview/close", s.closePreview).Methods(http.MethodPost)
	r.HandleFunc("/theme", s.theme).Methods(http.MethodPost)
	r.HandleFunc("/charts/pie.png", s.pieChart).Methods(http.MethodGet)
	r.HandleFunc("/charts/bar.png", s.barChart).Methods(http.MethodGet)
	r.HandleFunc("/charts/config.json", s.chartConfig).Methods(http.MethodGet)

	return r
}

type pageData struct {
	State
	Alerts []string
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	data := pageData{State: s.ctrl.State(), Alerts: s.flash.Drain()}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("Failed to render dashboard", "error", err)
	}
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(s.maxUploadSize); err != nil {
		s.flash.Alert("Upload failed: could not read the selected file")
		s.redirect(w, r)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		// Nothing chosen.
		s.redirect(w, r)
		return
	}
	defer file.Close()

	// The controller alerts and logs on failure.
	_ = s.ctrl.Upload(r.Context(), header.Filename, file)
	s.redirect(w, r)
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}
	s.ctrl.FetchHistory(r.Context(), page)
	s.redirect(w, r)
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if !s.ctrl.Load(id) {
		s.logger.Warn("Load requested for dataset not on current page", "dataset_id", id)
	}
	s.redirect(w, r)
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	_ = s.ctrl.OpenPreview(r.Context(), id)
	s.redirect(w, r)
}

func (s *Server) closePreview(w http.ResponseWriter, r *http.Request) {
	s.ctrl.ClosePreview()
	s.redirect(w, r)
}

func (s *Server) theme(w http.ResponseWriter, r *http.Request) {
	s.ctrl.ToggleTheme()
	s.redirect(w, r)
}

func (s *Server) pieChart(w http.ResponseWriter, r *http.Request) {
	png, err := charts.RenderPiePNG(s.ctrl.State().Summary, charts.DefaultWidth, charts.DefaultHeight)
	s.writePNG(w, png, err)
}

func (s *Server) barChart(w http.ResponseWriter, r *http.Request) {
	png, err := charts.RenderBarPNG(s.ctrl.State().Summary, charts.DefaultWidth, charts.DefaultHeight)
	s.writePNG(w, png, err)
}

func (s *Server) writePNG(w http.ResponseWriter, png []byte, err error) {
	if err != nil {
		s.logger.Error("Failed to render chart", "error", err)
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// chartConfig exposes the chart data in the shape chart libraries consume.
func (s *Server) chartConfig(w http.ResponseWriter, r *http.Request) {
	summary := s.ctrl.State().Summary

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]charts.Config{
		"pie": charts.Pie(summary),
		"bar": charts.Bar(summary),
	}); err != nil {
		s.logger.Error("Failed to encode chart config", "error", err)
	}
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
