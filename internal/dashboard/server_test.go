package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/charts"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/models"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/utils"
)

func newTestServer(api API) (*Server, *Controller) {
	flash := &FlashAlerter{}
	logger := utils.NewLoggerTo(io.Discard, "error")
	ctrl := NewController(api, flash, 5, logger)
	return NewServer(ctrl, flash, logger, 1<<20), ctrl
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func post(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
	if w.Code != http.StatusSeeOther {
		t.Errorf("POST %s status = %d, want 303", path, w.Code)
	}
	return w
}

func uploadForm(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile returned error: %v", err)
	}
	fw.Write([]byte(content))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestIndexEmptyHistory(t *testing.T) {
	srv, _ := newTestServer(&fakeAPI{})
	h := srv.Handler()

	w := get(t, h, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "No uploads yet") {
		t.Error("empty history message missing")
	}
	if strings.Contains(body, `class="history-item"`) {
		t.Error("history rows rendered for empty list")
	}
	if strings.Contains(body, "/charts/pie.png") {
		t.Error("charts rendered without a summary")
	}
}

func TestUploadShowsSummary(t *testing.T) {
	api := &fakeAPI{
		uploadResp: &models.UploadResponse{Data: sampleSummary(), Report: "http://api/media/reports/report_1.pdf"},
		pages: map[int]*models.DatasetPage{
			1: {Items: []models.HistoryItem{{ID: 1, Filename: "plant.csv", ReportURL: strPtr("http://api/media/reports/report_1.pdf")}}, Total: 1, Page: 1},
		},
	}
	srv, _ := newTestServer(api)
	h := srv.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, uploadForm(t, "plant.csv", "Type\nPump\n"))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("upload status = %d", w.Code)
	}

	body := get(t, h, "/").Body.String()
	for _, want := range []string{
		"<strong>Total Rows:</strong> 3",
		"<strong>Avg Pressure:</strong> 5.63",
		"<strong>Avg Temperature:</strong> 106.67",
		`href="http://api/media/reports/report_1.pdf"`,
		"/charts/pie.png",
		"plant.csv",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "No uploads yet") {
		t.Error("empty history message shown with items")
	}
}

func TestFailedUploadAlertShownOnce(t *testing.T) {
	api := &fakeAPI{uploadErr: errors.New("api returned status 400: No file provided.")}
	srv, ctrl := newTestServer(api)
	h := srv.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, uploadForm(t, "plant.csv", "x"))

	body := get(t, h, "/").Body.String()
	if n := strings.Count(body, `role="alert"`); n != 1 {
		t.Errorf("alerts rendered = %d, want 1", n)
	}
	if ctrl.State().Summary != nil {
		t.Error("summary set after failed upload")
	}

	body = get(t, h, "/").Body.String()
	if strings.Contains(body, `role="alert"`) {
		t.Error("alert rendered again on the next page load")
	}
}

func TestPreviewModal(t *testing.T) {
	api := &fakeAPI{
		preview: &models.Preview{Columns: []string{"A", "B"}, Rows: []map[string]any{{"A": 1, "B": 2}}},
	}
	srv, _ := newTestServer(api)
	h := srv.Handler()

	post(t, h, "/history/42/preview")

	body := get(t, h, "/").Body.String()
	for _, want := range []string{
		"<th>A</th><th>B</th>",
		"<td>1</td><td>2</td>",
		`aria-label="Close preview" autofocus`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}

	post(t, h, "/preview/close")
	body = get(t, h, "/").Body.String()
	if strings.Contains(body, `role="dialog"`) {
		t.Error("modal still rendered after close")
	}
}

func TestLoadRouteUsesNoNetwork(t *testing.T) {
	summary := sampleSummary()
	api := &fakeAPI{
		pages: map[int]*models.DatasetPage{
			1: {Items: []models.HistoryItem{{ID: 3, Filename: "old.csv", Summary: &summary, ReportURL: strPtr("R")}}, Total: 1, Page: 1},
		},
	}
	srv, ctrl := newTestServer(api)
	h := srv.Handler()

	get(t, h, "/history?page=1")
	calls := api.calls()

	post(t, h, "/history/3/load")
	if api.calls() != calls {
		t.Errorf("load made %d API calls", api.calls()-calls)
	}
	if s := ctrl.State(); s.Summary == nil || s.ReportURL != "R" {
		t.Errorf("state after load = %+v", s)
	}
}

func TestHistoryInvalidPage(t *testing.T) {
	api := &fakeAPI{}
	srv, _ := newTestServer(api)

	w := get(t, srv.Handler(), "/history?page=abc")
	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", w.Code)
	}
	if api.lastPage != 1 {
		t.Errorf("requested page = %d, want 1", api.lastPage)
	}
}

func TestChartConfigOrder(t *testing.T) {
	summary := models.Summary{
		TotalRows:        6,
		TypeDistribution: map[string]int{"Valve": 1, "Pump": 3, "Compressor": 2},
	}
	api := &fakeAPI{uploadResp: &models.UploadResponse{Data: summary}}
	srv, ctrl := newTestServer(api)
	if err := ctrl.Upload(context.Background(), "p.csv", strings.NewReader("x")); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	w := get(t, srv.Handler(), "/charts/config.json")
	var cfg map[string]charts.Config
	if err := json.NewDecoder(w.Body).Decode(&cfg); err != nil {
		t.Fatalf("failed to decode config: %v", err)
	}

	pie := cfg["pie"]
	wantLabels := []string{"Pump", "Compressor", "Valve"}
	wantData := []float64{3, 2, 1}
	for i := range wantLabels {
		if pie.Labels[i] != wantLabels[i] || pie.Datasets[0].Data[i] != wantData[i] {
			t.Errorf("pie[%d] = %s:%v, want %s:%v", i, pie.Labels[i], pie.Datasets[0].Data[i], wantLabels[i], wantData[i])
		}
	}

	bar := cfg["bar"]
	if bar.Datasets[0].Data[0] != 0 || bar.Datasets[0].Data[1] != 0 {
		t.Errorf("bar data = %v, want zeros for missing averages", bar.Datasets[0].Data)
	}
}

func TestChartPNG(t *testing.T) {
	srv, _ := newTestServer(&fakeAPI{})
	h := srv.Handler()

	for _, path := range []string{"/charts/pie.png", "/charts/bar.png"} {
		w := get(t, h, path)
		if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
			t.Errorf("GET %s = %d %s", path, w.Code, w.Header().Get("Content-Type"))
		}
	}
}

func TestThemeToggle(t *testing.T) {
	srv, _ := newTestServer(&fakeAPI{})
	h := srv.Handler()

	post(t, h, "/theme")
	if body := get(t, h, "/").Body.String(); !strings.Contains(body, `data-theme="dark"`) {
		t.Error("theme not switched to dark")
	}
}

func TestIndexShowsUploadingWhileUploadInFlight(t *testing.T) {
	api := newBlockingAPI()
	srv, _ := newTestServer(api)
	h := srv.Handler()

	req := uploadForm(t, "plant.csv", "Type\nPump\n")
	done := make(chan int, 1)
	go func() {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		done <- w.Code
	}()
	<-api.started

	body := get(t, h, "/").Body.String()
	if !strings.Contains(body, "Uploading...") || !strings.Contains(body, " disabled") {
		t.Error("index rendered during an upload does not show the busy button")
	}

	close(api.release)
	if code := <-done; code != http.StatusSeeOther {
		t.Errorf("upload status = %d, want 303", code)
	}
	if body := get(t, h, "/").Body.String(); strings.Contains(body, "Uploading...") {
		t.Error("busy button still shown after upload finished")
	}
}
