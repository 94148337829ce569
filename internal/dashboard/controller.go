// Package dashboard is the server-rendered front end over the dataset API:
// upload control, summary and charts, paginated history and a preview modal.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/models"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/utils"
)

// API is the subset of the dataset API the dashboard calls.
// *client.Client satisfies it.
type API interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*models.UploadResponse, error)
	ListDatasets(ctx context.Context, page, pageSize int) (*models.DatasetPage, error)
	Preview(ctx context.Context, id int64) (*models.Preview, error)
}

// Alerter surfaces a blocking, user-visible message.
type Alerter interface {
	Alert(message string)
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// State is everything the dashboard renders.
type State struct {
	Summary     *models.Summary
	ReportURL   string
	Loading     bool
	History     []models.HistoryItem
	Page        int
	PageSize    int
	Total       int
	Preview     *models.Preview
	PreviewOpen bool
	Theme       string
}

func (s State) HasPrev() bool { return s.Page > 1 }

func (s State) HasNext() bool { return s.Page*s.PageSize < s.Total }

// Controller owns the dashboard state. Requests are not ordered: when two
// calls overlap, whichever response arrives last is what the state shows.
type Controller struct {
	api     API
	alerter Alerter
	logger  *utils.Logger

	mu    sync.Mutex
	state State
}

func NewController(api API, alerter Alerter, pageSize int, logger *utils.Logger) *Controller {
	if pageSize < 1 {
		pageSize = 5
	}
	return &Controller{
		api:     api,
		alerter: alerter,
		logger:  logger,
		state: State{
			History:  []models.HistoryItem{},
			Page:     1,
			PageSize: pageSize,
			Theme:    ThemeLight,
		},
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.History = append([]models.HistoryItem(nil), c.state.History...)
	return s
}

// Upload sends one file. On success the summary and report link are
// replaced and the first history page is refetched. On failure the error is
// logged, one alert is raised and the previous summary stays in place.
func (c *Controller) Upload(ctx context.Context, filename string, r io.Reader) error {
	c.setLoading(true)
	resp, err := c.api.Upload(ctx, filename, r)
	c.setLoading(false)

	if err != nil {
		c.logger.Error("Upload failed", "error", err, "filename", filename)
		c.alerter.Alert(fmt.Sprintf("Upload failed: %v", err))
		return err
	}

	summary := resp.Data
	c.mu.Lock()
	c.state.Summary = &summary
	c.state.ReportURL = resp.Report
	c.mu.Unlock()

	c.logger.Info("Upload complete", "dataset_id", resp.DatasetID, "rows", summary.TotalRows)

	c.FetchHistory(ctx, 1)
	return nil
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.state.Loading = v
	c.mu.Unlock()
}

// FetchHistory replaces the history with the requested page. A failed
// fetch empties the list instead of reporting the error.
func (c *Controller) FetchHistory(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	pageSize := c.state.PageSize
	c.mu.Unlock()

	result, err := c.api.ListDatasets(ctx, page, pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Warn("Failed to load history", "error", err, "page", page)
		c.state.History = []models.HistoryItem{}
		c.state.Total = 0
		c.state.Page = page
		return
	}

	c.state.History = result.Items
	if c.state.History == nil {
		c.state.History = []models.HistoryItem{}
	}
	c.state.Total = result.Total
	c.state.Page = page
	if result.Page > 0 {
		c.state.Page = result.Page
	}
}

func (c *Controller) NextPage(ctx context.Context) {
	c.FetchHistory(ctx, c.State().Page+1)
}

func (c *Controller) PrevPage(ctx context.Context) {
	page := c.State().Page - 1
	if page < 1 {
		page = 1
	}
	c.FetchHistory(ctx, page)
}

// Load shows a history item's stored summary and report. It makes no API
// call; false means the id is not on the current page.
func (c *Controller) Load(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.state.History {
		if item.ID != id {
			continue
		}
		c.state.Summary = item.Summary
		c.state.ReportURL = ""
		if item.ReportURL != nil {
			c.state.ReportURL = *item.ReportURL
		}
		return true
	}
	return false
}

// OpenPreview fetches a dataset's rows and opens the modal. On failure one
// alert is raised and the state is left untouched.
func (c *Controller) OpenPreview(ctx context.Context, id int64) error {
	preview, err := c.api.Preview(ctx, id)
	if err != nil {
		c.logger.Error("Preview failed", "error", err, "dataset_id", id)
		c.alerter.Alert(fmt.Sprintf("Preview failed: %v", err))
		return err
	}

	c.mu.Lock()
	c.state.Preview = preview
	c.state.PreviewOpen = true
	c.mu.Unlock()
	return nil
}

// ClosePreview hides the modal. The fetched rows are kept.
func (c *Controller) ClosePreview() {
	c.mu.Lock()
	c.state.PreviewOpen = false
	c.mu.Unlock()
}

func (c *Controller) ToggleTheme() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Theme == ThemeDark {
		c.state.Theme = ThemeLight
	} else {
		c.state.Theme = ThemeDark
	}
	return c.state.Theme
}

// FlashAlerter queues alerts until the next page render drains them.
type FlashAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (f *FlashAlerter) Alert(message string) {
	f.mu.Lock()
	f.messages = append(f.messages, message)
	f.mu.Unlock()
}

func (f *FlashAlerter) Drain() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	msgs := f.messages
	f.messages = nil
	return msgs
}
