package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/extractor"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/models"
)

// APIError is returned for any non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
}

// Client talks to the dataset API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Upload posts one file as the multipart field "file".
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (*models.UploadResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filepath.Base(filename))))
	h.Set("Content-Type", extractor.DetectFormat(filename, "").ContentType())

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve("upload/"), &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp models.UploadResponse
	if err := c.doJSON(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListDatasets(ctx context.Context, page, pageSize int) (*models.DatasetPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve("datasets/")+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var result models.DatasetPage
	if err := c.doJSON(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Preview(ctx context.Context, id int64) (*models.Preview, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(fmt.Sprintf("datasets/%d/preview/", id)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var preview models.Preview
	if err := c.doJSON(req, &preview); err != nil {
		return nil, err
	}
	return &preview, nil
}

// DownloadReport streams the report at reportURL into w. Relative URLs are
// resolved against the API base.
func (c *Client) DownloadReport(ctx context.Context, reportURL string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(reportURL), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, readAPIError(resp)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to read report: %w", err)
	}
	return n, nil
}

func (c *Client) resolve(ref string) string {
	u, err := url.Parse(strings.TrimPrefix(ref, "/"))
	if err != nil {
		return ref
	}
	if u.IsAbs() {
		return u.String()
	}
	if strings.HasPrefix(ref, "/") {
		return c.baseURL.ResolveReference(&url.URL{Path: ref, RawQuery: u.RawQuery}).String()
	}
	return c.baseURL.ResolveReference(u).String()
}

func (c *Client) doJSON(req *http.Request, v any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readAPIError prefers the {"error": "..."} body the API sends and falls
// back to the raw body text.
func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return &APIError{Status: resp.StatusCode, Message: msg}
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
