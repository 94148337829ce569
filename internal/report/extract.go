package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNotReport is returned for a readable PDF that does not start with Title.
var ErrNotReport = errors.New("pdf is not a dataset report")

// lineKeys are the keys Lines prints, in order. generated_at is optional.
var lineKeys = []string{"dataset", "total_rows", "average_pressure", "average_temperature", "type_distribution", "generated_at"}

// ExtractText returns the text of a generated report, title first.
func ExtractText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open report: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read report page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	text := strings.TrimSpace(b.String())
	if !strings.HasPrefix(text, Title) {
		return "", ErrNotReport
	}
	return text, nil
}

// ReadLines extracts a report and splits its body back into the
// "key: value" lines Lines produced for it.
func ReadLines(data []byte) ([]string, error) {
	text, err := ExtractText(data)
	if err != nil {
		return nil, err
	}
	body := strings.TrimPrefix(text, Title)

	var lines []string
	for i, key := range lineKeys {
		start := strings.Index(body, key+": ")
		if start < 0 {
			if key == "generated_at" {
				break
			}
			return nil, fmt.Errorf("report has no %s line", key)
		}
		body = body[start:]

		end := len(body)
		for _, next := range lineKeys[i+1:] {
			if j := strings.Index(body, next+": "); j >= 0 {
				end = j
				break
			}
		}
		lines = append(lines, strings.TrimSpace(body[:end]))
		body = body[end:]
	}

	return lines, nil
}
