package utils

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestLoggerWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	base := NewLoggerTo(&buf, "info")
	base.With("dataset_id", 7).Info("Dataset stored", "rows", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "Dataset stored" || record["dataset_id"] != float64(7) || record["rows"] != float64(3) {
		t.Errorf("record = %v", record)
	}

	buf.Reset()
	base.Info("plain")
	if bytes.Contains(buf.Bytes(), []byte("dataset_id")) {
		t.Errorf("With changed the parent logger: %s", buf.String())
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "warn")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info written at warn level: %s", buf.String())
	}
	logger.Warn("shown")
	if buf.Len() == 0 {
		t.Error("warn not written at warn level")
	}
}
