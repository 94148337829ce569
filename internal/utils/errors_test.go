package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAsAppError(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := fmt.Errorf("saving report: %w", WrapInternalError("Failed to store report", cause))

	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected wrapped AppError to be found")
	}
	if appErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", appErr.StatusCode)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}

	if _, ok := AsAppError(cause); ok {
		t.Error("plain error should not be reported as AppError")
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewBadRequestError("bad"), http.StatusBadRequest},
		{NewNotFoundError("missing"), http.StatusNotFound},
		{NewInternalError("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if tt.err.StatusCode != tt.want {
			t.Errorf("%s: StatusCode = %d, want %d", tt.err.Message, tt.err.StatusCode, tt.want)
		}
		if tt.err.Error() != tt.err.Message {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.err.Message)
		}
	}
}

func TestGenerateIDUnique(t *testing.T) {
	if GenerateID() == GenerateID() {
		t.Error("GenerateID returned the same value twice")
	}
}
