package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/civicflow/civic-portal/internal/core/domain"
	"github.com/civicflow/civic-portal/internal/infrastructure/backend"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestErrorHandler_Mappings(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "echo http error",
			err:      echo.NewHTTPError(http.StatusBadRequest, "invalid payload"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "invalid payload",
		},
		{
			name:     "backend rejection keeps its message",
			err:      &backend.APIError{Status: http.StatusConflict, Message: "Username already exists"},
			wantCode: http.StatusConflict,
			wantMsg:  "Username already exists",
		},
		{
			name:     "invalid credentials",
			err:      domain.ErrInvalidCredentials,
			wantCode: http.StatusUnauthorized,
			wantMsg:  domain.ErrInvalidCredentials.Error(),
		},
		{
			name:     "session ended mid-request",
			err:      domain.ErrSessionEnded,
			wantCode: http.StatusUnauthorized,
			wantMsg:  domain.ErrSessionEnded.Error(),
		},
		{
			name:     "backend unreachable",
			err:      domain.ErrBackendUnreachable,
			wantCode: http.StatusBadGateway,
			wantMsg:  domain.ErrBackendUnreachable.Error(),
		},
		{
			name:     "issue not found",
			err:      domain.ErrIssueNotFound,
			wantCode: http.StatusNotFound,
			wantMsg:  "issue not found",
		},
		{
			name:     "unexpected errors are masked",
			err:      errors.New("pq: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := handleError(t, tt.err)
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			if body["error"] != tt.wantMsg {
				t.Fatalf("message = %q, want %q", body["error"], tt.wantMsg)
			}
		})
	}
}

func TestErrorHandler_WrappedErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("fetching profile"), domain.ErrBackendUnreachable)
	rec, _ := handleError(t, wrapped)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("wrapped sentinel not recognised, got %d", rec.Code)
	}
}
