package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/expense-tracker/internal/config"
	"github.com/deppfellow/expense-tracker/internal/errs"
	"github.com/deppfellow/expense-tracker/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var fkViolation = &pgconn.PgError{
	Severity:       "ERROR",
	Code:           "23503",
	TableName:      "expenses",
	ConstraintName: "expenses_category_id_fkey",
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "http error", err: errs.NewNotFoundError("Expense not found", true, nil), want: http.StatusNotFound},
		{name: "echo error", err: echo.NewHTTPError(http.StatusMethodNotAllowed), want: http.StatusMethodNotAllowed},
		{name: "foreign key violation", err: fmt.Errorf("insert expense: %w", fkViolation), want: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorStatus(tt.err); got != tt.want {
				t.Errorf("errorStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRequestLoggerLogsClientStatusForDriverErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	global := NewGlobalMiddlewares(&server.Server{Config: &config.Config{}, Logger: &logger})

	e := echo.New()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(
		func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set(LoggerKey, &logger)
				return next(c)
			}
		},
		global.RequestLogger(),
	)
	e.POST("/expenses", func(c echo.Context) error {
		return fkViolation
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/expenses", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("response status = %d, want 400", rec.Code)
	}

	var line map[string]any
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", scanner.Text(), err)
		}
		if entry["message"] == "API" {
			line = entry
		}
	}
	if line == nil {
		t.Fatalf("no request log line in %q", buf.String())
	}

	if line["status"] != float64(http.StatusBadRequest) {
		t.Errorf("logged status = %v, want 400", line["status"])
	}
	if line["level"] != "warn" {
		t.Errorf("logged level = %v, want warn", line["level"])
	}
}
