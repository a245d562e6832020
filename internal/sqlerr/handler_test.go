package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/expense-tracker/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        `insert or update on table "expenses" violates foreign key constraint "expenses_category_id_fkey"`,
		TableName:      "expenses",
		ConstraintName: "expenses_category_id_fkey",
	}

	err := HandleError(fmt.Errorf("failed to insert expense: %w", pgErr))

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("HandleError() = %T, want *errs.HTTPError", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", httpErr.Status)
	}
	if httpErr.Code != "CATEGORY_NOT_FOUND" {
		t.Errorf("code = %q, want CATEGORY_NOT_FOUND", httpErr.Code)
	}
	if httpErr.Message != "The referenced Category does not exist" {
		t.Errorf("message = %q", httpErr.Message)
	}
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		TableName:      "categories",
		ConstraintName: "categories_name_key",
	}

	err := HandleError(pgErr)

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("HandleError() = %T, want *errs.HTTPError", err)
	}
	if httpErr.Code != "CATEGORY_ALREADY_EXISTS" {
		t.Errorf("code = %q, want CATEGORY_ALREADY_EXISTS", httpErr.Code)
	}
	if httpErr.Message != "A Category with this Name already exists" {
		t.Errorf("message = %q", httpErr.Message)
	}
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "23502", TableName: "expenses", ColumnName: "title"})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("HandleError() = %T, want *errs.HTTPError", err)
	}
	if httpErr.Code != "EXPENSE_REQUIRED" {
		t.Errorf("code = %q, want EXPENSE_REQUIRED", httpErr.Code)
	}
	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "title" {
		t.Errorf("field errors = %+v", httpErr.Errors)
	}
}

func TestHandleErrorNumericOutOfRange(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:    "22003",
		Message: "numeric field overflow",
	})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("HandleError() = %T, want *errs.HTTPError", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", httpErr.Status)
	}
	if httpErr.Code != "RECORD_INVALID" {
		t.Errorf("code = %q, want RECORD_INVALID", httpErr.Code)
	}
	if httpErr.Message != "A numeric value is out of range" {
		t.Errorf("message = %q", httpErr.Message)
	}
}

func TestHandleErrorPassthroughAndFallbacks(t *testing.T) {
	notFound := errs.NewNotFoundError("Expense not found", true, nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "http error unchanged", err: notFound, wantStatus: http.StatusNotFound, wantMsg: "Expense not found"},
		{name: "no rows with table", err: fmt.Errorf("table:expenses: %w", pgx.ErrNoRows), wantStatus: http.StatusNotFound, wantMsg: "Expense not found"},
		{name: "bare no rows", err: pgx.ErrNoRows, wantStatus: http.StatusNotFound, wantMsg: "Resource not found"},
		{name: "unknown sqlstate", err: &pgconn.PgError{Code: "53300"}, wantStatus: http.StatusInternalServerError},
		{name: "plain error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			if !errors.As(HandleError(tt.err), &httpErr) {
				t.Fatal("expected *errs.HTTPError")
			}
			if httpErr.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", httpErr.Status, tt.wantStatus)
			}
			if tt.wantMsg != "" && httpErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", httpErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestConvertPgError(t *testing.T) {
	src := &pgconn.PgError{
		Severity:       "FATAL",
		Code:           "23503",
		ConstraintName: "expenses_category_id_fkey",
	}

	got := ConvertPgError(src)
	if got.Code != ForeignKeyViolation {
		t.Errorf("code = %q", got.Code)
	}
	if got.Severity != SeverityFatal {
		t.Errorf("severity = %q", got.Severity)
	}
	if got.ColumnName != "category_id" {
		t.Errorf("column = %q, want category_id", got.ColumnName)
	}
	if !errors.Is(got, src) {
		t.Error("converted error must unwrap to the driver error")
	}
	if ErrCode(fmt.Errorf("wrapped: %w", got)) != ForeignKeyViolation {
		t.Error("ErrCode must see through wrapping")
	}
	if ErrCode(errors.New("x")) != Other {
		t.Error("ErrCode of a non-sql error must be Other")
	}
}

func TestMapSeverityDefaultsToError(t *testing.T) {
	if got := MapSeverity("SOMETHING"); got != SeverityError {
		t.Errorf("MapSeverity() = %q, want ERROR", got)
	}
}
