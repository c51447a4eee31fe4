package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewConflict("email already in use", nil)
	mapped := ToDomainError(original)
	if mapped.Code != "CONFLICT" || mapped.HTTPStatus != http.StatusConflict {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	if mapped.Code != "NOT_FOUND" || mapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
}

func TestToDomainErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	mapped := ToDomainError(pgErr)
	if mapped.Code != "CONFLICT" || mapped.HTTPStatus != http.StatusConflict {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
}

func TestToDomainErrorUnexpected(t *testing.T) {
	mapped := ToDomainError(errors.New("disk on fire"))
	if mapped.Code != "INTERNAL_ERROR" || mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
	if mapped.Message != "internal server error" {
		t.Fatalf("internal detail must not leak, got %q", mapped.Message)
	}
}

func TestToDomainErrorNil(t *testing.T) {
	if ToDomainError(nil) != nil {
		t.Fatal("nil must map to nil")
	}
}

func TestPgErrorPredicates(t *testing.T) {
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("expected unique violation")
	}
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("expected fk violation")
	}
	if IsUniqueViolation(errors.New("nope")) || IsForeignKeyViolation(nil) {
		t.Fatal("false positives")
	}
	if !IsNoRows(pgx.ErrNoRows) || IsNoRows(errors.New("other")) {
		t.Fatal("IsNoRows misbehaved")
	}
}

func TestNewNotFoundMessage(t *testing.T) {
	err := NewNotFound("mechanic", 12)
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatal("expected DomainError")
	}
	if domainErr.Message != "mechanic with ID 12 not found" {
		t.Fatalf("unexpected message %q", domainErr.Message)
	}
	if domainErr.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected status %d", domainErr.HTTPStatus)
	}
}

func TestNewValidationErrorDetails(t *testing.T) {
	err := NewValidationError("validation failed", map[string][]string{
		"email": {"must be a valid email address"},
	})
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatal("expected DomainError")
	}
	if domainErr.HTTPStatus != http.StatusBadRequest || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("unexpected taxonomy: %+v", domainErr)
	}
	if _, ok := domainErr.Details["email"]; !ok {
		t.Fatalf("expected email details, got %v", domainErr.Details)
	}
}
