package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"kb-portal/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("title is required")

	if err.Error() != "title is required" {
		t.Errorf("expected 'title is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewNotFoundWrap(t *testing.T) {
	inner := fmt.Errorf("no rows")
	err := apperr.NewNotFoundWrap("article not found", inner)

	if err.Error() != "article not found: no rows" {
		t.Errorf("expected 'article not found: no rows', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestNotFoundError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewNotFound("article not found")

	wrapped := fmt.Errorf("delete failed: %w", original)
	doubleWrapped := fmt.Errorf("catalog: %w", wrapped)

	var nfe *apperr.NotFoundError
	if !errors.As(doubleWrapped, &nfe) {
		t.Fatal("errors.As should find NotFoundError through double wrapping")
	}
	if nfe.Message != "article not found" {
		t.Errorf("expected 'article not found', got %q", nfe.Message)
	}
}

func TestErrorKinds_DoNotCrossMatch(t *testing.T) {
	unavailable := apperr.NewUnavailable("api unreachable")
	wrapped := fmt.Errorf("load failed: %w", unavailable)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in an unavailable chain")
	}
	var nfe *apperr.NotFoundError
	if errors.As(wrapped, &nfe) {
		t.Fatal("errors.As should NOT find NotFoundError in an unavailable chain")
	}
}
