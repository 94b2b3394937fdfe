package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(ErrValidation, "catalog", "insert", "missing field", base)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "ingest", "move", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestWrapDetailOmitsEmptyParts(t *testing.T) {
	err := Wrap(ErrTransient, "", "", "", nil)
	if got := err.Error(); got != "transient failure: service failure" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestIsFatal(t *testing.T) {
	if IsFatal(Wrap(ErrTransient, "vision", "analyze", "", nil)) {
		t.Fatal("transient errors must not abort the run")
	}
	if !IsFatal(Wrap(ErrConfiguration, "vision", "analyze", "api key missing", nil)) {
		t.Fatal("configuration errors should abort the run")
	}
}
