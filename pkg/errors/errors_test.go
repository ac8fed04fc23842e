package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{CodeStateConflict, http.StatusUnprocessableEntity},
		{CodeRateLimit, http.StatusTooManyRequests},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		if got := MetadataFor(tc.code); got.HTTPStatus != tc.status {
			t.Fatalf("MetadataFor(%s) status = %d, want %d", tc.code, got.HTTPStatus, tc.status)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection reset")
	err := Wrap(CodeDependency, cause, "load shipping rates")

	if !stdErrors.Is(err, cause) {
		t.Fatal("wrapped error should match its cause")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", err.Code())
	}
	if err.Error() != "DEPENDENCY_ERROR: load shipping rates" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

func TestWrapNilCauseBehavesLikeNew(t *testing.T) {
	err := Wrap(CodeValidation, nil, "desi value required")
	if err.Unwrap() != nil {
		t.Fatal("expected no cause")
	}
	if err.Code() != CodeValidation {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsFindsTypedErrorThroughChain(t *testing.T) {
	inner := New(CodeNotFound, "store not found")
	outer := fmt.Errorf("resolving overrides: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", typed.Code())
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain error should not convert")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	inner := New(CodeConflict, "duplicate tier")
	outer := fmt.Errorf("saving override: %w", inner)

	dump := Dump(outer)
	if dump.Code != CodeConflict {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected chain of 2, got %d", len(dump.Chain))
	}
	if dump.TopMessage == "" {
		t.Fatal("expected top message")
	}
}
