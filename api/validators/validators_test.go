package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/promostore-backend/pkg/errors"
)

type samplePayload struct {
	ProductID int    `json:"productId" validate:"required,min=1"`
	Note      string `json:"note" validate:"max=5"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"productId":3,"note":"hola"}`))
	var payload samplePayload
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.ProductID != 3 || payload.Note != "hola" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"productId":3,"coupon":"x"}`))
	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"productId":0,"note":"demasiado"}`))
	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details := typed.Details().(map[string]string)
	if details["productId"] != "is required" {
		t.Fatalf("unexpected productId detail %q", details["productId"])
	}
	if details["note"] != "must be at most 5" {
		t.Fatalf("unexpected note detail %q", details["note"])
	}
}

func TestParseQueryInt64(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?price_min=1000&bad=abc&neg=-1", nil)

	if v, err := ParseQueryInt64(req, "price_min", 0); err != nil || v != 1000 {
		t.Fatalf("unexpected result %d, %v", v, err)
	}
	if v, err := ParseQueryInt64(req, "price_max", 99); err != nil || v != 99 {
		t.Fatalf("expected fallback, got %d, %v", v, err)
	}
	if _, err := ParseQueryInt64(req, "bad", 0); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
	if _, err := ParseQueryInt64(req, "neg", 0); err == nil {
		t.Fatal("expected error for negative value")
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?wait_seq=4&big=100", nil)
	if v, err := ParseQueryInt(req, "wait_seq", 0, 0, 50); err != nil || v != 4 {
		t.Fatalf("unexpected result %d, %v", v, err)
	}
	if _, err := ParseQueryInt(req, "big", 0, 0, 50); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  Ñandú  ", 0); got != "Ñandú" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SanitizeString("ÁÉÍÓÚ", 3); got != "ÁÉÍ" {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
}
