package validators

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/streetcaps511-a11y/gmcaps-backend/pkg/errors"
)

type samplePayload struct {
	Email    string `json:"email" validate:"required,email"`
	Quantity int    `json:"quantity" validate:"omitempty,min=1"`
}

func decodeRequest(t *testing.T, body string) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	var payload samplePayload
	return DecodeJSONBody(req, &payload)
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	if err := decodeRequest(t, `{"email":"cliente@gmcaps.com","quantity":2}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	err := decodeRequest(t, `{"email":"cliente@gmcaps.com","extra":true}`)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldsByJSONName(t *testing.T) {
	err := decodeRequest(t, `{"email":"not-an-email","quantity":0}`)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if _, ok := details["email"]; !ok {
		t.Fatalf("expected email field in details, got %v", details)
	}
}
