package apiutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codr1/courtslots/internal/api/authz"
	"github.com/codr1/courtslots/internal/apperr"
)

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var envelope struct {
		Error ErrorBody `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return envelope.Error
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"slot_id":1,"extra":true}`))
	var dst struct {
		SlotID int64 `json:"slot_id"`
	}
	if err := DecodeJSON(req, &dst); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"slot_id":1}{"slot_id":2}`))
	var dst struct {
		SlotID int64 `json:"slot_id"`
	}
	if err := DecodeJSON(req, &dst); err == nil {
		t.Fatal("expected trailing JSON to be rejected")
	}
}

func TestDecodeOptionalJSONAcceptsEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	var dst struct {
		Date string `json:"date"`
	}
	if err := DecodeOptionalJSON(req, &dst); err != nil {
		t.Fatalf("expected empty body to be accepted, got %v", err)
	}
}

func TestWriteErrorMapsKinds(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{apperr.ErrSlotUnavailable, http.StatusConflict, "slot_unavailable"},
		{apperr.ErrConflict, http.StatusConflict, "conflict"},
		{apperr.ErrInvalidCode, http.StatusNotFound, "invalid_code"},
		{apperr.ErrWindowExpired, http.StatusGone, "window_expired"},
		{apperr.ErrNotOwner, http.StatusForbidden, "not_owner"},
		{apperr.NotFound("slot"), http.StatusNotFound, "not_found"},
		{apperr.Invalid("bad date"), http.StatusBadRequest, "invalid"},
		{errors.New("disk I/O error"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rec.Code)
			}
			body := decodeErrorBody(t, rec)
			if body.Code != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, body.Code)
			}
			if strings.Contains(body.Message, "disk") {
				t.Fatalf("internal cause leaked: %q", body.Message)
			}
		})
	}
}

func TestWriteErrorIncludesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	err := apperr.InvalidFields("invalid contact", map[string]string{"email": "email"})
	WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

	body := decodeErrorBody(t, rec)
	if body.Fields["email"] != "email" {
		t.Fatalf("expected email field error, got %+v", body.Fields)
	}
}

func TestWriteErrorHandlerError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil), HandlerError{Status: http.StatusUnauthorized, Message: "bad credentials"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body := decodeErrorBody(t, rec); body.Code != "unauthorized" {
		t.Fatalf("expected derived code, got %q", body.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	rec := httptest.NewRecorder()
	if RequireAdmin(rec, httptest.NewRequest(http.MethodGet, "/", nil)) {
		t.Fatal("expected anonymous request to be rejected")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(authz.ContextWithUser(context.Background(), &authz.AuthUser{ID: 1, Role: authz.RoleAdmin}))
	rec = httptest.NewRecorder()
	if !RequireAdmin(rec, req) {
		t.Fatalf("expected admin to pass, got %d", rec.Code)
	}
}
