package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/smileroute/smileroute-backend/pkg/errors"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"status": "ok"})

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload map[string]map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["data"]["status"] != "ok" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestWriteErrorMapsCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation passes message", pkgerrors.New(pkgerrors.CodeValidation, "quantity out of range"), 400, "quantity out of range"},
		{"not found passes message", pkgerrors.New(pkgerrors.CodeNotFound, "promotion code not found"), 404, "promotion code not found"},
		{"state conflict passes message", pkgerrors.New(pkgerrors.CodeStateConflict, "quote already submitted"), 422, "quote already submitted"},
		{"internal hides message", pkgerrors.New(pkgerrors.CodeInternal, "pool exhausted"), 500, "internal server error"},
		{"untyped becomes internal", errors.New("boom"), 500, "internal server error"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			WriteError(context.Background(), nil, rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var payload struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if payload.Error.Message != tc.wantMsg {
				t.Fatalf("message = %q, want %q", payload.Error.Message, tc.wantMsg)
			}
		})
	}
}
