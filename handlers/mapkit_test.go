package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"cmueats/utils"
)

type fakeSigner struct {
	token   string
	expires time.Time
	err     error
}

func (f fakeSigner) Token() (string, time.Time, error) { return f.token, f.expires, f.err }

func TestGetTokenHandler(t *testing.T) {
	expires := time.Date(2024, time.October, 14, 16, 30, 0, 0, time.UTC)
	h := NewMapKitHandler(fakeSigner{token: "signed", expires: expires})
	w := perform(t, http.MethodGet, "/api/mapkit/token", "/api/mapkit/token", nil, h.GetTokenHandler)
	expectStatus(t, w, http.StatusOK)

	var body struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expiresAt"`
	}
	decode(t, w, &body)
	if body.Token != "signed" || body.ExpiresAt != "2024-10-14T16:30:00Z" {
		t.Fatalf("unexpected body %+v", body)
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("expected no-store cache header")
	}
}

func TestGetTokenHandler_Errors(t *testing.T) {
	var unconfigured *utils.MapKitSigner
	tests := []struct {
		name   string
		signer TokenSigner
		status int
	}{
		{"nil signer", nil, http.StatusServiceUnavailable},
		{"nil mapkit signer", unconfigured, http.StatusServiceUnavailable},
		{"signing failure", fakeSigner{err: errors.New("bad key")}, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewMapKitHandler(tc.signer)
			w := perform(t, http.MethodGet, "/api/mapkit/token", "/api/mapkit/token", nil, h.GetTokenHandler)
			expectStatus(t, w, tc.status)
		})
	}
}
