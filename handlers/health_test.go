package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"cmueats/utils"
)

func TestGetHealthHandler(t *testing.T) {
	monitor := utils.NewHealthMonitor(map[string]utils.Pinger{
		"mongo": utils.PingerFunc(func(ctx context.Context) error { return nil }),
		"redis": utils.PingerFunc(func(ctx context.Context) error { return errors.New("down") }),
	})
	monitor.Check(context.Background())

	w := perform(t, http.MethodGet, "/health", "/health", nil, NewHealthHandler(monitor).GetHealthHandler)
	expectStatus(t, w, http.StatusServiceUnavailable)

	var body struct {
		Status   string          `json:"status"`
		Services map[string]bool `json:"services"`
	}
	decode(t, w, &body)
	if body.Status != "degraded" || !body.Services["mongo"] || body.Services["redis"] {
		t.Fatalf("unexpected health body %+v", body)
	}

	w = perform(t, http.MethodGet, "/health", "/health", nil, NewHealthHandler(nil).GetHealthHandler)
	expectStatus(t, w, http.StatusOK)
}
