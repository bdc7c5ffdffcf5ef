package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const upstream = `{"locations":[
{"conceptId":1,"name":"the exchange","times":[{"start":{"day":1,"hour":8,"minute":0},"end":{"day":1,"hour":14,"minute":0}}]},
{"conceptId":2,"name":"de fer coffee","times":[]}]}`

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	cliClock = func() time.Time { return time.Date(2024, time.October, 16, 16, 0, 0, 0, time.UTC) }
	return executeCLI(t, args...)
}

func executeCLI(t *testing.T, args ...string) string {
	t.Helper()
	statusAt, statusOpen = "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("diningctl %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/locations" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(upstream))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStatusCommand(t *testing.T) {
	srv := newUpstream(t)
	out := runCLI(t, "--api", srv.URL, "status", "--at", "2024-10-14T12:00:00-04:00")

	for _, want := range []string{
		"The Exchange",
		"Closes in 2 hours (at 2:00 PM)",
		"De Fer Coffee",
		"Closed until further notice",
		"1 of 2 locations open at Mon 12:00 PM EDT",
		"(2 days ago)",
		"Fetched Wed 12:00 PM EDT (now)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Index(out, "The Exchange") > strings.Index(out, "De Fer Coffee") {
		t.Fatalf("expected open location first:\n%s", out)
	}
}

func TestStatusCommand_OpenOnly(t *testing.T) {
	srv := newUpstream(t)
	out := runCLI(t, "--api", srv.URL, "status", "--open", "--at", "2024-10-14T12:00:00-04:00")
	if strings.Contains(out, "De Fer Coffee") {
		t.Fatalf("expected closed location to be hidden:\n%s", out)
	}
}

func TestStatusCommand_FetchedNote(t *testing.T) {
	srv := newUpstream(t)
	// Each read of the clock moves it forward three minutes.
	next := time.Date(2024, time.October, 14, 16, 0, 0, 0, time.UTC)
	cliClock = func() time.Time {
		now := next
		next = next.Add(3 * time.Minute)
		return now
	}
	t.Cleanup(func() { cliClock = time.Now })

	out := executeCLI(t, "--api", srv.URL, "status")
	for _, want := range []string{
		"1 of 2 locations open at Mon 12:00 PM EDT\n",
		"Fetched Mon 12:00 PM EDT (3 minutes ago)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestTitleCommand(t *testing.T) {
	out := runCLI(t, "title", "the exchange", "SCHATZ DINING ROOM ii")
	if out != "The Exchange\nSchatz Dining Room II\n" {
		t.Fatalf("unexpected output %q", out)
	}
}
