package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hightemp/isocountry/internal/ingest"
)

func testClient() *Client {
	c := NewClient(nil)
	c.baseBackoff = time.Millisecond
	return c
}

func TestClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.Header.Get("User-Agent") != UserAgent {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		if r.URL.Query().Get("fields") != "name" {
			t.Error("Missing query parameter from the configured URL")
		}
		w.Write([]byte(`[{"name":"India"}]`))
	}))
	defer server.Close()

	body, err := testClient().Get(context.Background(), server.URL+"/v2/all?fields=name", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(body) != `[{"name":"India"}]` {
		t.Errorf("body = %s", body)
	}
}

func TestClientGetRetry(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			// Fail first 2 attempts
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	if _, err := testClient().Get(context.Background(), server.URL, nil); err != nil {
		t.Fatalf("Get failed after retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestClientGetNoRetryOnClientError(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := testClient().Get(context.Background(), server.URL, nil)
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusUnauthorized {
		t.Fatalf("error = %v, expected 401 StatusError", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestClientGetTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClientWithTimeout(50*time.Millisecond, nil)
	client.baseBackoff = time.Millisecond

	if _, err := client.Get(context.Background(), server.URL, nil); err == nil {
		t.Error("Expected timeout error")
	}
}

func TestClientGetContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if _, err := testClient().Get(ctx, server.URL, nil); err == nil {
		t.Error("Expected context cancellation error")
	}
}

func TestCalculateBackoff(t *testing.T) {
	client := NewClient(nil)

	// Test that backoff increases with attempts
	b1 := client.calculateBackoff(1)
	b2 := client.calculateBackoff(2)
	b3 := client.calculateBackoff(3)

	if b1 < BaseBackoff {
		t.Errorf("first backoff %v below base %v", b1, BaseBackoff)
	}
	if b2 < b1/2 {
		t.Errorf("Backoff should increase: b1=%v, b2=%v", b1, b2)
	}
	if b3 < b2/2 {
		t.Errorf("Backoff should increase: b2=%v, b3=%v", b2, b3)
	}

	// Should not exceed MaxBackoff
	b10 := client.calculateBackoff(10)
	if b10 > MaxBackoff+MaxBackoff/4 {
		t.Errorf("Backoff exceeded max: %v > %v", b10, MaxBackoff)
	}
}

func TestFetchCountries(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"valid", `[{"name":"India"}]`, nil},
		{"empty", `[]`, ErrEmptyDocument},
		{"malformed", `[{"name":`, ingest.ErrMalformedDocument},
	}

	for _, tc := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(tc.body))
		}))

		body, err := testClient().FetchCountries(context.Background(), server.URL)
		server.Close()

		if tc.wantErr == nil {
			if err != nil {
				t.Errorf("%s: unexpected error: %v", tc.name, err)
			} else if string(body) != tc.body {
				t.Errorf("%s: body = %s", tc.name, body)
			}
			continue
		}
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: error = %v, expected %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestFetchTimezones(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("format") != "json" {
			t.Errorf("format = %q, expected json", q.Get("format"))
		}
		if q.Get("key") != "secret" {
			w.Write([]byte(`{"status":"FAILED","message":"Invalid API key.","zones":[]}`))
			return
		}
		w.Write([]byte(`{"status":"OK","message":"","zones":[{"countryCode":"IN","zoneName":"Asia/Kolkata","gmtOffset":19800}]}`))
	}))
	defer server.Close()

	client := testClient()

	if _, err := client.FetchTimezones(context.Background(), server.URL, "secret"); err != nil {
		t.Errorf("FetchTimezones failed: %v", err)
	}
	if _, err := client.FetchTimezones(context.Background(), server.URL, "wrong"); err == nil {
		t.Error("Expected API error for rejected key")
	}
	if _, err := client.FetchTimezones(context.Background(), server.URL, ""); !errors.Is(err, ErrMissingKey) {
		t.Errorf("error = %v, expected ErrMissingKey", err)
	}
}
