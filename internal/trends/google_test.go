package trends

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"trends-exporter/internal/logger"
)

func rssBody(titles ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<rss version="2.0" xmlns:ht="https://trends.google.com/trending/rss"><channel><title>Daily Search Trends</title>`)
	for _, title := range titles {
		fmt.Fprintf(&b, "<item><title>%s</title><ht:approx_traffic>1000+</ht:approx_traffic></item>", title)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func newTestClient(endpoint string, maxTerms int) *GoogleClient {
	return NewGoogleClient(GoogleConfig{
		Endpoint:  endpoint,
		Language:  "en-US",
		Timeout:   2 * time.Second,
		MaxTerms:  maxTerms,
		UserAgent: "trends-exporter-test",
	}, logger.NewNop())
}

func TestTrendingSearches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("geo"); got != "GR" {
			t.Errorf("unexpected geo %q", got)
		}
		if got := r.URL.Query().Get("hl"); got != "en-US" {
			t.Errorf("unexpected hl %q", got)
		}
		if ua := r.Header.Get("User-Agent"); ua != "trends-exporter-test" {
			t.Errorf("unexpected user agent %q", ua)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssBody("  ολυμπιακός ", "", "weather athens", "euro 2024"))
	}))
	defer srv.Close()

	terms, err := newTestClient(srv.URL, 20).TrendingSearches(context.Background(), "gr")
	if err != nil {
		t.Fatalf("TrendingSearches: %v", err)
	}

	want := []string{"ολυμπιακός", "weather athens", "euro 2024"}
	if !reflect.DeepEqual(terms, want) {
		t.Fatalf("terms = %v, want %v", terms, want)
	}
}

func TestTrendingSearchesCapsTerms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssBody("a", "b", "c", "d"))
	}))
	defer srv.Close()

	terms, err := newTestClient(srv.URL, 2).TrendingSearches(context.Background(), "RO")
	if err != nil {
		t.Fatalf("TrendingSearches: %v", err)
	}
	if !reflect.DeepEqual(terms, []string{"a", "b"}) {
		t.Fatalf("terms = %v", terms)
	}
}

func TestTrendingSearchesInvalidCodeSkipsNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 20)
	for _, code := range []string{"", "G1", "GRC", "419"} {
		_, err := client.TrendingSearches(context.Background(), code)
		if !errors.Is(err, ErrUnsupportedRegion) {
			t.Errorf("code %q: expected ErrUnsupportedRegion, got %v", code, err)
		}
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("expected no requests, got %d", hits)
	}
}

func TestTrendingSearchesStatusErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		unsupported bool
	}{
		{"bad request", http.StatusBadRequest, true},
		{"not found", http.StatusNotFound, true},
		{"server error", http.StatusInternalServerError, false},
		{"rate limited", http.StatusTooManyRequests, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, 20).TrendingSearches(context.Background(), "HR")
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrUnsupportedRegion) != tt.unsupported {
				t.Errorf("ErrUnsupportedRegion match = %v, want %v (err %v)", !tt.unsupported, tt.unsupported, err)
			}
		})
	}
}

func TestTrendingSearchesMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>consent required")
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 20).TrendingSearches(context.Background(), "BG")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestTrendingSearchesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient("http://127.0.0.1:1", 20).TrendingSearches(ctx, "SK")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRequestURLKeepsExistingQuery(t *testing.T) {
	c := newTestClient("https://example.test/rss?src=app", 20)
	got := c.requestURL("SI")
	if got != "https://example.test/rss?src=app&geo=SI&hl=en-US" {
		t.Fatalf("requestURL = %q", got)
	}
}
