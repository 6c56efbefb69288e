package imaging

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/erazemk/oglasna/internal/db"
	"github.com/erazemk/oglasna/internal/store"
)

func imageServer(t *testing.T, body []byte) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFetcherCachesThumbnail(t *testing.T) {
	srv, hits := imageServer(t, createTestJPEG(800, 400))
	s := store.NewSQLite(db.NewTestDB(t))
	f := NewFetcher(s, 200)
	ctx := context.Background()
	src := srv.URL + "/photo.jpg"

	first, err := f.Thumbnail(ctx, src)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if w, h := decodeSize(t, first); w != 200 || h != 100 {
		t.Errorf("expected 200x100, got %dx%d", w, h)
	}

	cached, version, err := s.Get(ctx, CacheKey(src))
	if err != nil || version != 1 || len(cached) == 0 {
		t.Fatalf("expected cached thumbnail at version 1, got %d bytes, version %d, err %v", len(cached), version, err)
	}

	if _, err := f.Thumbnail(ctx, src); err != nil {
		t.Fatalf("second Thumbnail: %v", err)
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("expected one upstream fetch, got %d", n)
	}
}

func TestFetcherErrors(t *testing.T) {
	srv, _ := imageServer(t, []byte("plain text, not an image"))
	f := NewFetcher(store.NewMemory(), 200)
	ctx := context.Background()

	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"not http", "javascript:alert(1)"},
		{"upstream 404", srv.URL + "/missing.jpg"},
		{"not an image", srv.URL + "/text.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.Thumbnail(ctx, tt.src); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFetcherByteLimit(t *testing.T) {
	srv, _ := imageServer(t, createTestPNG(300, 300))
	f := NewFetcher(nil, 200)
	f.MaxBytes = 64

	_, err := f.Thumbnail(context.Background(), srv.URL+"/big.png")
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestCacheKeyStable(t *testing.T) {
	a := CacheKey("https://example.com/a.jpg")
	if a != CacheKey("https://example.com/a.jpg") {
		t.Error("cache key should be deterministic")
	}
	if a == CacheKey("https://example.com/b.jpg") {
		t.Error("different sources should not share a key")
	}
}
