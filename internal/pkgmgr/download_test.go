package pkgmgr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tlsDownloader(srv *httptest.Server) *Downloader {
	return &Downloader{Client: srv.Client(), MaxBytes: DefaultMaxDownloadBytes}
}

func TestFetchWritesBodyAndVerifiesChecksum(t *testing.T) {
	body := "#!/bin/bash\necho installing\n"
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "toolstrap", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	sum := sha256.Sum256([]byte(body))
	path, err := tlsDownloader(srv).Fetch(context.Background(), srv.URL+"/install.sh", strings.ToUpper(hex.EncodeToString(sum[:])), "test-*.sh")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
	assert.True(t, strings.HasSuffix(path, ".sh"))
}

func TestFetchRejectsPlainHTTPWithoutRequest(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		requests++
	}))
	defer srv.Close()

	_, err := (&Downloader{Client: srv.Client()}).Fetch(context.Background(), srv.URL+"/install.sh", "", "test-*")
	require.Error(t, err)
	assert.True(t, IsDownloadError(err))
	assert.Contains(t, err.Error(), "only https URLs are allowed")
	assert.Zero(t, requests)
}

func TestFetchAllowInsecureForTests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	path, err := (&Downloader{Client: srv.Client(), AllowInsecure: true}).Fetch(context.Background(), srv.URL, "", "test-*")
	require.NoError(t, err)
	_ = os.Remove(path)
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		sha     string
		max     int64
		wantErr string
	}{
		{
			name:    "status",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
			wantErr: "unexpected status 503",
		},
		{
			name:    "too large",
			handler: func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("0123456789")) },
			max:     4,
			wantErr: "response too large (5 bytes > limit 4 bytes)",
		},
		{
			name:    "checksum",
			handler: func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("tampered")) },
			sha:     strings.Repeat("0", 64),
			wantErr: "checksum mismatch",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewTLSServer(tt.handler)
			defer srv.Close()

			downloader := tlsDownloader(srv)
			if tt.max > 0 {
				downloader.MaxBytes = tt.max
			}
			var created string
			origCreate := osCreateTemp
			osCreateTemp = func(dir, pattern string) (*os.File, error) {
				f, err := origCreate(dir, pattern)
				if err == nil {
					created = f.Name()
				}
				return f, err
			}
			t.Cleanup(func() { osCreateTemp = origCreate })

			_, err := downloader.Fetch(context.Background(), srv.URL+"/install.sh", tt.sha, "test-*")
			require.ErrorContains(t, err, tt.wantErr)
			assert.True(t, IsDownloadError(err))
			if created != "" {
				_, statErr := os.Stat(created)
				assert.True(t, os.IsNotExist(statErr), "temp file should be removed")
			}
		})
	}
}

func TestFetchInvalidURL(t *testing.T) {
	_, err := NewDownloader().Fetch(context.Background(), "://bad", "", "test-*")
	require.ErrorContains(t, err, "invalid download URL")
}

func TestFetchRefusesRedirectToPlainHTTP(t *testing.T) {
	var plainHits atomic.Int32
	plain := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		plainHits.Add(1)
		_, _ = w.Write([]byte("echo tampered\n"))
	}))
	defer plain.Close()
	secure := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, plain.URL+"/install.sh", http.StatusFound)
	}))
	defer secure.Close()

	path, err := tlsDownloader(secure).Fetch(context.Background(), secure.URL+"/install.sh", "", "test-*")
	require.ErrorContains(t, err, "refusing redirect to http://")
	assert.True(t, IsDownloadError(err))
	assert.Empty(t, path)
	assert.Zero(t, plainHits.Load())
}

func TestFetchFollowsHTTPSRedirect(t *testing.T) {
	body := []byte("echo moved\n")
	mux := http.NewServeMux()
	mux.HandleFunc("/old.sh", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/install.sh", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/install.sh", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write(body) })
	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	path, err := tlsDownloader(srv).Fetch(context.Background(), srv.URL+"/old.sh", "", "test-*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(path) })
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestFetchRedirectLoopStops(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
	}))
	defer srv.Close()

	_, err := tlsDownloader(srv).Fetch(context.Background(), srv.URL+"/install.sh", "", "test-*")
	require.ErrorContains(t, err, "stopped after 10 redirects")
}
