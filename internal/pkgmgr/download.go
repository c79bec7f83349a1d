package pkgmgr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/conn-castle/toolstrap/internal/messages"
)

// DefaultMaxDownloadBytes caps installer script downloads.
const DefaultMaxDownloadBytes = int64(8 * 1024 * 1024) // 8 MiB

// maxRedirects matches the net/http default.
const maxRedirects = 10

var (
	osCreateTemp = os.CreateTemp
	osRemove     = os.Remove
)

// DownloadError marks a failure to fetch an installer script.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return e.Err.Error()
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Downloader fetches installer scripts over https.
type Downloader struct {
	Client   *http.Client
	MaxBytes int64
	// AllowInsecure permits plain http. Only tests set it.
	AllowInsecure bool
}

// NewDownloader returns a Downloader with a bounded client timeout and the default size cap.
func NewDownloader() *Downloader {
	return &Downloader{
		Client:   &http.Client{Timeout: 60 * time.Second},
		MaxBytes: DefaultMaxDownloadBytes,
	}
}

// Fetch downloads rawURL into a new temp file named with pattern and returns its path.
// When sha256Hex is set the file must match it. The caller removes the file.
// Failures are returned as *DownloadError and are never retried.
func (d *Downloader) Fetch(ctx context.Context, rawURL string, sha256Hex string, pattern string) (string, error) {
	path, err := d.fetch(ctx, rawURL, sha256Hex, pattern)
	if err != nil {
		return "", &DownloadError{URL: rawURL, Err: err}
	}
	return path, nil
}

func (d *Downloader) allowedScheme(scheme string) bool {
	return scheme == "https" || (d.AllowInsecure && scheme == "http")
}

// client returns a copy of the configured client whose redirects must stay on an allowed scheme.
func (d *Downloader) client() *http.Client {
	base := d.Client
	if base == nil {
		base = http.DefaultClient
	}
	guarded := *base
	guarded.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if !d.allowedScheme(req.URL.Scheme) {
			return fmt.Errorf(messages.DownloadInsecureRedirectFmt, req.URL.Redacted())
		}
		if base.CheckRedirect != nil {
			return base.CheckRedirect(req, via)
		}
		if len(via) >= maxRedirects {
			return fmt.Errorf(messages.DownloadTooManyRedirectsFmt, maxRedirects)
		}
		return nil
	}
	return &guarded
}

func (d *Downloader) fetch(ctx context.Context, rawURL string, sha256Hex string, pattern string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf(messages.DownloadInvalidURLFmt, rawURL, err)
	}
	if !d.allowedScheme(parsed.Scheme) {
		return "", fmt.Errorf(messages.DownloadInsecureURLFmt, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf(messages.DownloadInvalidURLFmt, rawURL, err)
	}
	req.Header.Set("User-Agent", "toolstrap")
	resp, err := d.client().Do(req)
	if err != nil {
		return "", fmt.Errorf(messages.DownloadFailedFmt, rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.Request != nil && !d.allowedScheme(resp.Request.URL.Scheme) {
		return "", fmt.Errorf(messages.DownloadInsecureRedirectFmt, resp.Request.URL.Redacted())
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(messages.DownloadUnexpectedStatusFmt, rawURL, resp.Status)
	}

	tmp, err := osCreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf(messages.DownloadCreateTempFileFmt, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = osRemove(tmpName)
		}
	}()

	maxBytes := d.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDownloadBytes
	}
	hasher := sha256.New()
	n, copyErr := io.Copy(io.MultiWriter(tmp, hasher), io.LimitReader(resp.Body, maxBytes+1))
	if closeErr := tmp.Close(); closeErr != nil && copyErr == nil {
		return "", fmt.Errorf(messages.DownloadCloseTempFileFmt, closeErr)
	}
	if copyErr != nil {
		return "", fmt.Errorf(messages.DownloadFailedFmt, rawURL, copyErr)
	}
	if n > maxBytes {
		return "", fmt.Errorf(messages.DownloadTooLargeFmt, rawURL, n, maxBytes)
	}
	if expected := strings.ToLower(strings.TrimSpace(sha256Hex)); expected != "" {
		actual := hex.EncodeToString(hasher.Sum(nil))
		if actual != expected {
			return "", fmt.Errorf(messages.DownloadChecksumMismatchFmt, rawURL, expected, actual)
		}
	}
	committed = true
	return tmpName, nil
}

// IsDownloadError reports whether err came from Fetch.
func IsDownloadError(err error) bool {
	var de *DownloadError
	return errors.As(err, &de)
}
