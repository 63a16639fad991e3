// Package fetch retrieves raw source bytes from a local file or an http(s)
// URL. It is the pipeline's only suspension point; everything downstream is
// synchronous.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/googlesheets-ru/championship-r7-2025/config"
	"github.com/googlesheets-ru/championship-r7-2025/internal/security"
	"github.com/googlesheets-ru/championship-r7-2025/pkg/errcat"
	"github.com/googlesheets-ru/championship-r7-2025/pkg/validation"
)

// SourceGate coordinates capacity for concurrently open sources (backed by
// runtime.Controller).
type SourceGate interface {
	AcquireSource(ctx context.Context) error
	ReleaseSource()
}

// Fetcher reads bounded source payloads. A nil Sec skips the local-path
// allow-list (the CLI only wires one when the operator configured roots);
// a nil Gate skips capacity accounting.
type Fetcher struct {
	Client   *http.Client
	Sec      *security.Manager
	Gate     SourceGate
	MaxBytes int
	Timeout  time.Duration
}

// NewFetcher constructs a Fetcher with config defaults filled in.
func NewFetcher(sec *security.Manager, gate SourceGate) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{},
		Sec:      sec,
		Gate:     gate,
		MaxBytes: config.DefaultMaxSourceBytes,
		Timeout:  config.DefaultFetchTimeout,
	}
}

// IsURL reports whether the source names an http(s) endpoint rather than a
// local file.
func IsURL(source string) bool {
	low := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(low, "http://") || strings.HasPrefix(low, "https://")
}

// request is the validated shape of one retrieval.
type request struct {
	Source string `validate:"required,source_ext"`
}

// Fetch retrieves the raw bytes for source within the configured timeout and
// size cap.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if err := validation.ValidateStruct(request{Source: source}); err != nil {
		return nil, err
	}
	if f.Gate != nil {
		if err := f.Gate.AcquireSource(ctx); err != nil {
			return nil, errcat.Wrap(errcat.Timeout, "waiting for a source slot", err)
		}
		defer f.Gate.ReleaseSource()
	}

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	if IsURL(source) {
		return f.fetchHTTP(ctx, source)
	}
	return f.fetchFile(source)
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errcat.Wrap(errcat.FetchFailed, fmt.Sprintf("build request for %s", url), err)
	}
	resp, err := f.client().Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errcat.Wrap(errcat.Timeout, fmt.Sprintf("fetching %s", url), err)
		}
		return nil, errcat.Wrap(errcat.FetchFailed, fmt.Sprintf("fetching %s", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errcat.Wrapf(errcat.FetchFailed, "fetching %s: status %d", url, resp.StatusCode)
	}
	return f.readCapped(resp.Body, url)
}

func (f *Fetcher) fetchFile(path string) ([]byte, error) {
	if f.Sec != nil {
		canonical, err := f.Sec.ValidateSourcePath(path)
		if err != nil {
			return nil, errcat.Wrap(errcat.PermissionDenied, fmt.Sprintf("reading %s", path), err)
		}
		path = canonical
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errcat.Wrap(errcat.FetchFailed, fmt.Sprintf("reading %s", path), err)
	}
	defer file.Close()
	return f.readCapped(file, path)
}

// readCapped reads at most MaxBytes and fails when the source runs longer.
func (f *Fetcher) readCapped(r io.Reader, source string) ([]byte, error) {
	limit := f.MaxBytes
	if limit <= 0 {
		limit = config.DefaultMaxSourceBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, errcat.Wrap(errcat.FetchFailed, fmt.Sprintf("reading %s", source), err)
	}
	if len(data) > limit {
		return nil, errcat.Wrapf(errcat.LimitExceeded, "%s exceeds %d source bytes", source, limit)
	}
	return data, nil
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}
