package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/googlesheets-ru/championship-r7-2025/pkg/errcat"
)

func TestFetch_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.csv")
	require.NoError(t, os.WriteFile(path, []byte("a;b\n1;2\n"), 0o644))

	f := NewFetcher(nil, nil)
	data, err := f.Fetch(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "a;b\n1;2\n", string(data))
}

func TestFetch_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("a;b\n1;2\n"))
	}))
	defer srv.Close()

	f := NewFetcher(nil, nil)
	data, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "a;b\n1;2\n", string(data))
}

func TestFetch_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(nil, nil)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	require.Equal(t, errcat.FetchFailed, errcat.CodeOf(err))
}

func TestFetch_SizeCap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.csv")
	require.NoError(t, os.WriteFile(path, []byte("a;b\n1;2\n3;4\n"), 0o644))

	f := NewFetcher(nil, nil)
	f.MaxBytes = 4
	_, err := f.Fetch(context.Background(), path)
	require.Error(t, err)
	require.Equal(t, errcat.LimitExceeded, errcat.CodeOf(err))
}

func TestFetch_RejectsUnsupportedExtension(t *testing.T) {
	f := NewFetcher(nil, nil)
	_, err := f.Fetch(context.Background(), "events.xlsx")
	require.Error(t, err)
	require.Equal(t, errcat.Validation, errcat.CodeOf(err))
}

func TestIsURL(t *testing.T) {
	require.True(t, IsURL("https://example.com/x.csv"))
	require.True(t, IsURL("HTTP://example.com/x.csv"))
	require.False(t, IsURL("/data/x.csv"))
	require.False(t, IsURL("x.csv"))
}
