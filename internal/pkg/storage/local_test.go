package storage

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadDownloadDelete(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/files/")
	require.NoError(t, err)
	ctx := t.Context()

	key, err := s.Upload(ctx, strings.NewReader("report"), "exports/march.xlsx", "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "exports/march.xlsx", key)

	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Download(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "report", string(body))

	url, err := s.GetURL(ctx, key, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/exports/march.xlsx", url)

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))

	exists, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_KeysStayInsideBase(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost/files")
	require.NoError(t, err)

	// Traversal is collapsed onto the base directory.
	key, err := s.Upload(t.Context(), strings.NewReader("x"), "../../etc/passwd", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", key)

	_, err = s.Upload(t.Context(), strings.NewReader("x"), "..", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalStorage_DownloadMissing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost/files")
	require.NoError(t, err)

	_, err = s.Download(t.Context(), "nope.xlsx")
	assert.ErrorIs(t, err, ErrFileNotFound)
}
