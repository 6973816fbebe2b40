package mimescan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_FromPath(t *testing.T) {
	s := New()

	ct, err := s.FromPath("/tmp/photo.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	ct, err = s.FromPath("report.json")
	require.NoError(t, err)
	assert.Contains(t, ct, "application/json")
}

func TestScanner_FromPath_SniffsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.unknownext")
	require.NoError(t, os.WriteFile(path, []byte("plain words here"), 0o644))

	ct, err := New().FromPath(path)
	require.NoError(t, err)
	assert.Contains(t, ct, "text/plain")
}

func TestScanner_FromPath_MissingFile(t *testing.T) {
	_, err := New().FromPath(filepath.Join(t.TempDir(), "nope.unknownext"))
	assert.Error(t, err)
}

func TestScanner_FromURL(t *testing.T) {
	s := New()

	ct, err := s.FromURL("https://storage.example.com/bucket/pic.jpg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)

	// Query strings must not confuse the extension lookup.
	ct, err = s.FromURL("https://storage.example.com/bucket/doc.pdf?token=abc")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)

	ct, err = s.FromURL("https://storage.example.com/bucket/blob")
	require.NoError(t, err)
	assert.Equal(t, DefaultContentType, ct)
}

func TestScanner_FromBytes(t *testing.T) {
	s := New()

	assert.Equal(t, DefaultContentType, s.FromBytes(nil))
	assert.Contains(t, s.FromBytes([]byte("{\"a\": 1}")), "json")

	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	assert.Equal(t, "image/png", s.FromBytes(png))
}
