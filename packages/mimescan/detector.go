// Package mimescan resolves content types for upload payloads.
//
// Extension lookups use the platform MIME table; when the extension is
// unknown the payload content is sniffed with gabriel-vasile/mimetype.
package mimescan

import (
	"fmt"
	"mime"
	"net/url"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultContentType is used when neither the extension table nor content
// sniffing produces an answer.
const DefaultContentType = "application/octet-stream"

// Detector resolves a content type for a file path, a destination URL, or
// raw bytes. Implementations never return an empty content type without an
// error.
type Detector interface {
	// FromPath resolves the content type of a local file.
	FromPath(path string) (string, error)

	// FromURL guesses the content type from the extension of the URL path.
	FromURL(rawURL string) (string, error)

	// FromBytes sniffs the content type of a raw payload.
	FromBytes(data []byte) string
}

// Scanner is the default Detector.
type Scanner struct{}

func New() *Scanner {
	return &Scanner{}
}

func (s *Scanner) FromPath(path string) (string, error) {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct, nil
	}

	// Unknown extension: sniff the file content.
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("mime detection failed for %s: %w", path, err)
	}
	return detected.String(), nil
}

func (s *Scanner) FromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("mime lookup failed for %s: %w", rawURL, err)
	}

	if ct := mime.TypeByExtension(filepath.Ext(u.Path)); ct != "" {
		return ct, nil
	}
	return DefaultContentType, nil
}

func (s *Scanner) FromBytes(data []byte) string {
	if len(data) == 0 {
		return DefaultContentType
	}
	return mimetype.Detect(data).String()
}
