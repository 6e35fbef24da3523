package upload

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const MaxFileSize int64 = 10 * 1024 * 1024

var AllowedExtensions = []string{".pdf", ".doc", ".docx"}

var (
	ErrNoFile          = errors.New("No file uploaded")
	ErrFileTooLarge    = errors.New("File size exceeds 10MB limit")
	ErrInvalidFileType = errors.New("Invalid file type. Only PDF, DOC, and DOCX files are allowed")
)

// StoredFile describes a persisted upload. URL is what clients use to fetch it back.
type StoredFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}

// Extension returns the lower-cased suffix starting at the last dot, or "".
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i:])
}

// Validate checks size before type; neither check touches storage.
func Validate(name string, size int64) error {
	if name == "" {
		return ErrNoFile
	}
	if size > MaxFileSize {
		return ErrFileTooLarge
	}
	if !slices.Contains(AllowedExtensions, Extension(name)) {
		return ErrInvalidFileType
	}
	return nil
}

// NewFileName builds `{epoch-millis}-{random}-{original}`. Directory parts of
// the original name are dropped so the result stays inside the upload root;
// the rest is kept as is, and stores escape it when building URLs.
func NewFileName(now time.Time, random int64, original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	return fmt.Sprintf("%d-%d-%s", now.UnixMilli(), random, base)
}

// URLPath escapes a slash-separated storage path for use in a URL.
func URLPath(p string) string {
	return (&url.URL{Path: p}).EscapedPath()
}
