// Package filex holds small filesystem helpers for the CLI: preparing the
// local database location and opening image files for upload.
package filex

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxImageBytes is the largest photo the API accepts.
const MaxImageBytes = 5 * 1024 * 1024

var (
	ErrTooLarge = errors.New("photo is too large (max 5 MB)")
	ErrNotImage = errors.New("not an image file")
)

// EnsureParentDir creates the directory that will hold path. A path without
// a directory component needs nothing.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// Image is an opened image file ready for upload. Close releases the file.
type Image struct {
	Name        string
	ContentType string
	*os.File
}

// OpenImage opens path and checks it holds an image of at most maxBytes.
// The content type is sniffed from the first 512 bytes; the returned file
// is rewound to the start.
func OpenImage(path string, maxBytes int64) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("open %s: %w", path, ErrNotImage)
	}
	if maxBytes > 0 && fi.Size() > maxBytes {
		f.Close()
		return nil, ErrTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		f.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	ct := http.DetectContentType(head[:n])
	if !strings.HasPrefix(ct, "image/") {
		f.Close()
		return nil, ErrNotImage
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("seek %s: %w", path, err)
	}

	return &Image{Name: filepath.Base(path), ContentType: ct, File: f}, nil
}
