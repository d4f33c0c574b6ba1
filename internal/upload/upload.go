package upload

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

// Placeholder is returned by the memory backend in place of a real URL.
const Placeholder = "IMAGE_UPLOADED_TO_MEMORY_PROCESSED_SUCCESSFULLY"

// Storage accepts an uploaded file and returns a URL it can be fetched from.
type Storage interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

func ext(filename string) string {
	e := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(e) > 10 || strings.ContainsAny(e, `/\`) {
		return ""
	}
	return e
}

type Memory struct{}

func (Memory) Save(_ context.Context, _ string, _ string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return Placeholder, nil
}
