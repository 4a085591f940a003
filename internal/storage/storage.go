package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Object identifies an uploaded object and where clients can fetch it.
type Object struct {
	Key string
	URL string
}

// UploadInput describes a single object to store.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Service stores product images in remote object storage.
type Service interface {
	UploadImage(ctx context.Context, in UploadInput) (Object, error)
}

// ObjectKey builds a collision-free key under prefix, keeping the
// lowercased extension of the original filename.
func ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	name := uuid.NewString() + ext
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
