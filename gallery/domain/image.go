package domain

import (
	"context"
	"errors"
	"io"
	"strings"
)

var (
	ErrNoFile          = errors.New("no file provided")
	ErrEmptyFilename   = errors.New("no file selected")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrFileTooLarge    = errors.New("file too large")
	ErrNotFound        = errors.New("file not found")
)

// allowedExtensions governs both upload acceptance and list filtering
var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"webp": {},
}

// StoredImage is an image file in the store directory, identified only by its name
type StoredImage struct {
	Name string
}

// Extension returns the lowercased suffix after the last dot, or "" if there is none
func (img StoredImage) Extension() string {
	return extension(img.Name)
}

func extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// AllowedFile reports whether name has an extension in the allow-set
func AllowedFile(name string) bool {
	if !strings.Contains(name, ".") {
		return false
	}
	_, ok := allowedExtensions[extension(name)]
	return ok
}

// ValidateFilename checks that a client-supplied name can be stored as-is.
// The name must be a single path component that is not hidden and whose
// extension is in the allow-set.
func ValidateFilename(name string) error {
	if name == "" {
		return ErrEmptyFilename
	}
	if !AllowedFile(name) {
		return ErrInvalidFileType
	}
	if name == "." || name == ".." ||
		strings.HasPrefix(name, ".") ||
		strings.ContainsAny(name, "/\\\x00") {
		return ErrInvalidFilename
	}
	return nil
}

type ImageRepository interface {
	// SaveImage writes content to the store under name, replacing any existing file
	SaveImage(ctx context.Context, name string, content io.Reader) error

	// ListImages returns the names of allow-set files in directory order
	ListImages(ctx context.Context) ([]string, error)

	// DeleteImage removes the named file, returning ErrNotFound if it does not exist
	DeleteImage(ctx context.Context, name string) error
}
