package persistence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dfryer1193/qrstore/gallery/domain"
)

var _ domain.ImageRepository = (*FilesystemImageRepository)(nil)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FilesystemImageRepository implements domain.ImageRepository on a single flat directory
type FilesystemImageRepository struct {
	dir string
}

// NewImageRepository creates a repository rooted at dir. The directory is not
// created until EnsureDir or SaveImage is called.
func NewImageRepository(dir string) *FilesystemImageRepository {
	return &FilesystemImageRepository{
		dir: dir,
	}
}

// Dir returns the store directory
func (r *FilesystemImageRepository) Dir() string {
	return r.dir
}

// EnsureDir creates the store directory if it does not exist
func (r *FilesystemImageRepository) EnsureDir() error {
	if err := os.MkdirAll(r.dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}
	return nil
}

// SaveImage streams content into a temp file next to the destination and
// renames it into place, so a concurrent reader sees either the old file or
// the new one. Two writers to the same name still race; the last rename wins.
func (r *FilesystemImageRepository) SaveImage(ctx context.Context, name string, content io.Reader) error {
	if name == "" {
		return fmt.Errorf("image name cannot be empty")
	}

	if err := r.EnsureDir(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write image file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close image file: %w", err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("failed to set image file mode: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filepath.Join(r.dir, name)); err != nil {
		return fmt.Errorf("failed to move image into place: %w", err)
	}

	return nil
}

// ListImages returns the regular files that could have been uploaded under
// their names, in the order os.ReadDir yields them. Anything listed can also
// be fetched and deleted. A missing store directory is an empty store.
func (r *FilesystemImageRepository) ListImages(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if domain.ValidateFilename(e.Name()) == nil {
			names = append(names, e.Name())
		}
	}

	return names, nil
}

// DeleteImage removes a regular file from the store
func (r *FilesystemImageRepository) DeleteImage(_ context.Context, name string) error {
	if name == "" {
		return domain.ErrNotFound
	}

	localPath := filepath.Join(r.dir, name)

	info, err := os.Lstat(localPath)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to stat image file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return domain.ErrNotFound
	}

	if err := os.Remove(localPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to remove image file: %w", err)
	}

	return nil
}
