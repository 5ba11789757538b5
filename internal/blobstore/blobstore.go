// Package blobstore keeps uploaded video files on local disk.
//
// Uploads stream into a .part file and are renamed into place only after a
// successful fsync, so a crash or cancellation never leaves a partial blob
// visible. Progress callbacks report whole percentages, monotonically, and
// finish at 100 exactly once.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"shorttrack/internal/config"
	"shorttrack/internal/services"
	"shorttrack/internal/shorts"
)

const copyChunkSize = 1 << 20

// ProgressFunc receives upload progress as a percentage in [0, 100].
type ProgressFunc func(percent int)

// Store saves and removes video blobs under a single directory.
type Store struct {
	dir string
}

// New returns a Store rooted at the configured blob directory.
func New(cfg *config.Config) (*Store, error) {
	dir := strings.TrimSpace(cfg.Paths.BlobDir)
	if dir == "" {
		return nil, services.Wrap(services.ErrConfiguration, "blobstore", "new", "blob directory is not configured", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Upload streams r into the store and returns a reference to the stored
// blob. size is the expected byte count and drives progress reporting; a
// non-positive size disables percentage math and reports only the final 100.
// The partial file is removed when the context is cancelled or the copy
// fails.
func (s *Store) Upload(ctx context.Context, name string, r io.Reader, size int64, mimeType string, progress ProgressFunc) (*shorts.FileRef, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." {
		return nil, services.Wrap(services.ErrValidation, "blobstore", "upload", "file name must not be empty", nil)
	}

	id := uuid.NewString()
	finalPath := s.blobPath(id, name)
	partPath := finalPath + ".part"

	out, err := os.OpenFile(partPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}

	written, err := copyChunks(ctx, out, r, size, progress)
	if err != nil {
		_ = out.Close()
		_ = os.Remove(partPath)
		return nil, err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		_ = os.Remove(partPath)
		return nil, fmt.Errorf("sync staging file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(partPath)
		return nil, fmt.Errorf("close staging file: %w", err)
	}
	if err := os.Rename(partPath, finalPath); err != nil {
		_ = os.Remove(partPath)
		return nil, fmt.Errorf("finalize blob: %w", err)
	}

	if progress != nil {
		progress(100)
	}
	return &shorts.FileRef{ID: id, Name: name, Size: written, MIMEType: mimeType}, nil
}

// Delete removes a stored blob. Deleting a blob that is already gone is not
// an error.
func (s *Store) Delete(ctx context.Context, ref shorts.FileRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(s.blobPath(ref.ID, ref.Name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// Path returns the on-disk location for a stored blob.
func (s *Store) Path(ref shorts.FileRef) string {
	return s.blobPath(ref.ID, ref.Name)
}

func (s *Store) blobPath(id, name string) string {
	return filepath.Join(s.dir, id+"_"+name)
}

func copyChunks(ctx context.Context, w io.Writer, r io.Reader, size int64, progress ProgressFunc) (int64, error) {
	buf := make([]byte, copyChunkSize)
	var written int64
	lastPercent := -1

	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, readErr := r.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				return written, fmt.Errorf("write blob: %w", writeErr)
			}
			written += int64(n)
			if progress != nil && size > 0 {
				percent := int(written * 100 / size)
				if percent > 99 {
					percent = 99
				}
				if percent > lastPercent {
					lastPercent = percent
					progress(percent)
				}
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("read upload: %w", readErr)
		}
	}
}
