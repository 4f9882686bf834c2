package imaging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Resolve when a reference has no file on
// disk. Callers treat it as "no image", never as fatal.
var ErrNotFound = errors.New("image not found")

// Store keeps processed images as individual JPEG files in a directory
// and hands out filenames as opaque references.
type Store struct {
	dir string
}

// NewStore creates the image directory if needed and returns a Store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Store processes raw image bytes and writes them under a fresh
// reference, which it returns.
func (s *Store) Store(r io.Reader) (string, error) {
	data, err := process(r)
	if err != nil {
		return "", err
	}

	ref := uuid.NewString() + ".jpg"
	if err := os.WriteFile(filepath.Join(s.dir, ref), data, 0o644); err != nil {
		return "", fmt.Errorf("writing image %s: %w", ref, err)
	}
	return ref, nil
}

// Resolve returns the stored bytes for a reference, or ErrNotFound.
func (s *Store) Resolve(ref string) ([]byte, error) {
	path, err := s.refPath(ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("reading image %s: %w", ref, err)
	}
	return data, nil
}

// Delete removes the file behind a reference. Deleting a missing
// reference is not an error.
func (s *Store) Delete(ref string) error {
	path, err := s.refPath(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting image %s: %w", ref, err)
	}
	return nil
}

// refPath validates that a reference is a bare filename and returns its
// full path. References never escape the image directory.
func (s *Store) refPath(ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) {
		return "", fmt.Errorf("invalid image reference %q", ref)
	}
	return filepath.Join(s.dir, ref), nil
}
