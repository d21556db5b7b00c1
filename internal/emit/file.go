package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oakmoss/kiln/internal/manifest"
)

// FileSink writes the manifest to a file. The content is rendered in full
// before anything touches disk, and the write goes through a temp file plus
// rename, so the destination is never left truncated.
type FileSink struct {
	Path string
}

// NewFile creates a file sink for the given path.
func NewFile(path string) *FileSink {
	return &FileSink{Path: path}
}

// Write replaces the destination file with the rendered manifest.
func (s *FileSink) Write(pins []manifest.Pin) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".manifest-*")
	if err != nil {
		return fmt.Errorf("emit: create temp file: %w", err)
	}
	if err := manifest.Render(tmp, pins); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("emit: close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("emit: chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("emit: rename into place: %w", err)
	}
	return nil
}
