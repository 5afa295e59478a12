package recording

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes each recording to <dir>/<name>.<ext>, where ext follows
// the MIME type. A later recording replaces an earlier one.
type FileSink struct {
	dir  string
	name string
}

// NewFileSink returns a sink writing into dir. An empty name means
// "canvas".
func NewFileSink(dir, name string) *FileSink {
	if name == "" {
		name = "canvas"
	}
	return &FileSink{dir: dir, name: name}
}

// Path returns the file a recording of mimeType is written to.
func (s *FileSink) Path(mimeType string) string {
	return filepath.Join(s.dir, s.name+"."+Extension(mimeType))
}

// Save writes data, creating the directory if needed.
func (s *FileSink) Save(data []byte, mimeType string) error {
	if len(data) == 0 {
		return errors.New("recording: empty recording")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("recording: %w", err)
	}
	path := s.Path(mimeType)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("recording: %w", err)
	}
	return nil
}
