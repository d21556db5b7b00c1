package emit

import (
	"io"
	"os"

	"github.com/oakmoss/kiln/internal/manifest"
)

// StreamSink renders the manifest to an io.Writer, stdout by default.
type StreamSink struct {
	w io.Writer
}

// NewStdout creates a sink that writes to stdout.
func NewStdout() *StreamSink {
	return &StreamSink{w: os.Stdout}
}

// NewStream creates a sink over an arbitrary writer.
func NewStream(w io.Writer) *StreamSink {
	return &StreamSink{w: w}
}

func (s *StreamSink) Write(pins []manifest.Pin) error {
	return manifest.Render(s.w, pins)
}
