// Package output writes emitted lines to standard output or to a file.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Mode controls how a file destination is opened.
type Mode int

const (
	// ModeWrite creates the file or truncates an existing one.
	ModeWrite Mode = iota
	// ModeAppend creates the file or appends to an existing one.
	ModeAppend
)

func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeAppend:
		return "append"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) flags() (int, error) {
	switch m {
	case ModeWrite:
		return os.O_CREATE | os.O_WRONLY | os.O_TRUNC, nil
	case ModeAppend:
		return os.O_CREATE | os.O_WRONLY | os.O_APPEND, nil
	default:
		return 0, fmt.Errorf("unknown output mode %s", m)
	}
}

// ModeFor maps an append switch onto a Mode.
func ModeFor(appendMode bool) Mode {
	if appendMode {
		return ModeAppend
	}
	return ModeWrite
}

// Sink buffers lines and terminates each with a newline.
type Sink struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewSink writes to w. Close flushes but never closes w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: bufio.NewWriter(w)}
}

// Open opens path in the given mode and returns a Sink that owns the file.
func Open(path string, mode Mode) (*Sink, error) {
	flags, err := mode.flags()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output %s: %w", path, err)
	}
	return &Sink{w: bufio.NewWriter(f), closer: f}, nil
}

// WriteLine implements extract.LineWriter.
func (s *Sink) WriteLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Close flushes buffered lines and closes the underlying file, if any.
func (s *Sink) Close() error {
	err := s.w.Flush()
	if s.closer != nil {
		err = errors.Join(err, s.closer.Close())
	}
	return err
}
