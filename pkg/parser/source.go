package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinPath selects standard input as the log source.
const StdinPath = "-"

// ReaderSource implements LineSource over an io.Reader.
// Lines may be of any length.
type ReaderSource struct {
	name    string
	reader  *bufio.Reader
	closer  io.Closer
	lineNum int
	done    bool
}

// NewReaderSource creates a LineSource reading lines from r.
// The name is reported as LogLine.Source.
func NewReaderSource(name string, r io.Reader) *ReaderSource {
	return &ReaderSource{
		name:   name,
		reader: bufio.NewReader(r),
	}
}

// NewFileSource opens path for reading. StdinPath reads standard input.
func NewFileSource(path string) (*ReaderSource, error) {
	if path == StdinPath {
		return NewReaderSource("stdin", os.Stdin), nil
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	src := NewReaderSource(path, f)
	src.closer = f
	return src, nil
}

// Next returns the next line.
// Returns io.EOF when the reader is exhausted.
func (s *ReaderSource) Next(ctx context.Context) (*LogLine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if s.done {
		return nil, io.EOF
	}

	text, err := s.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return nil, fmt.Errorf("reading %s: %w", s.name, err)
		}
		s.done = true
		if text == "" {
			return nil, io.EOF
		}
	}

	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")

	s.lineNum++
	return &LogLine{
		Content: text,
		Source:  s.name,
		LineNum: s.lineNum,
	}, nil
}

// Name returns the source name.
func (s *ReaderSource) Name() string {
	return s.name
}

// Close releases the underlying file, if any.
func (s *ReaderSource) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
