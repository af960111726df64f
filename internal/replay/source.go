package replay

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/udisondev/eurekalink/internal/model"
)

// Frame is one recorded snapshot line.
type Frame struct {
	At time.Time `json:"at"`
	model.Snapshot
}

// Source replays recorded frames as snapshots.
// Next returns io.EOF after the last frame.
type Source struct {
	sc     *bufio.Scanner
	closer func() error
	line   int
	now    func() time.Time
}

// NewSource reads JSONL frames from r.
func NewSource(r io.Reader) *Source {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	return &Source{sc: sc, closer: func() error { return nil }, now: time.Now}
}

// Open opens a .jsonl or .jsonl.zst recording.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recording %s: %w", path, err)
	}
	if !strings.HasSuffix(path, ".zst") {
		s := NewSource(f)
		s.closer = f.Close
		return s, nil
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("opening zstd recording %s: %w", path, err)
	}
	s := NewSource(dec)
	s.closer = func() error {
		dec.Close()
		return f.Close()
	}
	return s, nil
}

// Next returns the next snapshot. Frames without a timestamp are stamped
// with the current time.
func (s *Source) Next(ctx context.Context) (model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, err
	}
	for s.sc.Scan() {
		s.line++
		line := s.sc.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var f Frame
		if err := json.Unmarshal(line, &f); err != nil {
			return model.Snapshot{}, fmt.Errorf("recording line %d: %w", s.line, err)
		}
		snap := f.Snapshot
		snap.Now = f.At
		if snap.Now.IsZero() {
			snap.Now = s.now()
		}
		return snap, nil
	}
	if err := s.sc.Err(); err != nil {
		return model.Snapshot{}, fmt.Errorf("reading recording: %w", err)
	}
	return model.Snapshot{}, io.EOF
}

// Close releases the underlying file.
func (s *Source) Close() error {
	return s.closer()
}

// IsEnd reports whether err marks the end of a recording.
func IsEnd(err error) bool {
	return errors.Is(err, io.EOF)
}
