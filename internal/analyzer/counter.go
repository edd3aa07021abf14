// Package analyzer counts VM opcode declarations in a header file.
//
// The count is a textual heuristic: every line containing the opcode marker
// counts once, whether the marker appears in an enum constant, a macro or a
// comment. Lines with the marker more than once still count once.
package analyzer

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/IgorBayerl/opcode_counter/internal/filereader"
	"github.com/IgorBayerl/opcode_counter/internal/filesystem"
)

const (
	// DefaultPath is scanned when no path is given, relative to the working directory.
	DefaultPath = "src/opcodes.h"
	// DefaultMarker is the naming prefix shared by all opcode constants.
	DefaultMarker = "PVM_OP_"
	// ByteLimit is the number of distinct values a single byte can encode.
	ByteLimit = 256
)

var (
	ErrEmptyMarker   = errors.New("opcode marker must not be empty")
	ErrNegativeLimit = errors.New("opcode limit must not be negative")
)

// Summary is the result of scanning one file.
type Summary struct {
	SourcePath string
	Marker     string
	Limit      int
	// Count is the number of lines containing Marker; always len(MatchedLines).
	Count int
	// MatchedLines holds the 1-based numbers of the matching lines, in file order.
	MatchedLines []int
}

// OverLimit reports whether the count no longer fits in the limit.
// A count equal to the limit still fits.
func (s *Summary) OverLimit() bool {
	return s.Count > s.Limit
}

// Counter scans files for the opcode marker. It keeps no state between
// calls, so one Counter can be reused.
type Counter struct {
	fsys   filesystem.Filesystem
	marker string
	limit  int
	logger *slog.Logger
}

// Option configures a Counter.
type Option func(*Counter)

// WithFilesystem replaces the host filesystem.
func WithFilesystem(fsys filesystem.Filesystem) Option {
	return func(c *Counter) { c.fsys = fsys }
}

// WithMarker replaces DefaultMarker.
func WithMarker(marker string) Option {
	return func(c *Counter) { c.marker = marker }
}

// WithLimit replaces ByteLimit.
func WithLimit(limit int) Option {
	return func(c *Counter) { c.limit = limit }
}

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Counter) { c.logger = logger }
}

// NewCounter returns a Counter for DefaultMarker and ByteLimit on the host
// filesystem, adjusted by opts.
func NewCounter(opts ...Option) (*Counter, error) {
	c := &Counter{
		fsys:   filesystem.DefaultFS{},
		marker: DefaultMarker,
		limit:  ByteLimit,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.marker == "" {
		return nil, ErrEmptyMarker
	}
	if c.limit < 0 {
		return nil, ErrNegativeLimit
	}
	return c, nil
}

// Count scans path exactly as given and returns its Summary. File access
// errors are returned unchanged in kind; a partial count is never returned.
func (c *Counter) Count(path string) (*Summary, error) {
	if absPath, err := c.fsys.Abs(path); err == nil {
		c.logger.Info("Scanning for opcodes", "path", absPath, "marker", c.marker)
	}
	if info, err := c.fsys.Stat(path); err == nil {
		c.logger.Debug("Source file", "path", path, "size", info.Size())
	}

	summary := &Summary{
		SourcePath:   path,
		Marker:       c.marker,
		Limit:        c.limit,
		MatchedLines: []int{},
	}
	scanned := 0
	err := filereader.ForEachLineInFile(c.fsys, path, func(lineNo int, line string) error {
		scanned = lineNo
		if strings.Contains(line, c.marker) {
			summary.MatchedLines = append(summary.MatchedLines, lineNo)
			c.logger.Debug("Matched opcode line", "line", lineNo, "text", strings.TrimSpace(line))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary.Count = len(summary.MatchedLines)
	c.logger.Info("Opcode scan finished", "path", path, "lines", scanned, "count", summary.Count)
	if summary.OverLimit() {
		c.logger.Info("Opcode count exceeds limit", "count", summary.Count, "limit", summary.Limit)
	}
	return summary, nil
}

// CountOpcodes returns the number of lines in path containing DefaultMarker,
// reading from the host filesystem. An empty path means DefaultPath.
func CountOpcodes(path string) (int, error) {
	if path == "" {
		path = DefaultPath
	}
	counter, err := NewCounter()
	if err != nil {
		return 0, err
	}
	summary, err := counter.Count(path)
	if err != nil {
		return 0, err
	}
	return summary.Count, nil
}
