package filereader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/IgorBayerl/opcode_counter/internal/filesystem"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MaxLineLength is the longest single line ScanLines accepts. Headers are
// line-oriented, but generated ones can carry very long macro lines.
const MaxLineLength = 16 * 1024 * 1024

// LineFunc receives each line with its 1-based line number. Returning an
// error stops the scan and the error is passed back to the caller.
type LineFunc func(lineNo int, line string) error

// NewDecodingReader wraps r so that its bytes are decoded as text.
// A leading byte-order mark selects UTF-8 or UTF-16 decoding; without one the
// input must be valid UTF-8, and reading fails with encoding.ErrInvalidUTF8
// at the first invalid byte.
func NewDecodingReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(encoding.UTF8Validator))
}

// ScanLines calls fn for every line of r, in order.
// Lines end at "\n", "\r\n" or a lone "\r"; the terminator is not included.
func ScanLines(r io.Reader, fn LineFunc) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	scanner.Split(scanUniversalLines)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := fn(lineNo, scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ForEachLineInFile opens filePath through fsys, decodes it and calls fn for
// each line. The file is closed before returning, whatever the outcome.
// Open errors are returned as-is so callers can match fs.ErrNotExist and
// fs.ErrPermission.
func ForEachLineInFile(fsys filesystem.Filesystem, filePath string, fn LineFunc) error {
	file, err := fsys.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := ScanLines(NewDecodingReader(file), fn); err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return nil
}

// scanUniversalLines is a bufio.SplitFunc that accepts all three common
// line terminators.
func scanUniversalLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// A '\r' needs one more byte to tell "\r\n" from a lone "\r".
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
