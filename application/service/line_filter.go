// Package service provides the application layer that drives domain types
// over input and output streams.
package service

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/helixml/getline/domain/linespec"
	"github.com/helixml/getline/internal/config"
	"github.com/helixml/getline/internal/log"
)

// initialBufferSize sizes the input reader and the initial line buffer.
const initialBufferSize = 64 * 1024

// LineFilterOption configures a LineFilter.
type LineFilterOption func(*LineFilter)

// WithLogger sets the logger used for run summaries.
func WithLogger(l *log.Logger) LineFilterOption {
	return func(f *LineFilter) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithMaxLineBytes caps the length of a single input line.
func WithMaxLineBytes(n int) LineFilterOption {
	return func(f *LineFilter) {
		if n > 0 {
			f.maxLineBytes = n
		}
	}
}

// WithLineNumbers prefixes each written line with its number and a tab.
func WithLineNumbers(enabled bool) LineFilterOption {
	return func(f *LineFilter) {
		f.lineNumbers = enabled
	}
}

// FilterResult summarises one run.
type FilterResult struct {
	LinesRead    uint64
	LinesWritten uint64
}

// LineFilter copies the lines of a stream that fall inside a LineSpec.
type LineFilter struct {
	spec         linespec.LineSpec
	logger       *log.Logger
	maxLineBytes int
	lineNumbers  bool
}

// NewLineFilter creates a LineFilter for spec.
func NewLineFilter(spec linespec.LineSpec, opts ...LineFilterOption) *LineFilter {
	f := &LineFilter{
		spec:         spec,
		logger:       log.Nop(),
		maxLineBytes: config.DefaultMaxLineBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run reads r to the end in a single pass and writes each line whose 1-based
// number is in the spec to w, newline terminated and in input order.
//
// Only selected lines are held to the length limit; longer lines outside the
// range are skipped. Lines written before a failure are flushed to w.
func (f *LineFilter) Run(ctx context.Context, r io.Reader, w io.Writer) (result FilterResult, err error) {
	in := bufio.NewReaderSize(r, initialBufferSize)
	out := bufio.NewWriter(w)
	defer func() {
		if flushErr := out.Flush(); flushErr != nil {
			err = errors.Join(err, fmt.Errorf("flush output: %w", flushErr))
		}
	}()

	logger := f.logger.With("spec", f.spec.String())
	buf := make([]byte, 0, min(initialBufferSize, f.maxLineBytes+2))

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		line, tooLong, readErr := readLine(in, buf, f.maxLineBytes)
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return result, fmt.Errorf("read line %d: %w", result.LinesRead+1, readErr)
		}
		buf = line[:0]
		result.LinesRead++

		if !f.matches(result.LinesRead) {
			continue
		}
		if tooLong {
			return result, fmt.Errorf("%w: line %d is over %d bytes", ErrLineTooLong, result.LinesRead, f.maxLineBytes)
		}
		if err := f.write(out, result.LinesRead, line); err != nil {
			return result, fmt.Errorf("write line %d: %w", result.LinesRead, err)
		}
		result.LinesWritten++
	}

	if result.LinesRead < uint64(f.spec.Start()) {
		logger.Info("input ended before range", "lines_read", result.LinesRead)
	}
	logger.DebugContext(ctx, "filter finished",
		"lines_read", result.LinesRead,
		"lines_written", result.LinesWritten,
	)

	return result, nil
}

// readLine returns the next line from in without its "\n" or "\r\n"
// terminator, reusing buf. At most limit+2 bytes are kept; tooLong reports a
// line whose content exceeds limit, in which case line is truncated. io.EOF
// is returned only when no bytes remain.
func readLine(in *bufio.Reader, buf []byte, limit int) (line []byte, tooLong bool, err error) {
	line = buf[:0]
	seen := false

	for {
		chunk, err := in.ReadSlice('\n')
		seen = seen || len(chunk) > 0

		room := limit + 2 - len(line)
		if len(chunk) > room {
			tooLong = true
			chunk = chunk[:max(room, 0)]
		}
		line = append(line, chunk...)

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && (!errors.Is(err, io.EOF) || !seen) {
			return line, tooLong, err
		}
		break
	}

	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return line, tooLong || len(line) > limit, nil
}

// Line numbers past the uint32 range never match.
func (f *LineFilter) matches(n uint64) bool {
	return n <= math.MaxUint32 && f.spec.LineIn(uint32(n))
}

func (f *LineFilter) write(out *bufio.Writer, n uint64, line []byte) error {
	if f.lineNumbers {
		if _, err := out.WriteString(strconv.FormatUint(n, 10)); err != nil {
			return err
		}
		if err := out.WriteByte('\t'); err != nil {
			return err
		}
	}
	if _, err := out.Write(line); err != nil {
		return err
	}
	return out.WriteByte('\n')
}
