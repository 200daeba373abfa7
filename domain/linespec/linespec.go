// Package linespec parses line-range specifications and answers whether a
// 1-based line number falls inside them.
package linespec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors.
var (
	// ErrInvalidSpec indicates a fragment that is not a base-10 uint32.
	ErrInvalidSpec = errors.New("invalid line spec")
	// ErrInvalidStart indicates a start line of zero.
	ErrInvalidStart = errors.New("line numbers are 1-based")
	// ErrInvalidRange indicates an end line before the start line.
	ErrInvalidRange = errors.New("end line before start line")
)

const separator = ":"

// LineSpec is an inclusive range of 1-based line numbers. Immutable value
// object; the zero value matches nothing and is only produced on error.
type LineSpec struct {
	start uint32
	end   uint32
}

// Parse builds a LineSpec from "N" or "N:M".
//
// Fragments after the second are ignored, so "1:2:3" is the same as "1:2".
func Parse(spec string) (LineSpec, error) {
	fragments := strings.Split(spec, separator)

	start, err := parseNumber(fragments[0])
	if err != nil {
		return LineSpec{}, fmt.Errorf("%w: %q", err, spec)
	}

	end := start
	if len(fragments) > 1 {
		end, err = parseNumber(fragments[1])
		if err != nil {
			return LineSpec{}, fmt.Errorf("%w: %q", err, spec)
		}
	}

	return newLineSpec(start, end)
}

func newLineSpec(start, end uint32) (LineSpec, error) {
	if start == 0 {
		return LineSpec{}, fmt.Errorf("%w: %d:%d", ErrInvalidStart, start, end)
	}
	if end < start {
		return LineSpec{}, fmt.Errorf("%w: %d:%d", ErrInvalidRange, start, end)
	}
	return LineSpec{start: start, end: end}, nil
}

func parseNumber(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, ErrInvalidSpec
	}
	return uint32(n), nil
}

// Start returns the first line in the range.
func (s LineSpec) Start() uint32 { return s.start }

// End returns the last line in the range.
func (s LineSpec) End() uint32 { return s.end }

// LineIn reports whether lineNumber lies within the range.
func (s LineSpec) LineIn(lineNumber uint32) bool {
	return s.start != 0 && lineNumber >= s.start && lineNumber <= s.end
}

// String renders the spec in the form Parse accepts.
func (s LineSpec) String() string {
	if s.start == s.end {
		return strconv.FormatUint(uint64(s.start), 10)
	}
	return strconv.FormatUint(uint64(s.start), 10) + separator + strconv.FormatUint(uint64(s.end), 10)
}
