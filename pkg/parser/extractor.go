package parser

import (
	"errors"
	"regexp"
	"strings"
)

// combinedPattern matches `<address> - - [<timestamp> <tz>] "<method> <target> <protocol>" <status> <size>`.
var combinedPattern = regexp.MustCompile(`^([0-9.]+)\s+-\s+-\s+\[(\S+)\s+\S+\]\s+"\S+\s+(\S+)\s+\S+"\s+(\d+)\s+\d+$`)

// minuteKeyLen is the length of "DD/Mon/YYYY:HH:MM".
const minuteKeyLen = 17

// ErrUnparsable is matched by every ParseError.
var ErrUnparsable = errors.New("unparsable line")

// ParseError reports a line that does not have the access log record shape.
type ParseError struct {
	Line string
}

func (e *ParseError) Error() string {
	return "unable to parse string " + e.Line
}

// Is makes errors.Is(err, ErrUnparsable) hold for any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrUnparsable
}

// Extractor turns raw access log lines into Records.
type Extractor struct {
	pattern    *regexp.Regexp
	stripQuery bool
}

// NewExtractor creates an extractor. When stripQuery is set, everything from
// the first '?' of the request target is dropped from Record.Path.
func NewExtractor(stripQuery bool) *Extractor {
	return &Extractor{
		pattern:    combinedPattern,
		stripQuery: stripQuery,
	}
}

// StripQuery reports whether query strings are removed from paths.
func (e *Extractor) StripQuery() bool {
	return e.stripQuery
}

// Extract parses one line. Surrounding whitespace is ignored.
// Returns a *ParseError if the line does not match the record shape.
func (e *Extractor) Extract(line string) (*Record, error) {
	matches := e.pattern.FindStringSubmatch(strings.TrimSpace(line))
	if matches == nil {
		return nil, &ParseError{Line: line}
	}

	path := matches[3]
	if e.stripQuery {
		if i := strings.IndexByte(path, '?'); i >= 0 {
			path = path[:i]
		}
	}

	minute := matches[2]
	if len(minute) > minuteKeyLen {
		minute = minute[:minuteKeyLen]
	}

	return &Record{
		Address: matches[1],
		Minute:  minute,
		Path:    path,
		Status:  ClassifyStatus(matches[4]),
	}, nil
}

// ClassifyStatus returns StatusSuccess iff code starts with '2' or '3'.
// Any other input, including the empty string, is a failure.
func ClassifyStatus(code string) StatusClass {
	if code == "" {
		return StatusFailure
	}
	switch code[0] {
	case '2', '3':
		return StatusSuccess
	default:
		return StatusFailure
	}
}
