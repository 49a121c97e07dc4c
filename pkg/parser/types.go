// Package parser provides access log reading and line extraction.
package parser

// StatusClass is the success/failure class of an HTTP status code.
type StatusClass int

const (
	// StatusFailure covers every code whose leading digit is not 2 or 3.
	StatusFailure StatusClass = iota
	// StatusSuccess covers 2xx and 3xx codes.
	StatusSuccess
)

// String returns the class name used in logs and metrics labels.
func (c StatusClass) String() string {
	if c == StatusSuccess {
		return "success"
	}
	return "failure"
}

// Record is the set of fields extracted from one access log line.
type Record struct {
	// Address is the client IP token.
	Address string

	// Minute is the timestamp truncated to minutes (DD/Mon/YYYY:HH:MM).
	// It is an opaque grouping key.
	Minute string

	// Path is the request target, without its query string when stripping is enabled.
	Path string

	// Status is the class of the response code.
	Status StatusClass
}

// Success reports whether the record's status is 2xx or 3xx.
func (r *Record) Success() bool {
	return r.Status == StatusSuccess
}

// LogLine is a raw line read from a source, before extraction.
type LogLine struct {
	// Content is the raw line text without the trailing newline.
	Content string

	// Source is the file path (or stream name) this line came from.
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int
}
