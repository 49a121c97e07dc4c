package analyzer

import (
	"github.com/ccollicutt/accessstat/pkg/parser"
)

// DefaultTopLimit is the number of entries kept by the top-N statistics.
const DefaultTopLimit = 10

// Engine accumulates statistics over a stream of records.
// Counters belonging to statistics that are not enabled stay nil.
// An Engine is not safe for concurrent use.
type Engine struct {
	selection Selection
	topLimit  int

	total        int
	successCount int
	failureCount int

	pathCounts        *Counter
	failedPathCounts  *Counter
	addressCounts     *Counter
	addressPathCounts map[string]*Counter
	minuteCounts      *Counter
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithTopLimit sets how many entries the top-N statistics report.
func WithTopLimit(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.topLimit = n
		}
	}
}

// NewEngine creates an engine computing the selected statistics.
func NewEngine(sel Selection, opts ...EngineOption) *Engine {
	e := &Engine{
		selection: sel,
		topLimit:  DefaultTopLimit,
	}
	for _, opt := range opts {
		opt(e)
	}

	if sel.Top10 {
		e.pathCounts = NewCounter()
	}
	if sel.Top10Unsuccess {
		e.failedPathCounts = NewCounter()
	}
	if sel.Top10IPs {
		e.addressCounts = NewCounter()
		e.addressPathCounts = make(map[string]*Counter)
	}
	if sel.TimeStat {
		e.minuteCounts = NewCounter()
	}

	return e
}

// Process adds one record to the statistics.
func (e *Engine) Process(rec *parser.Record) {
	e.total++

	if e.addressCounts != nil {
		e.addressCounts.Inc(rec.Address)
		pages, ok := e.addressPathCounts[rec.Address]
		if !ok {
			pages = NewCounter()
			e.addressPathCounts[rec.Address] = pages
		}
		pages.Inc(rec.Path)
	}

	if e.pathCounts != nil {
		e.pathCounts.Inc(rec.Path)
	}

	if e.failedPathCounts != nil && !rec.Success() {
		e.failedPathCounts.Inc(rec.Path)
	}

	if e.selection.needsStatusCounts() {
		if rec.Success() {
			e.successCount++
		} else {
			e.failureCount++
		}
	}

	if e.minuteCounts != nil {
		e.minuteCounts.Inc(rec.Minute)
	}
}

// Selection returns the enabled statistics.
func (e *Engine) Selection() Selection {
	return e.selection
}

// TopLimit returns the top-N size.
func (e *Engine) TopLimit() int {
	return e.topLimit
}

// Total returns the number of processed records.
func (e *Engine) Total() int {
	return e.total
}

// SuccessCount returns the number of 2xx/3xx records.
// It stays zero unless success or unsuccess is enabled.
func (e *Engine) SuccessCount() int {
	return e.successCount
}

// FailureCount returns the number of records that are not 2xx/3xx.
// It stays zero unless success or unsuccess is enabled.
func (e *Engine) FailureCount() int {
	return e.failureCount
}

// PathCounts returns a copy of the per-path request counts.
func (e *Engine) PathCounts() map[string]int {
	return e.pathCounts.Map()
}

// FailedPathCounts returns a copy of the per-path failed request counts.
func (e *Engine) FailedPathCounts() map[string]int {
	return e.failedPathCounts.Map()
}

// AddressCounts returns a copy of the per-address request counts.
func (e *Engine) AddressCounts() map[string]int {
	return e.addressCounts.Map()
}

// AddressPathCounts returns a copy of the per-address, per-path request counts.
func (e *Engine) AddressPathCounts() map[string]map[string]int {
	m := make(map[string]map[string]int, len(e.addressPathCounts))
	for addr, pages := range e.addressPathCounts {
		m[addr] = pages.Map()
	}
	return m
}

// MinuteCounts returns a copy of the per-minute request counts.
func (e *Engine) MinuteCounts() map[string]int {
	return e.minuteCounts.Map()
}
