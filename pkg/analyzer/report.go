package analyzer

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ratePlaces is the number of decimal places kept in percentages.
const ratePlaces = 2

var hundred = decimal.NewFromInt(100)

// Rate is a percentage of all processed records.
type Rate struct {
	Count   int             `json:"count"`
	Total   int             `json:"total"`
	Percent decimal.Decimal `json:"percent"`
}

// NewRate computes count/total*100 rounded half away from zero to two places.
// Returns ErrDivisionByZero when total is zero.
func NewRate(count, total int) (*Rate, error) {
	if total == 0 {
		return nil, ErrDivisionByZero
	}
	pct := decimal.NewFromInt(int64(count)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(hundred).
		Round(ratePlaces)
	return &Rate{Count: count, Total: total, Percent: pct}, nil
}

// String formats the rate as "77.78%".
func (r *Rate) String() string {
	return r.Percent.StringFixed(ratePlaces) + "%"
}

// AddressEntry is one ranked client address with its own ranked pages.
type AddressEntry struct {
	Address string  `json:"address"`
	Count   int     `json:"count"`
	Pages   []Entry `json:"pages"`
}

// Section holds the result of one statistic.
// Exactly one of Entries, Addresses or Rate is meaningful, depending on Statistic.
type Section struct {
	Statistic Statistic      `json:"statistic"`
	Entries   []Entry        `json:"entries,omitempty"`
	Addresses []AddressEntry `json:"addresses,omitempty"`
	Rate      *Rate          `json:"rate,omitempty"`
}

// Report is the ordered set of computed statistics.
type Report struct {
	Total    int       `json:"total"`
	Sections []Section `json:"sections"`
}

// Section returns the section for stat, if present.
func (r *Report) Section(stat Statistic) (*Section, bool) {
	for i := range r.Sections {
		if r.Sections[i].Statistic == stat {
			return &r.Sections[i], true
		}
	}
	return nil, false
}

// ReportOption configures report generation.
type ReportOption func(*reportSettings)

type reportSettings struct {
	skipUndefinedRates bool
}

// SkipUndefinedRates omits percentage sections that would divide by zero
// instead of failing the report.
func SkipUndefinedRates() ReportOption {
	return func(s *reportSettings) {
		s.skipUndefinedRates = true
	}
}

// Report ranks and collects the enabled statistics in report order.
// It does not modify the engine, so repeated calls return equal reports.
// If a percentage is enabled and no record was processed, the returned error
// matches ErrDivisionByZero unless SkipUndefinedRates is given.
func (e *Engine) Report(opts ...ReportOption) (*Report, error) {
	var settings reportSettings
	for _, opt := range opts {
		opt(&settings)
	}

	report := &Report{Total: e.total}
	var errs []error

	for _, stat := range e.selection.Enabled() {
		section := Section{Statistic: stat}

		switch stat {
		case StatTimeStat:
			section.Entries = e.minuteCounts.SortedByKey()
		case StatTop10:
			section.Entries = e.pathCounts.Top(e.topLimit)
		case StatTop10Unsuccess:
			section.Entries = e.failedPathCounts.Top(e.topLimit)
		case StatTop10IPs:
			section.Addresses = e.topAddresses()
		case StatSuccess, StatUnsuccess:
			count := e.successCount
			if stat == StatUnsuccess {
				count = e.failureCount
			}
			rate, err := NewRate(count, e.total)
			if err != nil {
				if settings.skipUndefinedRates {
					continue
				}
				errs = append(errs, &UndefinedRateError{Statistic: stat})
				continue
			}
			section.Rate = rate
		}

		report.Sections = append(report.Sections, section)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return report, nil
}

func (e *Engine) topAddresses() []AddressEntry {
	top := e.addressCounts.Top(e.topLimit)
	addresses := make([]AddressEntry, 0, len(top))
	for _, entry := range top {
		addresses = append(addresses, AddressEntry{
			Address: entry.Key,
			Count:   entry.Count,
			Pages:   e.addressPathCounts[entry.Key].Top(e.topLimit),
		})
	}
	return addresses
}
