// Package analyzer provides the access log aggregation engine.
package analyzer

import (
	"fmt"
	"strings"
)

// Statistic names one aggregate computation that can be enabled independently.
type Statistic string

const (
	// StatTimeStat counts requests per minute.
	StatTimeStat Statistic = "timestat"
	// StatTop10 ranks requested pages.
	StatTop10 Statistic = "top10"
	// StatTop10Unsuccess ranks pages of failed requests.
	StatTop10Unsuccess Statistic = "top10unsuccess"
	// StatTop10IPs ranks client addresses, with their own top pages.
	StatTop10IPs Statistic = "top10ips"
	// StatSuccess is the percentage of 2xx/3xx requests.
	StatSuccess Statistic = "success"
	// StatUnsuccess is the percentage of all other requests.
	StatUnsuccess Statistic = "unsuccess"
)

// ReportOrder is the fixed order of report sections.
var ReportOrder = []Statistic{
	StatTimeStat,
	StatTop10,
	StatTop10Unsuccess,
	StatTop10IPs,
	StatSuccess,
	StatUnsuccess,
}

// Descriptions holds a one-line description per statistic.
var Descriptions = map[Statistic]string{
	StatTimeStat:       "total number of requests made every minute",
	StatTop10:          "top requested pages",
	StatTop10Unsuccess: "top unsuccessful page requests",
	StatTop10IPs:       "top IPs making the most requests, with their top pages",
	StatSuccess:        "percentage of successful requests (2xx or 3xx)",
	StatUnsuccess:      "percentage of unsuccessful requests (not 2xx or 3xx)",
}

// UnknownStatisticError is returned for a statistic name that does not exist.
type UnknownStatisticError struct {
	Name string
}

func (e *UnknownStatisticError) Error() string {
	return fmt.Sprintf("unknown statistic %q", e.Name)
}

// Selection records which statistics are enabled.
type Selection struct {
	TimeStat       bool
	Top10          bool
	Top10Unsuccess bool
	Top10IPs       bool
	Success        bool
	Unsuccess      bool
}

// FullSelection enables every statistic.
func FullSelection() Selection {
	return Selection{
		TimeStat:       true,
		Top10:          true,
		Top10Unsuccess: true,
		Top10IPs:       true,
		Success:        true,
		Unsuccess:      true,
	}
}

// ParseStatistics builds a Selection from statistic names.
// Order and duplicates do not matter; blank names are ignored.
func ParseStatistics(names []string) (Selection, error) {
	var sel Selection
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !sel.set(Statistic(name)) {
			return Selection{}, &UnknownStatisticError{Name: name}
		}
	}
	return sel, nil
}

// ParseStatisticList parses a comma separated list such as "top10,success".
func ParseStatisticList(list string) (Selection, error) {
	return ParseStatistics(strings.Split(list, ","))
}

func (s *Selection) set(stat Statistic) bool {
	switch stat {
	case StatTimeStat:
		s.TimeStat = true
	case StatTop10:
		s.Top10 = true
	case StatTop10Unsuccess:
		s.Top10Unsuccess = true
	case StatTop10IPs:
		s.Top10IPs = true
	case StatSuccess:
		s.Success = true
	case StatUnsuccess:
		s.Unsuccess = true
	default:
		return false
	}
	return true
}

// Has reports whether stat is enabled.
func (s Selection) Has(stat Statistic) bool {
	switch stat {
	case StatTimeStat:
		return s.TimeStat
	case StatTop10:
		return s.Top10
	case StatTop10Unsuccess:
		return s.Top10Unsuccess
	case StatTop10IPs:
		return s.Top10IPs
	case StatSuccess:
		return s.Success
	case StatUnsuccess:
		return s.Unsuccess
	default:
		return false
	}
}

// Enabled returns the enabled statistics in report order.
func (s Selection) Enabled() []Statistic {
	var stats []Statistic
	for _, stat := range ReportOrder {
		if s.Has(stat) {
			stats = append(stats, stat)
		}
	}
	return stats
}

// Empty reports whether no statistic is enabled.
func (s Selection) Empty() bool {
	return len(s.Enabled()) == 0
}

// String returns the enabled statistics as a comma separated list.
func (s Selection) String() string {
	enabled := s.Enabled()
	names := make([]string, len(enabled))
	for i, stat := range enabled {
		names[i] = string(stat)
	}
	return strings.Join(names, ",")
}

// needsStatusCounts reports whether success/failure totals are maintained.
func (s Selection) needsStatusCounts() bool {
	return s.Success || s.Unsuccess
}
