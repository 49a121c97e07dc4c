package analyzer

import (
	"sort"
)

// Entry is one key with its count.
type Entry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Counter counts occurrences per key and remembers first-seen order.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Inc adds one to key.
func (c *Counter) Inc(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Get returns the count for key.
func (c *Counter) Get(key string) int {
	if c == nil {
		return 0
	}
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Sum returns the total of all counts.
func (c *Counter) Sum() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Map returns a copy of the counts. A nil counter yields an empty map.
func (c *Counter) Map() map[string]int {
	m := make(map[string]int, c.Len())
	if c == nil {
		return m
	}
	for k, v := range c.counts {
		m[k] = v
	}
	return m
}

// Top returns up to n entries by count descending.
// Equal counts keep first-seen order. n <= 0 returns every entry.
func (c *Counter) Top(n int) []Entry {
	entries := c.entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// SortedByKey returns every entry with keys in ascending order.
func (c *Counter) SortedByKey() []Entry {
	entries := c.entries()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}

func (c *Counter) entries() []Entry {
	entries := make([]Entry, 0, c.Len())
	if c == nil {
		return entries
	}
	for _, key := range c.order {
		entries = append(entries, Entry{Key: key, Count: c.counts[key]})
	}
	return entries
}
