// Package bloom provides the probabilistic visited-URL prefilter used by
// the crawl frontier.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a Bloom filter over URL strings. A negative answer is exact;
// a positive answer must be confirmed against an exact set.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected URLs at the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Test reports whether url may have been added.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestOrAdd reports whether url may have been added before, and adds it.
func (f *Filter) TestOrAdd(url string) bool {
	return f.f.TestOrAddString(url)
}
