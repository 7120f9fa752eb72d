package mock

import (
	"context"

	"github.com/cassieopeanuts/scrabtopus"
)

var _ scrabtopus.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of scrabtopus.URLFrontier.
type URLFrontier struct {
	PushFn    func(url string) bool
	PopFn     func() (string, bool)
	VisitFn   func(url string)
	VisitedFn func(url string) bool
	LenFn     func() int
}

func (f *URLFrontier) Push(url string) bool {
	return f.PushFn(url)
}

func (f *URLFrontier) Pop() (string, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Visit(url string) {
	f.VisitFn(url)
}

func (f *URLFrontier) Visited(url string) bool {
	return f.VisitedFn(url)
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

var _ scrabtopus.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of scrabtopus.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
