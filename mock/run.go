package mock

import (
	"context"

	"github.com/cassieopeanuts/scrabtopus"
)

var _ scrabtopus.RunService = (*RunService)(nil)

// RunService is a mock implementation of scrabtopus.RunService.
type RunService struct {
	FindRunsFn    func(ctx context.Context, filter scrabtopus.RunFilter) ([]*scrabtopus.Run, error)
	FindRunDataFn func(ctx context.Context, id string) (*scrabtopus.ScrapedData, error)
}

func (s *RunService) FindRuns(ctx context.Context, filter scrabtopus.RunFilter) ([]*scrabtopus.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FindRunData(ctx context.Context, id string) (*scrabtopus.ScrapedData, error) {
	return s.FindRunDataFn(ctx, id)
}
