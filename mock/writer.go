package mock

import (
	"context"

	"github.com/cassieopeanuts/scrabtopus"
)

var _ scrabtopus.Writer = (*Writer)(nil)

// Writer is a mock implementation of scrabtopus.Writer.
type Writer struct {
	WriteFn func(ctx context.Context, data *scrabtopus.ScrapedData) error
}

func (w *Writer) Write(ctx context.Context, data *scrabtopus.ScrapedData) error {
	return w.WriteFn(ctx, data)
}
