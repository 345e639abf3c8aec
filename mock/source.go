package mock

import (
	"context"

	"github.com/fwojciec/docview"
)

var _ docview.Source = (*Source)(nil)

// Source is a mock implementation of docview.Source.
type Source struct {
	FetchFn func(ctx context.Context, name string) (string, error)
}

func (s *Source) Fetch(ctx context.Context, name string) (string, error) {
	return s.FetchFn(ctx, name)
}
