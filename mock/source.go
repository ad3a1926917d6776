package mock

import (
	"context"

	"github.com/fwojciec/emoscope"
)

// Compile-time interface verification.
var _ emoscope.MessageSource = (*MessageSource)(nil)

// MessageSource is a mock implementation of emoscope.MessageSource.
type MessageSource struct {
	MessagesFn func(ctx context.Context) ([]string, error)
}

func (s *MessageSource) Messages(ctx context.Context) ([]string, error) {
	return s.MessagesFn(ctx)
}
