package mock

import "github.com/fwojciec/emoscope"

// Compile-time interface verification.
var _ emoscope.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of emoscope.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}
