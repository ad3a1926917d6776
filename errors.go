package emoscope

import (
	"errors"
	"fmt"
)

// ErrNoInput is returned by presentation layers when there is nothing to analyze.
// Analyze itself never returns it: empty input yields an empty result.
var ErrNoInput = errors.New("no input: provide text, a file, or pipe to stdin")

// ModelLoadError reports that a classifier backend could not be initialized.
// It is fatal for the session; the Provider never retries the load.
type ModelLoadError struct {
	Model string
	Err   error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("load model %q: %v", e.Model, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

// ClassificationError reports that a batched classifier call failed.
// The classifier handle stays valid; a later call may succeed.
type ClassificationError struct {
	Batch int // Number of texts in the failed batch
	Err   error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classify batch of %d: %v", e.Batch, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// IsModelLoadError reports whether err is or wraps a ModelLoadError.
func IsModelLoadError(err error) bool {
	var target *ModelLoadError
	return errors.As(err, &target)
}

// IsClassificationError reports whether err is or wraps a ClassificationError.
func IsClassificationError(err error) bool {
	var target *ClassificationError
	return errors.As(err, &target)
}
