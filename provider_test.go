package emoscope_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/emoscope"
	"github.com/fwojciec/emoscope/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestProvider_Get(t *testing.T) {
	t.Parallel()

	t.Run("concurrent callers share one load", func(t *testing.T) {
		t.Parallel()

		var loads atomic.Int32
		release := make(chan struct{})
		inner := &mock.Classifier{}
		loader := &mock.Loader{
			LoadFn: func(_ context.Context) (emoscope.Classifier, error) {
				loads.Add(1)
				<-release
				return inner, nil
			},
		}
		p := emoscope.NewProvider(loader)

		const callers = 16
		handles := make([]emoscope.Classifier, callers)
		errs := make([]error, callers)
		var started, wg sync.WaitGroup
		started.Add(callers)
		wg.Add(callers)
		for i := range callers {
			go func() {
				defer wg.Done()
				started.Done()
				handles[i], errs[i] = p.Get(context.Background())
			}()
		}
		started.Wait()
		time.Sleep(10 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), loads.Load())
		for i := range callers {
			require.NoError(t, errs[i])
			assert.Same(t, handles[0], handles[i])
		}
		assert.True(t, p.Loaded())
	})

	t.Run("later calls reuse the handle", func(t *testing.T) {
		t.Parallel()

		var loads atomic.Int32
		loader := &mock.Loader{
			LoadFn: func(_ context.Context) (emoscope.Classifier, error) {
				loads.Add(1)
				return &mock.Classifier{}, nil
			},
		}
		p := emoscope.NewProvider(loader)

		first, err := p.Get(context.Background())
		require.NoError(t, err)
		second, err := p.Get(context.Background())
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, int32(1), loads.Load())
	})

	t.Run("memoizes load failure", func(t *testing.T) {
		t.Parallel()

		var loads atomic.Int32
		loadErr := errors.New("weights missing")
		loader := &mock.Loader{
			LoadFn: func(_ context.Context) (emoscope.Classifier, error) {
				loads.Add(1)
				return nil, loadErr
			},
			ModelFn: func() string { return "emo-model" },
		}
		p := emoscope.NewProvider(loader)

		_, err1 := p.Get(context.Background())
		_, err2 := p.Get(context.Background())

		require.Error(t, err1)
		var loadFailure *emoscope.ModelLoadError
		require.ErrorAs(t, err1, &loadFailure)
		assert.Equal(t, "emo-model", loadFailure.Model)
		assert.ErrorIs(t, err1, loadErr)
		assert.Equal(t, err1, err2)
		assert.Equal(t, int32(1), loads.Load())
		assert.False(t, p.Loaded())
	})

	t.Run("reset allows a new load", func(t *testing.T) {
		t.Parallel()

		var loads atomic.Int32
		loader := &mock.Loader{
			LoadFn: func(_ context.Context) (emoscope.Classifier, error) {
				if loads.Add(1) == 1 {
					return nil, errors.New("first try fails")
				}
				return &mock.Classifier{}, nil
			},
		}
		p := emoscope.NewProvider(loader)

		_, err := p.Get(context.Background())
		require.Error(t, err)

		p.Reset()
		h, err := p.Get(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, h)
		assert.Equal(t, int32(2), loads.Load())
	})

	t.Run("canceled caller does not poison the load", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		var loads atomic.Int32
		loader := &mock.Loader{
			LoadFn: func(ctx context.Context) (emoscope.Classifier, error) {
				loads.Add(1)
				select {
				case <-release:
					return &mock.Classifier{}, nil
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			},
		}
		p := emoscope.NewProvider(loader)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			_, err := p.Get(ctx)
			done <- err
		}()
		for loads.Load() == 0 {
			time.Sleep(time.Millisecond)
		}
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)

		close(release)
		h, err := p.Get(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, h)
		assert.Equal(t, int32(1), loads.Load())
	})

	t.Run("load timeout produces model load error", func(t *testing.T) {
		t.Parallel()

		loader := &mock.Loader{
			LoadFn: func(ctx context.Context) (emoscope.Classifier, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}
		p := emoscope.NewProvider(loader, emoscope.WithLoadTimeout(10*time.Millisecond))

		_, err := p.Get(context.Background())

		assert.True(t, emoscope.IsModelLoadError(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestProvider_HandleSkipsEmptyBatch(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	inner := &mock.Classifier{
		ClassifyFn: func(_ context.Context, _ []string) ([]emoscope.ScoreDistribution, error) {
			calls.Add(1)
			return nil, errors.New("should not be called")
		},
	}
	p := providerFor(inner)

	h, err := p.Get(context.Background())
	require.NoError(t, err)
	out, err := h.Classify(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Equal(t, int32(0), calls.Load())
}

func TestProvider_Model(t *testing.T) {
	t.Parallel()

	p := emoscope.NewProvider(&mock.Loader{ModelFn: func() string { return "custom/model" }})

	assert.Equal(t, "custom/model", p.Model())
	assert.False(t, p.Loaded())
}
