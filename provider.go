package emoscope

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Provider lazily loads a classifier once and hands out the same handle to
// every caller for the lifetime of the process.
//
// Concurrent first calls share a single load. The outcome of that load,
// success or failure, is memoized: a failed load keeps returning the same
// *ModelLoadError until Reset is called.
type Provider struct {
	loader      Loader
	logger      *zap.Logger
	loadTimeout time.Duration

	group singleflight.Group

	mu     sync.RWMutex
	handle Classifier
	err    error
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithLogger sets the logger used to report load progress.
func WithLogger(logger *zap.Logger) ProviderOption {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithLoadTimeout bounds how long a single load may take. Zero means no bound.
func WithLoadTimeout(d time.Duration) ProviderOption {
	return func(p *Provider) {
		p.loadTimeout = d
	}
}

// NewProvider creates a Provider for the given loader. No loading happens
// until the first call to Get.
func NewProvider(loader Loader, opts ...ProviderOption) *Provider {
	p := &Provider{
		loader: loader,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Get returns the shared classifier handle, loading it on first use.
//
// The load runs detached from the caller's cancellation so that one caller
// giving up does not poison the handle for everyone else. A caller whose
// context ends while waiting gets ctx.Err() and the load keeps going.
func (p *Provider) Get(ctx context.Context) (Classifier, error) {
	if h, err, done := p.cached(); done {
		return h, err
	}

	ch := p.group.DoChan("load", func() (any, error) {
		return p.load(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(Classifier), nil
	}
}

// Loaded reports whether a handle has been successfully loaded.
func (p *Provider) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.handle != nil
}

// Model returns the model identifier of the underlying loader.
func (p *Provider) Model() string {
	return p.loader.Model()
}

// Reset forgets the memoized handle or load error. The next Get loads again.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handle = nil
	p.err = nil
}

func (p *Provider) cached() (Classifier, error, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.handle != nil {
		return p.handle, nil, true
	}
	if p.err != nil {
		return nil, p.err, true
	}
	return nil, nil, false
}

func (p *Provider) load(ctx context.Context) (Classifier, error) {
	// A caller that lost the race to the lock may already see the result.
	if h, err, done := p.cached(); done {
		return h, err
	}

	if p.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.loadTimeout)
		defer cancel()
	}

	model := p.loader.Model()
	p.logger.Info("Loading classifier", zap.String("model", model))
	start := time.Now()

	inner, err := p.loader.Load(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.err = &ModelLoadError{Model: model, Err: err}
		p.logger.Error("Classifier load failed",
			zap.String("model", model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, p.err
	}

	p.handle = &handle{inner: inner}
	p.logger.Info("Classifier loaded",
		zap.String("model", model),
		zap.Duration("elapsed", time.Since(start)))
	return p.handle, nil
}

// handle is the Classifier handed out by a Provider.
type handle struct {
	inner Classifier
}

// Classify short-circuits empty batches so backends never see them.
func (h *handle) Classify(ctx context.Context, texts []string) ([]ScoreDistribution, error) {
	if len(texts) == 0 {
		return []ScoreDistribution{}, nil
	}
	return h.inner.Classify(ctx, texts)
}
