package assets

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/brushcat/internal/engine/model"
	"github.com/Faultbox/brushcat/internal/engine/texture"
	"github.com/Faultbox/brushcat/internal/logger"
)

// Names are the asset names the scene is built from.
type Names struct {
	Model   string
	Brush   string
	Stencil string
	Pattern string
}

// Bundle holds every decoded scene asset. A Bundle is only produced once
// all of its members resolved.
type Bundle struct {
	Model   *model.Model
	Brush   image.Image
	Stencil image.Image
	Pattern image.Image
}

// Result is the outcome of an asynchronous load.
type Result struct {
	Bundle *Bundle
	Err    error
}

// Loader fetches and decodes the scene assets.
type Loader struct {
	fetcher Fetcher
	names   Names
}

// NewLoader creates a loader reading names through f.
func NewLoader(f Fetcher, names Names) *Loader {
	return &Loader{fetcher: f, names: names}
}

// Load fetches and decodes all four assets concurrently. It returns the
// first failure, cancelling the remaining fetches.
func (l *Loader) Load(ctx context.Context) (*Bundle, error) {
	var b Bundle
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := l.fetch(ctx, l.names.Model)
		if err != nil {
			return err
		}
		m, err := model.Decode(data)
		if err != nil {
			return fmt.Errorf("model %s: %w", l.names.Model, err)
		}
		b.Model = m
		return nil
	})
	g.Go(l.image(ctx, l.names.Brush, &b.Brush))
	g.Go(l.image(ctx, l.names.Stencil, &b.Stencil))
	g.Go(l.image(ctx, l.names.Pattern, &b.Pattern))

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Start runs Load in the background. The returned channel receives exactly
// one Result and is then closed.
func (l *Loader) Start(ctx context.Context) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		b, err := l.Load(ctx)
		out <- Result{Bundle: b, Err: err}
	}()
	return out
}

func (l *Loader) image(ctx context.Context, name string, dst *image.Image) func() error {
	return func() error {
		data, err := l.fetch(ctx, name)
		if err != nil {
			return err
		}
		img, err := texture.Decode(data)
		if err != nil {
			return fmt.Errorf("image %s: %w", name, err)
		}
		*dst = img
		return nil
	}
}

func (l *Loader) fetch(ctx context.Context, name string) ([]byte, error) {
	start := time.Now()
	data, err := l.fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	logger.Debug("asset fetched",
		zap.String("name", name),
		zap.Int("bytes", len(data)),
		zap.Duration("took", time.Since(start)),
	)
	return data, nil
}
