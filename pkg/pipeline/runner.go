package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/travellermap/hexmap/pkg/cache"
	"github.com/travellermap/hexmap/pkg/observability"
	"github.com/travellermap/hexmap/pkg/sector"
	"github.com/travellermap/hexmap/pkg/style"
)

// Runner renders with a tile cache in front of the renderer.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
	Hooks  observability.RenderHooks
	// TTL is the lifetime of cached tiles. Zero uses DefaultTTL.
	TTL time.Duration
	// CacheName labels cache events reported to the hooks.
	CacheName string
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, log output is discarded.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
		Hooks:  observability.Render(),
	}
}

// Render returns the image for opts, from the cache when possible. Cache
// failures are logged and never fail the render.
func (r *Runner) Render(ctx context.Context, p sector.Provider, opts Options) (*Result, error) {
	c, logger, hooks := r.cache(), r.logger(), r.hooks()
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := opts.resolveFormat(); err != nil {
		return nil, err
	}
	format := style.Format(opts.Format)
	key := opts.CacheKey()
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := c.Get(ctx, key)
		switch {
		case err != nil:
			cacheHooks.OnCacheError(ctx, r.CacheName, err)
			logger.Warn("cache read failed", "key", key, "error", err)
		case hit:
			cacheHooks.OnCacheHit(ctx, r.CacheName)
			logger.Debug("cache hit", "key", key)
			return &Result{Data: data, Format: format, ContentType: format.ContentType(), Cached: true}, nil
		default:
			cacheHooks.OnCacheMiss(ctx, r.CacheName)
			logger.Debug("cache miss", "key", key)
		}
	}

	hooks.OnTileStart(ctx, opts.Style, opts.Scale)
	start := time.Now()
	result, err := Render(ctx, p, opts)
	if err != nil {
		hooks.OnTileComplete(ctx, opts.Style, opts.Scale, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnTileComplete(ctx, opts.Style, opts.Scale, len(result.Data), result.Duration, nil)

	logger.Info("rendered",
		"kind", opts.kind(),
		"style", opts.Style,
		"scale", opts.Scale,
		"format", result.Format,
		"bytes", len(result.Data),
		"duration", result.Duration)

	if err := c.Set(ctx, key, result.Data, r.ttl()); err != nil {
		cacheHooks.OnCacheError(ctx, r.CacheName, err)
		logger.Warn("cache write failed", "key", key, "error", err)
	} else {
		cacheHooks.OnCacheSet(ctx, r.CacheName, len(result.Data))
	}
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cache() cache.Cache {
	if r.Cache == nil {
		return cache.NewNullCache()
	}
	return r.Cache
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return r.Logger
}

func (r *Runner) hooks() observability.RenderHooks {
	if r.Hooks == nil {
		return observability.Render()
	}
	return r.Hooks
}

func (r *Runner) ttl() time.Duration {
	if r.TTL == 0 {
		return DefaultTTL
	}
	return r.TTL
}

// resolveFormat replaces an empty format with the theme's preference, so
// that the cache key and the cached content type are never ambiguous.
func (o *Options) resolveFormat() error {
	f, err := style.ParseFormat(o.Format)
	if err != nil {
		return err
	}
	if f == "" {
		s, err := o.Snapshot()
		if err != nil {
			return err
		}
		f = s.PreferredFormat
	}
	o.Format = string(f)
	return nil
}

func (o *Options) kind() string {
	if o.IsSector() {
		return "sector"
	}
	return "tile"
}
