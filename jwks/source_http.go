package jwks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/axent-pl/jwksverify/common/logx"
	"github.com/axent-pl/jwksverify/metrics"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	// maxDocumentSize bounds JWKS and discovery responses.
	maxDocumentSize = 1 << 20
	// fetchTimeout bounds a shared fetch, which outlives the caller that started it.
	fetchTimeout = 30 * time.Second
)

// HTTPSource serves a key set fetched from a JWKS endpoint.
//
// KeySet serves from cache; Refresh forces a conditional GET and has the
// signature of a validation refresh callback.
type HTTPSource struct {
	URL             url.URL
	Client          *http.Client  // optional; defaults to http.DefaultClient
	RefreshInterval time.Duration // RefreshInterval <= 0 disables background refresh
	// MinRefreshInterval throttles forced refreshes. While throttled, Refresh
	// returns the cached set. <= 0 disables throttling.
	MinRefreshInterval time.Duration
	Metrics            *metrics.Recorder

	mu        sync.RWMutex
	cached    *KeySet
	lastErr   error
	etag      string
	lastMod   string
	lastFetch time.Time

	group       singleflight.Group
	limiterOnce sync.Once
	limiter     *rate.Limiter

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	started   bool
}

// Start warms the cache and, when RefreshInterval > 0, refreshes it in the background until Close.
func (p *HTTPSource) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		p.stopCh = make(chan struct{})
		p.started = true

		go func() {
			if _, err := p.fetch(ctx); err != nil {
				logx.L().Warn("could not warm jwks cache", "url", p.URL.String(), "error", err)
			}
		}()

		if p.RefreshInterval <= 0 {
			return
		}

		t := time.NewTicker(p.RefreshInterval)
		go func() {
			defer t.Stop()
			for {
				select {
				case <-t.C:
					if _, err := p.fetch(context.Background()); err != nil {
						logx.L().Warn("background jwks refresh failed", "url", p.URL.String(), "error", err)
					}
				case <-p.stopCh:
					return
				}
			}
		}()
	})
}

func (p *HTTPSource) Close() {
	p.stopOnce.Do(func() {
		if p.started && p.stopCh != nil {
			close(p.stopCh)
		}
	})
}

// KeySet returns the cached key set, fetching it synchronously if the cache is empty.
func (p *HTTPSource) KeySet(ctx context.Context) (KeySet, error) {
	p.mu.RLock()
	cached := p.cached
	p.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}
	return p.fetch(ctx)
}

// Refresh re-fetches the key set. Concurrent callers share one request.
func (p *HTTPSource) Refresh(ctx context.Context) (KeySet, error) {
	p.mu.RLock()
	cached := p.cached
	p.mu.RUnlock()
	if cached != nil && !p.allowRefresh() {
		logx.L().Debug("jwks refresh throttled, serving cached key set", "url", p.URL.String())
		p.Metrics.ObserveFetch(metrics.StatusThrottled)
		return *cached, nil
	}
	return p.fetch(ctx)
}

// LastFetch reports when the key set was last fetched successfully, and the last fetch error.
func (p *HTTPSource) LastFetch() (time.Time, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastFetch, p.lastErr
}

func (p *HTTPSource) allowRefresh() bool {
	if p.MinRefreshInterval <= 0 {
		return true
	}
	p.limiterOnce.Do(func() {
		p.limiter = rate.NewLimiter(rate.Every(p.MinRefreshInterval), 1)
	})
	return p.limiter.Allow()
}

func (p *HTTPSource) fetch(ctx context.Context) (KeySet, error) {
	ch := p.group.DoChan("jwks", func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		ks, err := p.doFetch(fctx)
		if err != nil {
			p.Metrics.ObserveFetch(metrics.StatusError)
		}
		return ks, err
	})
	select {
	case <-ctx.Done():
		return KeySet{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return KeySet{}, res.Err
		}
		return res.Val.(KeySet), nil
	}
}

func (p *HTTPSource) setErr(err error) error {
	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()
	return err
}

// doFetch issues a conditional GET and updates the cache if the document changed.
func (p *HTTPSource) doFetch(ctx context.Context) (KeySet, error) {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL.String(), nil)
	if err != nil {
		return KeySet{}, fmt.Errorf("jwks request build failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	p.mu.RLock()
	if p.etag != "" {
		req.Header.Set("If-None-Match", p.etag)
	}
	if p.lastMod != "" {
		req.Header.Set("If-Modified-Since", p.lastMod)
	}
	p.mu.RUnlock()

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return KeySet{}, ctx.Err()
		}
		return KeySet{}, p.setErr(fmt.Errorf("jwks fetch failed: %w", err))
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logx.L().Error("could not close http.Response.Body", "error", err)
		}
	}()

	if resp.StatusCode == http.StatusNotModified {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.cached == nil {
			p.lastErr = errors.New("jwks fetch failed: not modified without cached key set")
			return KeySet{}, p.lastErr
		}
		p.lastFetch = time.Now()
		p.lastErr = nil
		p.Metrics.ObserveFetch(metrics.StatusNotModified)
		return *p.cached, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return KeySet{}, p.setErr(fmt.Errorf("jwks fetch failed: unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return KeySet{}, p.setErr(fmt.Errorf("jwks read failed: %w", err))
	}
	ks, err := Parse(body)
	if err != nil {
		return KeySet{}, p.setErr(err)
	}

	etag := resp.Header.Get("ETag")
	lastMod := resp.Header.Get("Last-Modified")

	p.mu.Lock()
	p.cached = &ks
	p.lastErr = nil
	p.lastFetch = time.Now()
	p.etag = etag
	p.lastMod = lastMod
	p.mu.Unlock()

	logx.L().Debug("jwks fetched", "url", p.URL.String(), "kids", ks.Kids())
	p.Metrics.ObserveFetch(metrics.StatusSuccess)
	return ks, nil
}
