package jwks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/axent-pl/jwksverify/common"
	"github.com/axent-pl/jwksverify/common/logx"
	"github.com/axent-pl/jwksverify/mapx"
	"github.com/axent-pl/jwksverify/metrics"
	"golang.org/x/time/rate"
)

const wellKnownPath = "/.well-known/openid-configuration"

// DiscoverySource locates the JWKS endpoint through an OpenID Connect
// discovery document and serves keys from it through an HTTPSource.
type DiscoverySource struct {
	Issuer       string
	DiscoveryURL string       // optional; defaults to Issuer + "/.well-known/openid-configuration"
	JWKSURIPath  string       // mapx path of the JWKS URI in the document; defaults to ".jwks_uri"
	RequireHTTPS bool         // reject a jwks_uri that is not https
	Client       *http.Client // optional; defaults to http.DefaultClient

	// MinRefreshInterval throttles re-discovery on Refresh as well as the key
	// set refresh. While throttled, Refresh keeps the current jwks_uri.
	MinRefreshInterval time.Duration
	Metrics            *metrics.Recorder

	mu  sync.Mutex
	src *HTTPSource

	limiterOnce sync.Once
	limiter     *rate.Limiter
}

func (d *DiscoverySource) KeySet(ctx context.Context) (KeySet, error) {
	src, err := d.source(ctx, false)
	if err != nil {
		return KeySet{}, err
	}
	return src.KeySet(ctx)
}

// Refresh re-reads the discovery document, since keys are usually rotated
// together with it, then forces a key set refresh.
func (d *DiscoverySource) Refresh(ctx context.Context) (KeySet, error) {
	rediscover := d.allowRediscovery()
	if !rediscover {
		logx.L().Debug("rediscovery throttled, keeping jwks_uri", "issuer", d.Issuer)
	}
	src, err := d.source(ctx, rediscover)
	if err != nil {
		return KeySet{}, err
	}
	return src.Refresh(ctx)
}

// JWKSURI fetches the discovery document and returns the key set location.
func (d *DiscoverySource) JWKSURI(ctx context.Context) (string, error) {
	doc, err := d.fetchDocument(ctx)
	if err != nil {
		return "", err
	}
	issuer := strings.TrimSuffix(d.Issuer, "/")
	if iss, err := mapx.GetString(doc, ".issuer"); err == nil && issuer != "" && strings.TrimSuffix(iss, "/") != issuer {
		return "", fmt.Errorf("%w: discovery issuer %q does not match %q", common.ErrInvalidInput, iss, issuer)
	}
	path := d.JWKSURIPath
	if path == "" {
		path = ".jwks_uri"
	}
	uri, err := mapx.GetString(doc, path)
	if err != nil {
		return "", fmt.Errorf("%w: discovery document: %v", common.ErrInvalidInput, err)
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: jwks_uri: %v", common.ErrInvalidInput, err)
	}
	if d.RequireHTTPS && u.Scheme != "https" {
		return "", fmt.Errorf("%w: jwks_uri must use https: %q", common.ErrInvalidInput, uri)
	}
	return uri, nil
}

func (d *DiscoverySource) source(ctx context.Context, rediscover bool) (*HTTPSource, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.src != nil && !rediscover {
		return d.src, nil
	}

	uri, err := d.JWKSURI(ctx)
	if err != nil {
		if d.src != nil {
			logx.L().Warn("discovery failed, keeping previous jwks_uri", "issuer", d.Issuer, "error", err)
			return d.src, nil
		}
		return nil, err
	}
	if d.src != nil && d.src.URL.String() == uri {
		return d.src, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: jwks_uri: %v", common.ErrInvalidInput, err)
	}
	if d.src != nil {
		logx.L().Info("jwks_uri changed", "issuer", d.Issuer, "jwks_uri", uri)
	}
	d.src = &HTTPSource{
		URL:                *u,
		Client:             d.Client,
		MinRefreshInterval: d.MinRefreshInterval,
		Metrics:            d.Metrics,
	}
	return d.src, nil
}

func (d *DiscoverySource) allowRediscovery() bool {
	if d.MinRefreshInterval <= 0 {
		return true
	}
	d.limiterOnce.Do(func() {
		d.limiter = rate.NewLimiter(rate.Every(d.MinRefreshInterval), 1)
	})
	return d.limiter.Allow()
}

func (d *DiscoverySource) discoveryURL() string {
	if d.DiscoveryURL != "" {
		return d.DiscoveryURL
	}
	return strings.TrimSuffix(d.Issuer, "/") + wellKnownPath
}

func (d *DiscoverySource) fetchDocument(ctx context.Context) (any, error) {
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.discoveryURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("discovery request build failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discovery fetch failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logx.L().Error("could not close http.Response.Body", "error", err)
		}
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("discovery fetch failed: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("discovery read failed: %w", err)
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: discovery decode failed: %v", common.ErrInvalidInput, err)
	}
	return doc, nil
}
