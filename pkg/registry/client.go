// Package registry wraps the external KYC registries: the CERSAI central
// KYC registry (CKYC) and the SEBI KYC registration agencies (KRA). Both
// expose the same lookup contract; a miss is a normal outcome, not an error.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/ameya-wealth/wealth-api/internal/resilience"
)

// Source names which registry answered a lookup.
type Source string

const (
	SourceCKYC Source = "CKYC"
	SourceKRA  Source = "KRA"
)

// LookupResult is the outcome of a PAN lookup against one registry.
type LookupResult struct {
	Found  bool            `json:"found"`
	Source Source          `json:"source"`
	KIN    string          `json:"kin,omitempty"`
	Data   json.RawMessage `json:"kyc_data,omitempty"`
}

// Client looks up a PAN in one registry. Implementations must treat a miss
// as (Found=false, nil error); errors mean the registry itself failed.
type Client interface {
	Lookup(ctx context.Context, pan string) (LookupResult, error)
	Name() Source
}

// Option configures an HTTP registry client.
type Option func(*httpClient)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithRateLimit overrides the default request rate (5 req/s).
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

// WithCircuitBreaker overrides the default breaker configuration.
func WithCircuitBreaker(cfg resilience.CircuitBreakerConfig) Option {
	return func(c *httpClient) { c.breaker = resilience.NewCircuitBreaker(cfg) }
}

type httpClient struct {
	source  Source
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	breaker *resilience.CircuitBreaker
}

// NewHTTPClient creates a registry client for the given source and endpoint.
// Requests are rate limited and circuit broken; repeated registry outages
// fail fast instead of stalling every KYC initiation.
func NewHTTPClient(source Source, baseURL, apiKey string, opts ...Option) Client {
	c := &httpClient{
		source:  source,
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(5, 5),
		breaker: resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig()),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Name() Source { return c.source }

type lookupRequest struct {
	PAN string `json:"pan"`
}

type lookupResponse struct {
	Status string          `json:"status"`
	KIN    string          `json:"kin,omitempty"`
	Data   json.RawMessage `json:"kyc_data,omitempty"`
}

func (c *httpClient) Lookup(ctx context.Context, pan string) (LookupResult, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return LookupResult{}, eris.Wrap(err, "registry: rate limit")
		}
	}

	var result LookupResult
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		result, err = c.lookup(ctx, pan)
		return err
	})
	if err != nil {
		return LookupResult{}, err
	}
	return result, nil
}

func (c *httpClient) lookup(ctx context.Context, pan string) (LookupResult, error) {
	body, err := json.Marshal(lookupRequest{PAN: pan})
	if err != nil {
		return LookupResult{}, eris.Wrap(err, "registry: marshal lookup request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/lookup", bytes.NewReader(body))
	if err != nil {
		return LookupResult{}, eris.Wrap(err, "registry: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return LookupResult{}, eris.Wrap(err, fmt.Sprintf("registry: %s lookup", c.source))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return LookupResult{}, eris.Wrap(err, "registry: read response")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return LookupResult{Source: c.source}, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return LookupResult{}, resilience.NewTransientError(
			eris.New(fmt.Sprintf("registry: %s returned %d", c.source, resp.StatusCode)),
			resp.StatusCode,
		)
	case resp.StatusCode != http.StatusOK:
		return LookupResult{}, eris.New(fmt.Sprintf("registry: %s returned %d: %s", c.source, resp.StatusCode, data))
	}

	var lr lookupResponse
	if err := json.Unmarshal(data, &lr); err != nil {
		return LookupResult{}, eris.Wrap(err, "registry: unmarshal response")
	}
	if lr.Status != "found" {
		return LookupResult{Source: c.source}, nil
	}
	return LookupResult{
		Found:  true,
		Source: c.source,
		KIN:    lr.KIN,
		Data:   lr.Data,
	}, nil
}
