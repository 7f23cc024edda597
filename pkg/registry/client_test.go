package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameya-wealth/wealth-api/internal/resilience"
)

func TestHTTPClientLookupFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/lookup", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req lookupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ABCDE1234F", req.PAN)

		json.NewEncoder(w).Encode(lookupResponse{
			Status: "found",
			KIN:    "KIN00000042",
			Data:   json.RawMessage(`{"name":"Test"}`),
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(SourceCKYC, srv.URL, "test-key")
	result, err := c.Lookup(context.Background(), "ABCDE1234F")
	require.NoError(t, err)

	assert.True(t, result.Found)
	assert.Equal(t, SourceCKYC, result.Source)
	assert.Equal(t, "KIN00000042", result.KIN)
}

func TestHTTPClientLookupMissIsNotAnError(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusNotFound} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			if status == http.StatusOK {
				json.NewEncoder(w).Encode(lookupResponse{Status: "not_found"})
			}
		}))

		c := NewHTTPClient(SourceKRA, srv.URL, "k")
		result, err := c.Lookup(context.Background(), "ABCDE1234F")
		require.NoError(t, err)
		assert.False(t, result.Found)
		assert.Equal(t, SourceKRA, result.Source)
		srv.Close()
	}
}

func TestHTTPClientServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHTTPClient(SourceCKYC, srv.URL, "k")
	_, err := c.Lookup(context.Background(), "ABCDE1234F")
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
}

func TestHTTPClientCircuitOpensAfterFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := resilience.DefaultCircuitBreakerConfig()
	cfg.FailureThreshold = 2
	c := NewHTTPClient(SourceCKYC, srv.URL, "k", WithCircuitBreaker(cfg))

	ctx := context.Background()
	_, err := c.Lookup(ctx, "ABCDE1234F")
	require.Error(t, err)
	_, err = c.Lookup(ctx, "ABCDE1234F")
	require.Error(t, err)

	// Third call is rejected without reaching the server.
	_, err = c.Lookup(ctx, "ABCDE1234F")
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
}

func TestMockClientIsDeterministic(t *testing.T) {
	ctx := context.Background()
	ckyc := NewMockClient(SourceCKYC)
	kra := NewMockClient(SourceKRA)

	first, err := ckyc.Lookup(ctx, "ABCDE1234F")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ckyc.Lookup(ctx, "ABCDE1234F")
		require.NoError(t, err)
		assert.Equal(t, first.Found, again.Found)
		assert.Equal(t, first.KIN, again.KIN)
	}

	// The two registries resolve independently.
	kraResult, err := kra.Lookup(ctx, "ABCDE1234F")
	require.NoError(t, err)
	assert.Equal(t, SourceKRA, kraResult.Source)
	assert.Empty(t, kraResult.KIN, "only CKYC issues a KIN")
}

func TestMockClientHitRates(t *testing.T) {
	ctx := context.Background()
	c := NewMockClient(SourceCKYC)

	hits := 0
	for i := 0; i < 1000; i++ {
		pan := panFor(i)
		result, err := c.Lookup(ctx, pan)
		require.NoError(t, err)
		if result.Found {
			hits++
		}
	}
	// Around 30% of PAN space should resolve; allow generous slack.
	assert.Greater(t, hits, 200)
	assert.Less(t, hits, 400)
}

func panFor(i int) string {
	letters := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return string([]byte{
		letters[i%26], letters[(i/26)%26], 'C', 'D', 'E',
		byte('0' + i%10), byte('0' + (i/10)%10), byte('0' + (i/100)%10), '4', 'F',
	})
}
