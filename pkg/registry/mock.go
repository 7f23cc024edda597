package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"
)

// MockClient simulates a registry without network access. A PAN's outcome is
// a deterministic function of its bytes, so the same PAN always resolves the
// same way across runs and across processes. Used in dev mode and tests.
type MockClient struct {
	source Source
	// hitRate is the fraction of PAN space that resolves as found,
	// expressed in percent (0..100).
	hitRate uint32
}

// NewMockClient creates a deterministic mock registry. CKYC resolves about
// 30% of PANs, KRA about 40%, roughly matching observed registry coverage.
func NewMockClient(source Source) *MockClient {
	hitRate := uint32(30)
	if source == SourceKRA {
		hitRate = 40
	}
	return &MockClient{source: source, hitRate: hitRate}
}

func (m *MockClient) Name() Source { return m.source }

func (m *MockClient) Lookup(_ context.Context, pan string) (LookupResult, error) {
	h := fnv.New32a()
	h.Write([]byte(string(m.source) + ":" + pan))
	if h.Sum32()%100 >= m.hitRate {
		return LookupResult{Source: m.source}, nil
	}

	data, _ := json.Marshal(map[string]string{
		"name":          "Retrieved from " + string(m.source),
		"kyc_type":      string(m.source),
		"verified_date": time.Now().UTC().Format(time.RFC3339),
	})
	result := LookupResult{
		Found:  true,
		Source: m.source,
		Data:   data,
	}
	if m.source == SourceCKYC {
		result.KIN = fmt.Sprintf("KIN%08d", h.Sum32()%100_000_000)
	}
	return result, nil
}
