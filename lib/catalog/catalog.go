// Package catalog models the persisted model/provider catalog and its
// change-detection rules.
package catalog

import "encoding/json"

// Metrics is the fixed set of pricing/performance numbers scraped per
// provider. nil means the value wasn't shown on the page or didn't parse,
// which is distinct from zero and survives serialization as an explicit
// JSON null.
type Metrics struct {
	ContextLength             *int64   `json:"context_length"`
	MaxOutputTokens           *int64   `json:"max_output_tokens"`
	InputPricePerMillion      *float64 `json:"input_price_per_million"`
	OutputPricePerMillion     *float64 `json:"output_price_per_million"`
	LatencySeconds            *float64 `json:"latency_seconds"`
	ThroughputTokensPerSecond *float64 `json:"throughput_tokens_per_second"`
}

// Provider is one row of a model's provider breakdown. A record with a nil
// name and all-nil metrics is the sentinel meaning "no per-provider
// breakdown exists for this model".
type Provider struct {
	Name    *string `json:"name"`
	Metrics Metrics `json:"metrics"`
}

// Sentinel returns the single-record snapshot stored for models without a
// provider breakdown. Note this is not the same as an empty snapshot.
func Sentinel() []Provider {
	return []Provider{{}}
}

// Model is one catalog entry. The upstream catalog carries many more keys
// than we model (pricing blobs, architecture info, ...), those are kept in
// Extra verbatim so rewriting the catalog never destroys them.
type Model struct {
	ID        string
	Providers []Provider
	Extra     map[string]json.RawMessage
}

func (m *Model) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	if id, ok := raw["id"]; ok {
		err = json.Unmarshal(id, &m.ID)
		if err != nil {
			return err
		}
		delete(raw, "id")
	}
	if providers, ok := raw["providers"]; ok {
		err = json.Unmarshal(providers, &m.Providers)
		if err != nil {
			return err
		}
		delete(raw, "providers")
	}

	m.Extra = raw
	return nil
}

func (m Model) MarshalJSON() ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(m.Extra)+2)
	for k, v := range m.Extra {
		raw[k] = v
	}

	id, err := json.Marshal(m.ID)
	if err != nil {
		return nil, err
	}
	raw["id"] = id

	if m.Providers != nil {
		providers, err := json.Marshal(m.Providers)
		if err != nil {
			return nil, err
		}
		raw["providers"] = providers
	}

	// map marshalling sorts keys, so rewrites are deterministic and
	// diff-friendly under version control
	return json.Marshal(raw)
}

// Catalog is the whole durable state. The set and order of models is never
// changed by the updater, only each model's provider list.
type Catalog struct {
	Data []Model `json:"data"`
}
