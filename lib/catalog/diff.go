package catalog

import "fmt"

// Diff reports whether a freshly scraped snapshot differs from the stored
// one. Comparison is strictly positional: the same providers in a
// different order count as changed. The returned reason describes the
// first divergence found and is for logging only.
func Diff(existing, candidate []Provider) (bool, string) {
	if len(existing) != len(candidate) {
		return true, fmt.Sprintf("provider count changed: %d -> %d", len(existing), len(candidate))
	}

	for i, next := range candidate {
		prev := existing[i]
		if !eqString(prev.Name, next.Name) {
			return true, fmt.Sprintf(
				"provider %d name changed: %s -> %s",
				i, displayString(prev.Name), displayString(next.Name),
			)
		}
		key, changed := diffMetrics(prev.Metrics, next.Metrics)
		if changed {
			return true, fmt.Sprintf(
				"metric %q changed for provider %s",
				key, displayString(next.Name),
			)
		}
	}

	return false, ""
}

func diffMetrics(prev, next Metrics) (string, bool) {
	switch {
	case !eqInt(prev.ContextLength, next.ContextLength):
		return "context_length", true
	case !eqInt(prev.MaxOutputTokens, next.MaxOutputTokens):
		return "max_output_tokens", true
	case !eqFloat(prev.InputPricePerMillion, next.InputPricePerMillion):
		return "input_price_per_million", true
	case !eqFloat(prev.OutputPricePerMillion, next.OutputPricePerMillion):
		return "output_price_per_million", true
	case !eqFloat(prev.LatencySeconds, next.LatencySeconds):
		return "latency_seconds", true
	case !eqFloat(prev.ThroughputTokensPerSecond, next.ThroughputTokensPerSecond):
		return "throughput_tokens_per_second", true
	}
	return "", false
}

func eqString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func eqInt(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func displayString(s *string) string {
	if s == nil {
		return "<none>"
	}
	return *s
}
