package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func str(s string) *string   { return &s }
func i64(n int64) *int64     { return &n }
func f64(f float64) *float64 { return &f }

func snapshot() []Provider {
	return []Provider{
		{
			Name: str("openai"),
			Metrics: Metrics{
				ContextLength:             i64(128000),
				MaxOutputTokens:           i64(16384),
				InputPricePerMillion:      f64(2.5),
				OutputPricePerMillion:     f64(10),
				LatencySeconds:            f64(0.41),
				ThroughputTokensPerSecond: f64(112),
			},
		},
		{
			Name: str("azure"),
			Metrics: Metrics{
				ContextLength:        i64(128000),
				InputPricePerMillion: f64(2.5),
			},
		},
	}
}

func TestDiffIdentical(t *testing.T) {
	changed, reason := Diff(snapshot(), snapshot())
	require.False(t, changed, reason)
}

func TestDiffLengthMismatch(t *testing.T) {
	changed, reason := Diff(snapshot(), snapshot()[:1])
	require.True(t, changed)
	require.Contains(t, reason, "provider count")

	// empty existing vs the sentinel also counts as a length change
	changed, _ = Diff(nil, Sentinel())
	require.True(t, changed)
}

func TestDiffReorderIsChange(t *testing.T) {
	reordered := snapshot()
	reordered[0], reordered[1] = reordered[1], reordered[0]

	changed, _ := Diff(snapshot(), reordered)
	require.True(t, changed)
}

func TestDiffMetricChange(t *testing.T) {
	candidate := snapshot()
	candidate[0].Metrics.ContextLength = i64(200000)

	changed, reason := Diff(snapshot(), candidate)
	require.True(t, changed)
	require.Contains(t, reason, "context_length")
}

func TestDiffAbsentVsPresent(t *testing.T) {
	candidate := snapshot()
	candidate[1].Metrics.LatencySeconds = f64(1.2)

	changed, reason := Diff(snapshot(), candidate)
	require.True(t, changed)
	require.Contains(t, reason, "latency_seconds")
}

func TestDiffNameChange(t *testing.T) {
	candidate := snapshot()
	candidate[1].Name = str("amazon_bedrock")

	changed, reason := Diff(snapshot(), candidate)
	require.True(t, changed)
	require.Contains(t, reason, "name")
}

func TestDiffReformattedNumberIsNotAChange(t *testing.T) {
	// 10 vs 10.0 parse to the same value, comparison is on the parsed
	// number, never on the original text
	existing := []Provider{{Name: str("openai"), Metrics: Metrics{OutputPricePerMillion: f64(10)}}}
	candidate := []Provider{{Name: str("openai"), Metrics: Metrics{OutputPricePerMillion: f64(10.0)}}}

	changed, _ := Diff(existing, candidate)
	require.False(t, changed)
}

func TestDiffSentinelEqualsSentinel(t *testing.T) {
	changed, _ := Diff(Sentinel(), Sentinel())
	require.False(t, changed)
}
