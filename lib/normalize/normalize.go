// Package normalize converts raw scraped text into typed values.
//
// Scraped metric cells carry formatting noise: thousands separators,
// a trailing "K" multiplier, currency symbols and unit suffixes. Every
// function here is best-effort, a value that doesn't parse comes back
// as nil rather than an error. nil input always yields nil output,
// absence is meaningful data to the caller, not a failure.
package normalize

import (
	"strconv"
	"strings"
)

// Text trims surrounding whitespace and returns the string otherwise untouched.
func Text(raw *string) *string {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	return &s
}

// Int parses values like "1,234K" into 1234000.
func Int(raw *string) *int64 {
	s, ok := numeric(raw)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// Decimal parses values like "$0.50" or "1.25" into their float value.
func Decimal(raw *string) *float64 {
	s, ok := numeric(raw)
	if !ok {
		return nil
	}
	s = strings.TrimPrefix(s, "$")
	return parseFloat(s)
}

// Latency parses values like "2.3s" into seconds.
func Latency(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	s = strings.TrimSuffix(s, "s")
	return parseFloat(s)
}

// Throughput parses values like "45.1t/s" into tokens per second.
func Throughput(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	s = strings.TrimSuffix(s, "t/s")
	return parseFloat(s)
}

// strips thousands separators and expands a trailing "K" to "000".
func numeric(raw *string) (string, bool) {
	if raw == nil {
		return "", false
	}
	s := strings.TrimSpace(*raw)
	s = strings.ReplaceAll(s, ",", "")
	if strings.HasSuffix(s, "K") {
		s = strings.TrimSuffix(s, "K") + "000"
	}
	return s, true
}

func parseFloat(s string) *float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
