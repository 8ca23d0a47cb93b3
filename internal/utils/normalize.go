package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// maxClueThreshold caps coerced thresholds so huge inputs stay representable.
const maxClueThreshold = math.MaxInt32

// SanitizeWord turns a raw answer into a canonical word.
// Every byte outside [A-Za-z] is dropped and the rest is lowercased.
// The second return is false when nothing usable is left.
func SanitizeWord(answer string) (string, bool) {
	var b strings.Builder
	b.Grow(len(answer))
	for i := 0; i < len(answer); i++ {
		c := answer[i]
		switch {
		case 'a' <= c && c <= 'z':
			b.WriteByte(c)
		case 'A' <= c && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	word := b.String()
	if !IsCanonicalWord(word) {
		return "", false
	}
	return word, true
}

// IsCanonicalWord reports whether s matches ^[a-z]+$
func IsCanonicalWord(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// NormalizeClue builds the dedup key of a clue: lowercased, every run of
// characters outside [a-z0-9] collapsed to a single space, no leading or
// trailing space. An empty key means the clue carries nothing to compare.
func NormalizeClue(clue string) string {
	lower := strings.ToLower(clue)
	var b strings.Builder
	b.Grow(len(lower))
	gap := false
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if ('a' <= c && c <= 'z') || ('0' <= c && c <= '9') {
			if gap && b.Len() > 0 {
				b.WriteByte(' ')
			}
			gap = false
			b.WriteByte(c)
			continue
		}
		gap = true
	}
	return b.String()
}

// EnsureMinClue coerces any boundary value into a clue threshold >= 1.
// Numbers are floored, numeric strings are parsed first. Anything that is not
// a finite number >= 1 falls back to 1.
func EnsureMinClue(v any) int {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 1 {
		return 1
	}
	if f >= maxClueThreshold {
		return maxClueThreshold
	}
	return int(math.Floor(f))
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
