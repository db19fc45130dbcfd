package triage

import (
	"math"
	"strconv"
	"strings"
)

// Normalize rescales a raw clinical value into [0,1] over the given
// domain range. Values outside [min,max] are clamped. With reverse set,
// the scale is inverted for features where lower raw values mean higher
// risk (e.g. max heart rate).
func Normalize(value, min, max float64, reverse bool) float64 {
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	normalized := (value - min) / (max - min)
	if reverse {
		return 1 - normalized
	}
	return normalized
}

// round2 rounds to two decimals for display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// parseSystolic extracts the systolic reading from a "sys/dia" string,
// defaulting to 120 when the value is missing or malformed.
func parseSystolic(bloodPressure string) float64 {
	parts := strings.Split(bloodPressure, "/")
	if len(parts) == 2 {
		if systolic, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err == nil {
			return systolic
		}
	}
	return 120
}

// chestPainValue maps a chest pain category to a 0-1 risk value.
func chestPainValue(chestPainType string) float64 {
	switch chestPainType {
	case "typical angina":
		return 1.0
	case "atypical angina":
		return 0.67
	case "non-anginal":
		return 0.33
	default: // asymptomatic or unknown
		return 0.0
	}
}
