// Package musicutil collects the math and MIDI-note helpers shared by
// every format codec: dB/linear conversion, the exponential time and
// frequency curves vendor formats encode their envelopes and filters
// with, and note-name parsing/formatting. Grounded on the teacher's
// internal/types ADSR hex-mapping functions and internal/music's
// MidiToNoteName, generalized to spec §4.4's exact formulas.
package musicutil

import "math"

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Log2 returns the base-2 logarithm of x.
func Log2(x float64) float64 {
	return math.Log2(x)
}

const minDb = -150.0

// ValueToDb converts a linear amplitude multiplier to decibels using
// the constant from spec §4.4 (20/ln(10) == 8.6858896380650365530225783783321),
// floored at -150dB for any x below 2^-25.
func ValueToDb(x float64) float64 {
	if x < math.Exp2(-25) {
		return minDb
	}
	db := math.Log(x) * 8.6858896380650365530225783783321
	if db < minDb {
		return minDb
	}
	return db
}

// DbToDouble converts decibels to a linear multiplier, saturated to
// [0,1] at dB >= 0.
func DbToDouble(db float64) float64 {
	v := math.Pow(10, db/20)
	return Clamp(v, 0, 1)
}

// NormalizeFrequency maps f into [0,1] given the format's maximum
// representable frequency fmax: normalized = log2(f)/log2(fmax).
func NormalizeFrequency(f, fmax float64) float64 {
	return Log2(f) / Log2(fmax)
}

// DenormalizeFrequency is the inverse of NormalizeFrequency.
func DenormalizeFrequency(normalized, fmax float64) float64 {
	return math.Exp2(normalized * Log2(fmax))
}

const (
	cutoffMinHz = 32.7
	cutoffMaxHz = 106300.0
)

// NormalizeCutoff maps a filter cutoff frequency (Hz) to [0,1] using
// spec §4.4's formula, referenced to 2*440Hz (880Hz, one octave above A4).
func NormalizeCutoff(hz float64) float64 {
	n := (Log2(hz/(2*440))*12 + 57) / 140
	return Clamp(n, 0, 1)
}

// DenormalizeCutoff is the inverse of NormalizeCutoff, clamped to the
// format's representable range [32.7Hz, 106300Hz].
func DenormalizeCutoff(normalized float64) float64 {
	hz := math.Exp2((normalized*140-57)/12) * 2 * 440
	return Clamp(hz, cutoffMinHz, cutoffMaxHz)
}

// NormalizeTime maps a time in seconds to [0,1] given the format's
// maximum representable time tmax: t_norm = log(t+1)/log(tmax+1).
func NormalizeTime(t, tmax float64) float64 {
	return math.Log(t+1) / math.Log(tmax+1)
}

// DenormalizeTime is the inverse of NormalizeTime.
func DenormalizeTime(normalized, tmax float64) float64 {
	return math.Exp(normalized*math.Log(tmax+1)) - 1
}

// NormalizeTimeInt is the integer-encoded variant some formats use,
// scaling the normalized value by 1000.
func NormalizeTimeInt(t, tmax float64) int {
	return int(math.Round(NormalizeTime(t, tmax) * 1000))
}

// DenormalizeTimeInt is the inverse of NormalizeTimeInt.
func DenormalizeTimeInt(encoded int, tmax float64) float64 {
	return DenormalizeTime(float64(encoded)/1000, tmax)
}
