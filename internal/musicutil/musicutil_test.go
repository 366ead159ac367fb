package musicutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNoteRoundTripsFormatNoteSharps(t *testing.T) {
	for n := 0; n <= 127; n++ {
		got := ParseNote(FormatNoteSharps(n))
		assert.Equal(t, n, got, "note %d formatted as %q", n, FormatNoteSharps(n))
	}
}

func TestParseNoteVariants(t *testing.T) {
	cases := map[string]int{
		"C3":  60,
		"c3":  60,
		"C#3": 61,
		"Db3": 61,
		"H3":  71, // German B
		"B3":  71,
		"060": 60,
		"60":  60,
		"00":  0,
		"C-2": 0,
		"G8":  127,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseNote(in), "input %q", in)
	}
}

func TestParseNoteRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "Z3", "128", "H#-5", "999"} {
		assert.Equal(t, -1, ParseNote(in), "input %q", in)
	}
}

func TestValueToDbMonotonicAndFloor(t *testing.T) {
	assert.Equal(t, -150.0, ValueToDb(0))
	prev := ValueToDb(1e-8)
	for _, x := range []float64{1e-6, 1e-4, 1e-2, 0.1, 1, 2, 10} {
		v := ValueToDb(x)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestDbToDoubleSaturates(t *testing.T) {
	assert.Equal(t, 1.0, DbToDouble(20))
	assert.Equal(t, 1.0, DbToDouble(0))
	assert.InDelta(t, 0.5011872336272722, DbToDouble(-6), 1e-9)
}

func TestNormalizeTimeRoundTrip(t *testing.T) {
	const tmax = 30.0
	for _, tt := range []float64{0, 0.5, 1, 5, 29.9} {
		n := NormalizeTime(tt, tmax)
		got := DenormalizeTime(n, tmax)
		assert.InDelta(t, tt, got, 1e-9)
	}
}

func TestNormalizeCutoffClampsRange(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeCutoff(1))
	assert.Equal(t, 1.0, NormalizeCutoff(1_000_000))
	lo := DenormalizeCutoff(0)
	hi := DenormalizeCutoff(1)
	assert.InDelta(t, 32.7, lo, 0.01)
	assert.InDelta(t, 106300.0, hi, 50.0)
}
