package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelopeIsSet(t *testing.T) {
	e := NewUnsetEnvelope()
	assert.False(t, e.IsSet())

	e.Attack = 0.5
	assert.True(t, e.IsSet())
}

func TestEnvelopeEffectiveHold(t *testing.T) {
	e := NewUnsetEnvelope()
	assert.Equal(t, 1.0, e.EffectiveHold())

	e.Hold = 0.3
	assert.Equal(t, 0.3, e.EffectiveHold())
}

func TestGroupIsRoundRobin(t *testing.T) {
	g := &Group{Zones: []*SampleZone{
		{PlayLogic: PlayRoundRobin, SequencePosition: 2},
		{PlayLogic: PlayRoundRobin, SequencePosition: 2},
	}}
	assert.True(t, g.IsRoundRobin())

	g.Zones[1].SequencePosition = 3
	assert.False(t, g.IsRoundRobin())

	g.Zones = nil
	assert.False(t, g.IsRoundRobin())
}

func TestMultisampleKeyRangeIsUnion(t *testing.T) {
	m := &MultisampleSource{Groups: []*Group{
		{Zones: []*SampleZone{
			{KeyLow: 0, KeyHigh: 40},
			{KeyLow: 41, KeyHigh: 80},
		}},
		{Zones: []*SampleZone{
			{KeyLow: 81, KeyHigh: 127},
		}},
	}}
	lowest, highest := m.KeyRange()
	assert.Equal(t, 0, lowest)
	assert.Equal(t, 127, highest)
}

func TestValidateZoneRejectsBadKeyRange(t *testing.T) {
	z := NewSampleZone("x")
	z.KeyLow, z.KeyHigh = 80, 10
	z.Start, z.Stop = 0, 100
	err := ValidateZone(z)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestValidateZoneRejectsBadPlaybackWindow(t *testing.T) {
	z := NewSampleZone("x")
	z.Start, z.Stop = 100, 100
	err := ValidateZone(z)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestValidateZoneAcceptsDefaults(t *testing.T) {
	z := NewSampleZone("x")
	z.Start, z.Stop = 0, 44100
	assert.NoError(t, ValidateZone(z))
}

func TestValidateMultisampleRequiresGroups(t *testing.T) {
	m := &MultisampleSource{Name: "empty"}
	assert.ErrorIs(t, ValidateMultisample(m), ErrFormat)
}

func TestClampLoopToFrameCount(t *testing.T) {
	l := SampleLoop{Start: -5, End: 1000}
	ClampLoopToFrameCount(&l, 500)
	assert.Equal(t, int64(0), l.Start)
	assert.Equal(t, int64(499), l.End)
}
