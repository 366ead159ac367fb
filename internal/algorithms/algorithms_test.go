package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schollz/convertwithmoss/internal/domain"
)

func zoneWithChannels(pan float64, channels int) *domain.SampleZone {
	z := domain.NewSampleZone("z")
	z.Panorama = pan
	z.SampleData = &domain.SampleData{Metadata: domain.AudioMetadata{Channels: channels}}
	return z
}

func TestDetectChannelConfig(t *testing.T) {
	assert.Equal(t, ConfigMono, DetectChannelConfig([]*domain.SampleZone{zoneWithChannels(0, 1)}))
	assert.Equal(t, ConfigStereo, DetectChannelConfig([]*domain.SampleZone{zoneWithChannels(0, 2)}))
	assert.Equal(t, ConfigSplitStereo, DetectChannelConfig([]*domain.SampleZone{
		zoneWithChannels(-1, 1), zoneWithChannels(1, 1),
	}))
	assert.Equal(t, ConfigMixed, DetectChannelConfig([]*domain.SampleZone{
		zoneWithChannels(0, 1), zoneWithChannels(0, 2),
	}))
}

func TestCommonPrefixStripsTrailingSeparator(t *testing.T) {
	assert.Equal(t, "Piano", commonPrefix("Piano_L", "Piano_R"))
	assert.Equal(t, "Bass", commonPrefix("Bass-Low", "Bass-High"))
}

func TestCombineSplitStereoRequiresEqualCounts(t *testing.T) {
	zones := []*domain.SampleZone{zoneWithChannels(-1, 1)}
	_, err := CombineSplitStereo(zones)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCombinationNotPossible)
}

func TestReduceZonesPreservesCoverage(t *testing.T) {
	z1 := domain.NewSampleZone("a")
	z1.KeyLow, z1.KeyHigh = 0, 39
	z1.VelocityLow, z1.VelocityHigh = 1, 127

	z2 := domain.NewSampleZone("b")
	z2.KeyLow, z2.KeyHigh = 40, 79
	z2.VelocityLow, z2.VelocityHigh = 1, 127

	z3 := domain.NewSampleZone("c")
	z3.KeyLow, z3.KeyHigh = 80, 127
	z3.VelocityLow, z3.VelocityHigh = 1, 127

	before := buildMask([]*domain.SampleZone{z1, z2, z3})
	reduced := ReduceZones([]*domain.SampleZone{z1, z2, z3}, 2)
	after := buildMask(reduced)

	assert.LessOrEqual(t, len(reduced), 2)
	assert.True(t, before.equal(after))
}

func TestReduceZonesNoOpUnderMax(t *testing.T) {
	z1 := domain.NewSampleZone("a")
	zones := []*domain.SampleZone{z1}
	assert.Len(t, ReduceZones(zones, 5), 1)
}

func TestDefaultEnvelopeForCategory(t *testing.T) {
	assert.Equal(t, 0.003, DefaultEnvelopeForCategory("percussive").Release)
	assert.Equal(t, 0.7, DefaultEnvelopeForCategory("unknown-category").Release)
	assert.Equal(t, 4.0, DefaultEnvelopeForCategory("pads").Release)
}

func TestApplyDefaultEnvelopesSkipsAlreadySet(t *testing.T) {
	z := domain.NewSampleZone("a")
	z.AmplitudeEnvelopeModulator.Source.Release = 2.5
	ApplyDefaultEnvelopes([]*domain.SampleZone{z}, "keys")
	assert.Equal(t, 2.5, z.AmplitudeEnvelopeModulator.Source.Release)
}
