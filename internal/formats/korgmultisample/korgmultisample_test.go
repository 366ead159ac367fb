package korgmultisample

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/wavfile"
)

func testWav(t *testing.T) []byte {
	t.Helper()
	f := &wavfile.File{
		Metadata: domain.AudioMetadata{Channels: 1, SampleRate: 44100, BitResolution: 16, NumberOfFrames: 4},
		PCM:      make([]byte, 8),
		ListInfo: map[string]string{},
	}
	var buf bytes.Buffer
	require.NoError(t, wavfile.Emit(f, &buf))
	return buf.Bytes()
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	wav := testWav(t)

	z := domain.NewSampleZone("Kick")
	z.KeyLow, z.KeyHigh, z.KeyRoot = 36, 36, 36
	z.Start = 0
	z.Stop = 4
	z.Gain = 1.0
	z.Panorama = 0
	z.SampleData = &domain.SampleData{
		Metadata: domain.AudioMetadata{Channels: 1, SampleRate: 44100, BitResolution: 16, NumberOfFrames: 4},
		Backing:  domain.MemoryBacking{Data: wav},
	}

	ms := &domain.MultisampleSource{
		Name:     "Kick",
		Metadata: domain.Metadata{Creator: "tester", Category: "drum"},
		Groups:   []*domain.Group{{Zones: []*domain.SampleZone{z}}},
	}

	samples := map[string][]byte{}
	encoded, err := Encode(ms, time.Unix(1700000000, 0), func(filename string, data []byte) error {
		samples[filename] = data
		return nil
	})
	require.NoError(t, err)

	decoded, err := Decode(encoded, func(filename string) ([]byte, error) {
		return samples[filename], nil
	})
	require.NoError(t, err)

	assert.Equal(t, "Kick", decoded.Name)
	assert.Equal(t, "tester", decoded.Metadata.Creator)
	assert.Equal(t, "drum", decoded.Metadata.Category)
	require.Len(t, decoded.Groups, 1)
	require.Len(t, decoded.Groups[0].Zones, 1)
	gotZone := decoded.Groups[0].Zones[0]
	assert.Equal(t, 36, gotZone.KeyLow)
	assert.Equal(t, 36, gotZone.KeyHigh)
	assert.Equal(t, 36, gotZone.KeyRoot)
}

func TestDecodeRejectsBadTag(t *testing.T) {
	_, err := Decode([]byte("nope"), nil)
	assert.ErrorIs(t, err, domain.ErrFormat)
}
