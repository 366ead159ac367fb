package binformat

import (
	"bytes"
	"testing"

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

func TestGenericPluginEncodeDecodeRoundTrip(t *testing.T) {
	p := &GenericPlugin{Prefix: "sxt", Extension: ".sxt", DisplayName: "Test", Tag: "TEST"}

	z := domain.NewSampleZone("Kick")
	z.KeyLow, z.KeyHigh, z.KeyRoot = 36, 40, 36
	z.VelocityLow, z.VelocityHigh = 1, 127
	z.Start, z.Stop = 0, 4
	z.Gain = 1.0
	z.SampleData = &domain.SampleData{Backing: domain.MemoryBacking{Data: testWav(t)}}

	ms := &domain.MultisampleSource{Name: "Prog", Groups: []*domain.Group{{Zones: []*domain.SampleZone{z}}}}

	samples := map[string][]byte{}
	encoded, err := p.Encode(ms, func(filename string, wav []byte) error {
		samples[filename] = wav
		return nil
	})
	require.NoError(t, err)

	decoded, err := p.Decode(encoded, func(filename string) ([]byte, error) {
		return samples[filename], nil
	})
	require.NoError(t, err)

	assert.Equal(t, "Prog", decoded.Name)
	require.Len(t, decoded.Groups, 1)
	require.Len(t, decoded.Groups[0].Zones, 1)
	got := decoded.Groups[0].Zones[0]
	assert.Equal(t, 36, got.KeyLow)
	assert.Equal(t, 40, got.KeyHigh)
	assert.Equal(t, 36, got.KeyRoot)
	assert.Equal(t, int64(0), got.Start)
	assert.Equal(t, int64(4), got.Stop)
}

func TestGenericPluginDecodeRejectsBadTag(t *testing.T) {
	p := &GenericPlugin{Prefix: "sxt", Extension: ".sxt", DisplayName: "Test", Tag: "TEST"}
	_, err := p.Decode([]byte("nope"), nil)
	assert.ErrorIs(t, err, domain.ErrFormat)
}
