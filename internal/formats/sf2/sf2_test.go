package sf2

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
		PCM:      []byte{1, 0, 2, 0, 3, 0, 4, 0},
		ListInfo: map[string]string{},
	}
	var buf bytes.Buffer
	require.NoError(t, wavfile.Emit(f, &buf))
	return buf.Bytes()
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	z := domain.NewSampleZone("Kick")
	z.KeyLow, z.KeyHigh, z.KeyRoot = 36, 40, 36
	z.VelocityLow, z.VelocityHigh = 1, 127
	z.Loops = []domain.SampleLoop{{Type: domain.LoopForwards, Start: 1, End: 3}}
	z.SampleData = &domain.SampleData{
		Metadata: domain.AudioMetadata{Channels: 1, SampleRate: 44100, BitResolution: 16, NumberOfFrames: 4},
		Backing:  domain.MemoryBacking{Data: testWav(t)},
	}

	ms := &domain.MultisampleSource{Name: "Kit", Groups: []*domain.Group{{Zones: []*domain.SampleZone{z}}}}

	encoded, err := Encode(ms)
	require.NoError(t, err)

	sources, err := Decode(encoded)
	require.NoError(t, err)
	require.Len(t, sources, 1)

	decoded := sources[0]
	assert.Equal(t, "Kit", decoded.Name)
	require.Len(t, decoded.Groups, 1)
	require.Len(t, decoded.Groups[0].Zones, 1)
	got := decoded.Groups[0].Zones[0]
	assert.Equal(t, 36, got.KeyLow)
	assert.Equal(t, 40, got.KeyHigh)
	assert.Equal(t, 36, got.KeyRoot)
	assert.Equal(t, 1, got.VelocityLow)
	assert.Equal(t, 127, got.VelocityHigh)
	require.Len(t, got.Loops, 1)
	assert.Equal(t, int64(1), got.Loops[0].Start)
	assert.Equal(t, int64(3), got.Loops[0].End)
}

func TestDecodeRejectsBadTag(t *testing.T) {
	_, err := Decode([]byte("nope"))
	assert.ErrorIs(t, err, domain.ErrFormat)
}
