package xmlformat

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/wavfile"
)

func writeTestWav(t *testing.T, path string) {
	t.Helper()
	f := &wavfile.File{
		Metadata: domain.AudioMetadata{Channels: 1, SampleRate: 44100, BitResolution: 16, NumberOfFrames: 4},
		PCM:      make([]byte, 8),
		ListInfo: map[string]string{},
	}
	var buf bytes.Buffer
	require.NoError(t, wavfile.Emit(f, &buf))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestGenericPluginEncodeDecodeRoundTrip(t *testing.T) {
	p := NewGenericPlugin("bitwig", ".bwpreset", "MultisampleDocument", "Test")

	dir := t.TempDir()
	writeTestWav(t, filepath.Join(dir, "Kick.wav"))

	z := domain.NewSampleZone("Kick")
	z.KeyLow, z.KeyHigh, z.KeyRoot = 36, 40, 36
	z.VelocityLow, z.VelocityHigh = 1, 127
	z.Start, z.Stop = 0, 4
	z.Gain = 1.0
	z.SampleData = &domain.SampleData{Backing: domain.FileBacking{Path: filepath.Join(dir, "Kick.wav")}}

	ms := &domain.MultisampleSource{Groups: []*domain.Group{{Name: "group0", Zones: []*domain.SampleZone{z}}}}

	data, err := p.encode(ms, dir)
	require.NoError(t, err)

	decoded, err := p.decode(data, dir)
	require.NoError(t, err)

	require.Len(t, decoded.Groups, 1)
	require.Len(t, decoded.Groups[0].Zones, 1)
	got := decoded.Groups[0].Zones[0]
	assert.Equal(t, 36, got.KeyLow)
	assert.Equal(t, 40, got.KeyHigh)
	assert.Equal(t, 36, got.KeyRoot)
	assert.Equal(t, int64(0), got.Start)
	assert.Equal(t, int64(4), got.Stop)
}

func TestGenericPluginDecodeRejectsBadXML(t *testing.T) {
	p := NewGenericPlugin("bitwig", ".bwpreset", "MultisampleDocument", "Test")
	_, err := p.decode([]byte("not xml"), t.TempDir())
	assert.ErrorIs(t, err, domain.ErrFormat)
}
