package wavfile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schollz/convertwithmoss/internal/domain"
)

func monoFile(sampleRate, bitRes int, frames int, fill byte) *File {
	bytesPerFrame := bitRes / 8
	pcm := make([]byte, frames*bytesPerFrame)
	for i := range pcm {
		pcm[i] = fill
	}
	return &File{
		Metadata: domain.AudioMetadata{
			Channels:       1,
			SampleRate:     sampleRate,
			BitResolution:  bitRes,
			NumberOfFrames: int64(frames),
		},
		PCM:      pcm,
		ListInfo: map[string]string{},
	}
}

func TestEmitParseRoundTrip(t *testing.T) {
	f := monoFile(44100, 16, 8, 0x42)
	f.HasUnityNote = true
	f.UnityNote = 60
	f.Loops = []SampleLoopDescriptor{{Type: domain.LoopForwards, Start: 1, End: 6, Fraction: 0}}
	f.CuePoints = []uint32{2, 5}
	f.ListInfo["INAM"] = "test sample"

	var buf bytes.Buffer
	require.NoError(t, Emit(f, &buf))

	got, err := Parse(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, f.Metadata.Channels, got.Metadata.Channels)
	assert.Equal(t, f.Metadata.SampleRate, got.Metadata.SampleRate)
	assert.Equal(t, f.Metadata.BitResolution, got.Metadata.BitResolution)
	assert.Equal(t, f.Metadata.NumberOfFrames, got.Metadata.NumberOfFrames)
	assert.Equal(t, f.PCM, got.PCM)
	assert.True(t, got.HasUnityNote)
	assert.Equal(t, 60, got.UnityNote)
	require.Len(t, got.Loops, 1)
	assert.Equal(t, domain.LoopForwards, got.Loops[0].Type)
	assert.Equal(t, uint32(1), got.Loops[0].Start)
	assert.Equal(t, uint32(6), got.Loops[0].End)
	assert.Equal(t, []uint32{2, 5}, got.CuePoints)
	assert.Equal(t, "test sample", got.ListInfo["INAM"])
}

func TestCombinePCMInterleaves(t *testing.T) {
	left := monoFile(44100, 16, 4, 0x11)
	right := monoFile(44100, 16, 4, 0x22)
	left.Loops = []SampleLoopDescriptor{{Type: domain.LoopForwards, Start: 1, End: 3}}
	right.Loops = []SampleLoopDescriptor{{Type: domain.LoopForwards, Start: 1, End: 3}}

	combined, err := CombinePCM(left, right)
	require.NoError(t, err)
	assert.Equal(t, 2, combined.Metadata.Channels)
	assert.Equal(t, int64(4), combined.Metadata.NumberOfFrames)

	for i := 0; i < 4; i++ {
		frame := combined.PCM[i*4 : i*4+4]
		assert.Equal(t, byte(0x11), frame[0])
		assert.Equal(t, byte(0x11), frame[1])
		assert.Equal(t, byte(0x22), frame[2])
		assert.Equal(t, byte(0x22), frame[3])
	}
}

func TestCombinePCMRejectsStereoInput(t *testing.T) {
	left := monoFile(44100, 16, 4, 1)
	left.Metadata.Channels = 2
	right := monoFile(44100, 16, 4, 1)

	_, err := CombinePCM(left, right)
	assert.ErrorIs(t, err, domain.ErrCombinationNotPossible)
}

func TestCombinePCMRejectsMismatchedFrameCount(t *testing.T) {
	left := monoFile(44100, 16, 4, 1)
	right := monoFile(44100, 16, 8, 1)

	_, err := CombinePCM(left, right)
	assert.ErrorIs(t, err, domain.ErrCombinationNotPossible)
}

func TestCombinePCMRejectsMismatchedLoops(t *testing.T) {
	left := monoFile(44100, 16, 4, 1)
	left.Loops = []SampleLoopDescriptor{{Type: domain.LoopForwards, Start: 0, End: 2}}
	right := monoFile(44100, 16, 4, 1)
	right.Loops = []SampleLoopDescriptor{{Type: domain.LoopBackwards, Start: 0, End: 2}}

	_, err := CombinePCM(left, right)
	assert.ErrorIs(t, err, domain.ErrCombinationNotPossible)
}
