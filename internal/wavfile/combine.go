package wavfile

import (
	"fmt"

	"github.com/schollz/convertwithmoss/internal/domain"
)

// CombinePCM interleaves two mono PCM buffers frame-for-frame into a
// single stereo buffer (L,R,L,R,...), per spec §4.2. It returns
// ErrCombinationNotPossible unless both inputs are mono and identical in
// sample rate, bit resolution, frame count and loop list
// (internal/algorithms owns the zone-level pairing; this is the raw
// byte-combine step).
func CombinePCM(left, right *File) (*File, error) {
	if left.Metadata.Channels != 1 || right.Metadata.Channels != 1 {
		return nil, fmt.Errorf("%w: both inputs must be mono", domain.ErrCombinationNotPossible)
	}
	if left.Metadata.SampleRate != right.Metadata.SampleRate ||
		left.Metadata.BitResolution != right.Metadata.BitResolution ||
		left.Metadata.NumberOfFrames != right.Metadata.NumberOfFrames {
		return nil, fmt.Errorf("%w: mismatched audio metadata", domain.ErrCombinationNotPossible)
	}
	if !loopsEqual(left.Loops, right.Loops) {
		return nil, fmt.Errorf("%w: mismatched loop lists", domain.ErrCombinationNotPossible)
	}

	bytesPerSample := left.Metadata.BitResolution / 8
	frameBytes := bytesPerSample
	frames := int(left.Metadata.NumberOfFrames)
	pcm := make([]byte, 0, frames*frameBytes*2)
	for i := 0; i < frames; i++ {
		lo := i * frameBytes
		ro := i * frameBytes
		pcm = append(pcm, left.PCM[lo:lo+frameBytes]...)
		pcm = append(pcm, right.PCM[ro:ro+frameBytes]...)
	}

	return &File{
		Metadata: domain.AudioMetadata{
			Channels:       2,
			SampleRate:     left.Metadata.SampleRate,
			BitResolution:  left.Metadata.BitResolution,
			NumberOfFrames: left.Metadata.NumberOfFrames,
		},
		PCM:          pcm,
		HasUnityNote: left.HasUnityNote,
		UnityNote:    left.UnityNote,
		Loops:        left.Loops,
		ListInfo:     map[string]string{},
	}, nil
}

func loopsEqual(a, b []SampleLoopDescriptor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Start != b[i].Start || a[i].End != b[i].End {
			return false
		}
	}
	return true
}
