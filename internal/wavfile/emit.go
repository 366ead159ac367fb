package wavfile

import (
	"fmt"
	"io"
	"math"

	"github.com/schollz/convertwithmoss/internal/bytestream"
	"github.com/schollz/convertwithmoss/internal/domain"
)

// Emit composes a complete RIFF/WAVE stream from f's metadata, loops and
// raw PCM, writing it to w. Chunk sizes and word-alignment padding are
// computed per spec §4.2; a pad byte is added whenever a chunk's length
// is odd and is never counted in that chunk's declared size.
func Emit(f *File, w io.Writer) error {
	bw := bytestream.NewWriter()

	fmtChunk := bytestream.NewWriter()
	blockAlign := (f.Metadata.BitResolution / 8) * f.Metadata.Channels
	byteRate := blockAlign * f.Metadata.SampleRate
	fmtChunk.WriteU16(uint16(formatPCM))
	fmtChunk.WriteU16(uint16(f.Metadata.Channels))
	fmtChunk.WriteU32(uint32(f.Metadata.SampleRate))
	fmtChunk.WriteU32(uint32(byteRate))
	fmtChunk.WriteU16(uint16(blockAlign))
	fmtChunk.WriteU16(uint16(f.Metadata.BitResolution))

	writeChunk(bw, "fmt ", fmtChunk.Bytes())
	writeChunk(bw, "data", f.PCM)

	if len(f.Loops) > 0 || f.HasUnityNote {
		writeChunk(bw, "smpl", encodeSmplChunk(f))
	}
	if f.HasInstrumentChunk {
		writeChunk(bw, "inst", encodeInstChunk(f))
	}
	if len(f.CuePoints) > 0 {
		writeChunk(bw, "cue ", encodeCueChunk(f))
	}
	if len(f.ListInfo) > 0 {
		writeChunk(bw, "LIST", encodeListChunk(f))
	}
	if f.BroadcastDescription != "" || f.BroadcastOriginator != "" {
		writeChunk(bw, "bext", encodeBextChunk(f))
	}

	out := bytestream.NewWriter()
	out.WriteFixedASCII("RIFF", 4)
	out.WriteU32(uint32(4 + bw.Len())) // "WAVE" + every sub-chunk already includes its own header
	out.WriteFixedASCII("WAVE", 4)
	out.WriteBytes(bw.Bytes())

	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return nil
}

func writeChunk(dst *bytestream.Writer, id string, payload []byte) {
	dst.WriteFixedASCII(id, 4)
	dst.WriteU32(uint32(len(payload)))
	dst.WriteBytes(payload)
	if len(payload)%2 == 1 {
		dst.WriteU8(0)
	}
}

func encodeSmplChunk(f *File) []byte {
	w := bytestream.NewWriter()
	w.WriteU32(0) // manufacturer
	w.WriteU32(0) // product
	w.WriteU32(0) // sample period, ns (unknown at this layer)
	w.WriteU32(uint32(f.UnityNote))
	w.WriteU32(uint32(f.PitchFraction / 100 * float64(0xFFFFFFFF)))
	w.WriteU32(0) // SMPTE format
	w.WriteU32(0) // SMPTE offset
	w.WriteU32(uint32(len(f.Loops)))
	w.WriteU32(0) // sampler data size

	for i, loop := range f.Loops {
		w.WriteU32(uint32(i))
		var loopType uint32
		switch loop.Type {
		case domain.LoopBackwards:
			loopType = 1
		case domain.LoopAlternating:
			loopType = 2
		}
		w.WriteU32(loopType)
		w.WriteU32(loop.Start)
		w.WriteU32(loop.End)
		w.WriteU32(uint32(loop.Fraction * float64(0xFFFFFFFF)))
		w.WriteU32(0) // infinite play count
	}
	return w.Bytes()
}

func encodeInstChunk(f *File) []byte {
	w := bytestream.NewWriter()
	w.WriteU8(uint8(f.UnityNote))
	w.WriteU8(0) // fine tune
	w.WriteU8(byte(int8(clampGainDb(linearToDb(f.InstrumentGain)))))
	w.WriteU8(0)   // low note
	w.WriteU8(127) // high note
	w.WriteU8(1)   // low velocity
	w.WriteU8(127) // high velocity
	return w.Bytes()
}

func linearToDb(v float64) float64 {
	if v <= 0 {
		return -127
	}
	return 20 * math.Log10(v)
}

func clampGainDb(db float64) float64 {
	return math.Max(-127, math.Min(127, db))
}

func encodeCueChunk(f *File) []byte {
	w := bytestream.NewWriter()
	w.WriteU32(uint32(len(f.CuePoints)))
	for i, pos := range f.CuePoints {
		w.WriteU32(uint32(i))
		w.WriteU32(pos)
		w.WriteFixedASCII("data", 4)
		w.WriteU32(0)
		w.WriteU32(0)
		w.WriteU32(pos)
	}
	return w.Bytes()
}

func encodeListChunk(f *File) []byte {
	w := bytestream.NewWriter()
	w.WriteFixedASCII("INFO", 4)
	for id, text := range f.ListInfo {
		w.WriteFixedASCII(id, 4)
		w.WriteU32(uint32(len(text)))
		w.WriteBytes([]byte(text))
		if len(text)%2 == 1 {
			w.WriteU8(0)
		}
	}
	return w.Bytes()
}

func encodeBextChunk(f *File) []byte {
	w := bytestream.NewWriter()
	w.WriteFixedASCII(f.BroadcastDescription, 256)
	w.WriteFixedASCII(f.BroadcastOriginator, 32)
	return w.Bytes()
}
