// Package korgmultisample implements the Korg korgmultisample binary
// encoding documented as the fully-specified representative template
// in spec §4.7: a fixed header, a body of ID-prefixed metadata strings
// and nested sample blocks, and per-sample-block ascending-ID
// parameter loops. Grounded on spec §4.7 directly and on
// mukunda--modlib/itmod's struct-binary parsing style.
package korgmultisample

import (
	"bytes"
	"fmt"
	"time"

	"github.com/schollz/convertwithmoss/internal/bytestream"
	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/formats/binformat"
	"github.com/schollz/convertwithmoss/internal/wavfile"
)

// Prefix is the CLI format prefix for this plugin.
const Prefix = "korgmultisample"

var header8 = [8]byte{0x27, 0x00, 0x00, 0x00, 0x08, 0x01, 0x12, 0x12}
var extInfoTail = [2]byte{0x12, 0x0F}
var multiSampleTail = [6]byte{0x18, 0x01, 0x25, 0x00, 0x00, 0x00}

const (
	idSingleItemMarker = 0x12
	idTime             = 0x21

	metaAuthor   = 0x12
	metaCategory = 0x1A
	metaComment  = 0x22
	metaSample   = 0x2A
	metaUUID     = 0x3A
	metaBlock    = 0x0A // nested sample block

	paramStart     = 0x10
	paramLoopStart = 0x18
	paramEnd       = 0x20
	paramLoopTune  = 0x45
	paramOneShot   = 0x48
	paramBoost12dB = 0x50

	kzKeyBottom   = 0x10
	kzKeyTop      = 0x18
	kzKeyOriginal = 0x20
	kzFixedPitch  = 0x28
	kzTune        = 0x35
	kzLevelLeft   = 0x3D
	kzLevelRight  = 0x45
	kzColor       = 0x50
)

var colorBytes = [5]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}

// sampleBlock is one decoded "SAMPLE" nested block: a filename plus a
// zone's sample-window/loop and key-zone parameters.
type sampleBlock struct {
	filename string

	start, loopStart, end uint32
	hasLoop               bool
	boost12dB             bool

	keyBottom, keyTop, keyOriginal byte
	fixedPitch                     bool
	tune                           float32 // -999..999, tune*1000
	levelLeft, levelRight          float32 // -1000..1000, gain*1000
}

// Decode parses a korgmultisample binary blob into a MultisampleSource.
// sampleOpener resolves a block's filename into WAV bytes (relative to
// wherever the caller knows the companion .KSF files live).
func Decode(data []byte, sampleOpener func(filename string) ([]byte, error)) (*domain.MultisampleSource, error) {
	br := bytestream.NewReader(bytes.NewReader(data))

	tag, err := br.ReadFixedASCII(4)
	if err != nil || tag != "Korg" {
		return nil, fmt.Errorf("%w: missing Korg tag", domain.ErrFormat)
	}
	hdr, err := br.ReadBytes(8)
	if err != nil || !bytes.Equal(hdr, header8[:]) {
		return nil, fmt.Errorf("%w: unexpected fixed header", domain.ErrFormat)
	}
	if err := expectTag(br, "ExtendedFileInfo", extInfoTail[:]); err != nil {
		return nil, err
	}
	if err := expectTag(br, "MultiSample", multiSampleTail[:]); err != nil {
		return nil, err
	}
	if err := expectSingleItem(br); err != nil {
		return nil, err
	}
	marker, err := br.ReadU8()
	if err != nil || marker != idTime {
		return nil, fmt.Errorf("%w: missing ID_TIME marker", domain.ErrFormat)
	}
	if _, err := br.ReadU64(); err != nil { // creation unix seconds
		return nil, fmt.Errorf("%w: reading creation time: %v", domain.ErrFormat, err)
	}
	contentSize, err := br.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading content size: %v", domain.ErrFormat, err)
	}
	body, err := br.ReadBytes(int(contentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading content body: %v", domain.ErrFormat, err)
	}

	return decodeBody(body, sampleOpener)
}

func expectTag(br *bytestream.Reader, tag string, tail []byte) error {
	got, err := br.ReadLengthPrefixedASCII()
	if err != nil || got != tag {
		return fmt.Errorf("%w: expected tag %q", domain.ErrFormat, tag)
	}
	b, err := br.ReadBytes(len(tail))
	if err != nil || !bytes.Equal(b, tail) {
		return fmt.Errorf("%w: unexpected bytes after tag %q", domain.ErrFormat, tag)
	}
	return nil
}

func expectSingleItem(br *bytestream.Reader) error {
	got, err := br.ReadLengthPrefixedASCII()
	if err != nil || got != "SingleItem" {
		return fmt.Errorf("%w: expected SingleItem tag", domain.ErrFormat)
	}
	marker, err := br.ReadU8()
	if err != nil || marker != idSingleItemMarker {
		return fmt.Errorf("%w: expected SingleItem marker", domain.ErrFormat)
	}
	name, err := br.ReadLengthPrefixedASCII()
	if err != nil || name != "Sample Builder" {
		return fmt.Errorf("%w: expected \"Sample Builder\"", domain.ErrFormat)
	}
	return nil
}

func decodeBody(body []byte, sampleOpener func(string) ([]byte, error)) (*domain.MultisampleSource, error) {
	br := bytestream.NewReader(bytes.NewReader(body))

	ms := &domain.MultisampleSource{Groups: []*domain.Group{{Trigger: domain.TriggerAttack}}}
	group := ms.Groups[0]

	for {
		id, err := br.ReadByte()
		if err != nil {
			break
		}
		switch id {
		case metaAuthor:
			s, err := br.ReadLengthPrefixedASCII()
			if err != nil {
				return nil, fmt.Errorf("%w: AUTHOR: %v", domain.ErrFormat, err)
			}
			ms.Metadata.Creator = s
		case metaCategory:
			s, err := br.ReadLengthPrefixedASCII()
			if err != nil {
				return nil, fmt.Errorf("%w: CATEGORY: %v", domain.ErrFormat, err)
			}
			ms.Metadata.Category = s
		case metaComment:
			s, err := br.ReadLengthPrefixedASCII()
			if err != nil {
				return nil, fmt.Errorf("%w: COMMENT: %v", domain.ErrFormat, err)
			}
			ms.Metadata.Description = s
		case metaSample:
			s, err := br.ReadLengthPrefixedASCII()
			if err != nil {
				return nil, fmt.Errorf("%w: SAMPLE name: %v", domain.ErrFormat, err)
			}
			ms.Name = s
		case metaUUID:
			n, err := br.ReadU8()
			if err != nil || n != 16 {
				return nil, fmt.Errorf("%w: UUID length", domain.ErrFormat)
			}
			if _, err := br.ReadBytes(16); err != nil {
				return nil, fmt.Errorf("%w: UUID bytes: %v", domain.ErrFormat, err)
			}
		case metaBlock:
			length, err := br.ReadU32()
			if err != nil {
				return nil, fmt.Errorf("%w: sample block length: %v", domain.ErrFormat, err)
			}
			raw, err := br.ReadBytes(int(length))
			if err != nil {
				return nil, fmt.Errorf("%w: sample block body: %v", domain.ErrFormat, err)
			}
			sb, err := decodeSampleBlock(raw)
			if err != nil {
				return nil, err
			}
			zone, err := sampleBlockToZone(sb, sampleOpener)
			if err != nil {
				return nil, err
			}
			group.Zones = append(group.Zones, zone)
		default:
			return nil, fmt.Errorf("%w: unknown body block id 0x%02X", domain.ErrFormat, id)
		}
	}

	if err := domain.ValidateMultisample(ms); err != nil {
		return nil, err
	}
	return ms, nil
}

func decodeSampleBlock(raw []byte) (*sampleBlock, error) {
	br := bytestream.NewReader(bytes.NewReader(raw))
	filename, err := br.ReadLengthPrefixedASCII()
	if err != nil {
		return nil, fmt.Errorf("%w: sample block filename: %v", domain.ErrFormat, err)
	}
	sb := &sampleBlock{filename: filename}

	_, err = binformat.ReadAscendingParams(br, func(id byte, r *bytestream.Reader) ([]byte, error) {
		switch id {
		case paramStart:
			v, _, err := r.ReadVarUint()
			sb.start = v
			return nil, err
		case paramLoopStart:
			v, _, err := r.ReadVarUint()
			sb.loopStart = v
			sb.hasLoop = true
			return nil, err
		case paramEnd:
			v, _, err := r.ReadVarUint()
			sb.end = v
			return nil, err
		case paramLoopTune:
			_, err := r.ReadBytes(4)
			return nil, err
		case paramOneShot:
			_, err := r.ReadU8()
			return nil, err
		case paramBoost12dB:
			v, err := r.ReadU8()
			sb.boost12dB = v != 0
			return nil, err
		default:
			return nil, fmt.Errorf("%w: unknown sample param id 0x%02X", domain.ErrFormat, id)
		}
	})
	if err != nil {
		return nil, err
	}

	_, err = binformat.ReadAscendingParams(br, func(id byte, r *bytestream.Reader) ([]byte, error) {
		switch id {
		case kzKeyBottom:
			v, err := r.ReadU8()
			sb.keyBottom = v
			return nil, err
		case kzKeyTop:
			v, err := r.ReadU8()
			sb.keyTop = v
			return nil, err
		case kzKeyOriginal:
			v, err := r.ReadU8()
			sb.keyOriginal = v
			return nil, err
		case kzFixedPitch:
			_, err := r.ReadU8()
			sb.fixedPitch = true
			return nil, err
		case kzTune:
			v, err := r.ReadFloat32()
			sb.tune = v
			return nil, err
		case kzLevelLeft:
			v, err := r.ReadFloat32()
			sb.levelLeft = v
			return nil, err
		case kzLevelRight:
			v, err := r.ReadFloat32()
			sb.levelRight = v
			return nil, err
		case kzColor:
			_, err := r.ReadBytes(5)
			return nil, err
		default:
			return nil, fmt.Errorf("%w: unknown key-zone param id 0x%02X", domain.ErrFormat, id)
		}
	})
	if err != nil {
		return nil, err
	}
	return sb, nil
}

func sampleBlockToZone(sb *sampleBlock, sampleOpener func(string) ([]byte, error)) (*domain.SampleZone, error) {
	raw, err := sampleOpener(sb.filename)
	if err != nil {
		return nil, err
	}
	wf, err := wavfile.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	z := domain.NewSampleZone(sb.filename)
	z.SampleData = &domain.SampleData{
		Metadata: wf.Metadata,
		Backing:  domain.MemoryBacking{Data: raw},
	}
	z.Start = int64(sb.start)
	z.Stop = wf.Metadata.NumberOfFrames
	if sb.hasLoop {
		z.Loops = []domain.SampleLoop{{Type: domain.LoopForwards, Start: int64(sb.loopStart), End: z.Stop}}
	}
	z.KeyLow = int(sb.keyBottom)
	z.KeyHigh = int(sb.keyTop)
	z.KeyRoot = int(sb.keyOriginal)
	if sb.fixedPitch {
		z.KeyTracking = 0
	}
	z.Tune = float64(sb.tune) / 1000
	gainLeft := float64(sb.levelLeft) / 1000
	gainRight := float64(sb.levelRight) / 1000
	z.Gain = (gainLeft + gainRight) / 2
	z.Panorama = gainRight - gainLeft
	if sb.boost12dB {
		z.Gain *= 4 // +12dB linear
	}
	return z, nil
}

// Encode serializes a MultisampleSource back into the korgmultisample
// binary form. sampleWriter receives each zone's filename and WAV bytes
// so the caller can decide where the companion .KSF files land.
func Encode(ms *domain.MultisampleSource, createdAt time.Time, sampleWriter func(filename string, wav []byte) error) ([]byte, error) {
	bodyW := bytestream.NewWriter()
	if ms.Metadata.Creator != "" {
		bodyW.WriteU8(metaAuthor)
		if err := bodyW.WriteLengthPrefixedASCII(ms.Metadata.Creator); err != nil {
			return nil, err
		}
	}
	if ms.Metadata.Category != "" {
		bodyW.WriteU8(metaCategory)
		if err := bodyW.WriteLengthPrefixedASCII(ms.Metadata.Category); err != nil {
			return nil, err
		}
	}
	if ms.Metadata.Description != "" {
		bodyW.WriteU8(metaComment)
		if err := bodyW.WriteLengthPrefixedASCII(ms.Metadata.Description); err != nil {
			return nil, err
		}
	}
	bodyW.WriteU8(metaSample)
	if err := bodyW.WriteLengthPrefixedASCII(ms.Name); err != nil {
		return nil, err
	}

	for _, g := range ms.Groups {
		for _, z := range g.Zones {
			block, wavBytes, err := encodeSampleBlock(z)
			if err != nil {
				return nil, err
			}
			if err := sampleWriter(z.Name+".KSF", wavBytes); err != nil {
				return nil, err
			}
			bodyW.WriteU8(metaBlock)
			bodyW.WriteU32(uint32(len(block)))
			bodyW.WriteBytes(block)
		}
	}

	out := bytestream.NewWriter()
	out.WriteFixedASCII("Korg", 4)
	out.WriteBytes(header8[:])
	if err := out.WriteLengthPrefixedASCII("ExtendedFileInfo"); err != nil {
		return nil, err
	}
	out.WriteBytes(extInfoTail[:])
	if err := out.WriteLengthPrefixedASCII("MultiSample"); err != nil {
		return nil, err
	}
	out.WriteBytes(multiSampleTail[:])
	if err := out.WriteLengthPrefixedASCII("SingleItem"); err != nil {
		return nil, err
	}
	out.WriteU8(idSingleItemMarker)
	if err := out.WriteLengthPrefixedASCII("Sample Builder"); err != nil {
		return nil, err
	}
	out.WriteU8(idTime)
	out.WriteU64(uint64(createdAt.Unix()))
	out.WriteU32(uint32(bodyW.Len()))
	out.WriteBytes(bodyW.Bytes())

	return out.Bytes(), nil
}

func encodeSampleBlock(z *domain.SampleZone) ([]byte, []byte, error) {
	var wavBytes []byte
	var buf bytes.Buffer
	if z.SampleData != nil {
		if err := z.SampleData.Backing.WriteSample(&buf); err != nil {
			return nil, nil, err
		}
		wavBytes = buf.Bytes()
	}

	w := bytestream.NewWriter()
	if err := w.WriteLengthPrefixedASCII(z.Name + ".KSF"); err != nil {
		return nil, nil, err
	}

	w.WriteU8(paramStart)
	w.WriteVarUint(uint32(z.Start))
	if len(z.Loops) > 0 {
		w.WriteU8(paramLoopStart)
		w.WriteVarUint(uint32(z.Loops[0].Start))
	}
	w.WriteU8(paramEnd)
	w.WriteVarUint(uint32(z.Stop))
	if len(z.Loops) == 0 {
		w.WriteU8(paramOneShot)
		w.WriteU8(1)
	}

	w.WriteU8(kzKeyBottom)
	w.WriteU8(uint8(z.KeyLow))
	w.WriteU8(kzKeyTop)
	w.WriteU8(uint8(z.KeyHigh))
	w.WriteU8(kzKeyOriginal)
	w.WriteU8(uint8(z.KeyRoot))
	if z.KeyTracking == 0 {
		w.WriteU8(kzFixedPitch)
		w.WriteU8(1)
	}
	w.WriteU8(kzTune)
	w.WriteFloat32(float32(z.Tune * 1000))
	w.WriteU8(kzLevelLeft)
	w.WriteFloat32(float32((z.Gain - z.Panorama/2) * 1000))
	w.WriteU8(kzLevelRight)
	w.WriteFloat32(float32((z.Gain + z.Panorama/2) * 1000))
	w.WriteU8(kzColor)
	w.WriteBytes(colorBytes[:])

	return w.Bytes(), wavBytes, nil
}
