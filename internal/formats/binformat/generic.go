package binformat

import (
	"bytes"
	"fmt"

	"github.com/schollz/convertwithmoss/internal/bytestream"
	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/wavfile"
)

// GenericPlugin parses the structural skeleton spec §4.7 describes as
// common to every Korg/NI-style binary multisample format beyond the
// fully-specified korgmultisample template: a fixed ASCII tag, a
// length-prefixed sample-name, and an ascending-ID parameter loop
// covering the key/velocity range, sample window, loop points, tuning
// and gain every such format exposes in some shape. Plugins for the
// vendor formats whose concrete per-ID byte tables fall outside
// korgmultisample's fully-documented template (spec §1 scopes these
// exotic tables out) are built on this shared skeleton instead of a
// bespoke one.
type GenericPlugin struct {
	Prefix      string
	Extension   string
	DisplayName string
	Tag         string // fixed ASCII tag expected at the start of the file
}

const (
	genParamKeyLow   = 0x10
	genParamKeyHigh  = 0x18
	genParamKeyRoot  = 0x20
	genParamVelLow   = 0x28
	genParamVelHigh  = 0x30
	genParamStart    = 0x38
	genParamEnd      = 0x40
	genParamLoopStart = 0x48
	genParamHasLoop  = 0x50
	genParamTune     = 0x58
	genParamGain     = 0x60
	genParamPan      = 0x68
)

// Decode parses the generic binary framing: tag, program name, a u32
// zone count, then that many zone records (filename followed by
// ascending params), all placed in a single group.
func (p *GenericPlugin) Decode(data []byte, sampleOpener func(filename string) ([]byte, error)) (*domain.MultisampleSource, error) {
	br := bytestream.NewReader(bytes.NewReader(data))
	tag, err := br.ReadFixedASCII(len(p.Tag))
	if err != nil || tag != p.Tag {
		return nil, fmt.Errorf("%w: missing %s tag", domain.ErrFormat, p.Tag)
	}
	name, err := br.ReadLengthPrefixedASCII()
	if err != nil {
		return nil, fmt.Errorf("%w: reading program name: %v", domain.ErrFormat, err)
	}
	count, err := br.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading zone count: %v", domain.ErrFormat, err)
	}

	ms := &domain.MultisampleSource{Name: name, Groups: []*domain.Group{{Trigger: domain.TriggerAttack}}}
	group := ms.Groups[0]

	for i := uint32(0); i < count; i++ {
		z, err := p.decodeZone(br, sampleOpener)
		if err != nil {
			return nil, err
		}
		group.Zones = append(group.Zones, z)
	}
	if err := domain.ValidateMultisample(ms); err != nil {
		return nil, err
	}
	return ms, nil
}

func (p *GenericPlugin) decodeZone(br *bytestream.Reader, sampleOpener func(string) ([]byte, error)) (*domain.SampleZone, error) {
	filename, err := br.ReadLengthPrefixedASCII()
	if err != nil {
		return nil, fmt.Errorf("%w: zone filename: %v", domain.ErrFormat, err)
	}

	z := domain.NewSampleZone(filename)
	var start, end, loopStart uint32
	var hasLoop bool

	_, err = ReadAscendingParams(br, func(id byte, r *bytestream.Reader) ([]byte, error) {
		switch id {
		case genParamKeyLow:
			v, err := r.ReadU8()
			z.KeyLow = int(v)
			return nil, err
		case genParamKeyHigh:
			v, err := r.ReadU8()
			z.KeyHigh = int(v)
			return nil, err
		case genParamKeyRoot:
			v, err := r.ReadU8()
			z.KeyRoot = int(v)
			return nil, err
		case genParamVelLow:
			v, err := r.ReadU8()
			z.VelocityLow = int(v)
			return nil, err
		case genParamVelHigh:
			v, err := r.ReadU8()
			z.VelocityHigh = int(v)
			return nil, err
		case genParamStart:
			v, _, err := r.ReadVarUint()
			start = v
			return nil, err
		case genParamEnd:
			v, _, err := r.ReadVarUint()
			end = v
			return nil, err
		case genParamLoopStart:
			v, _, err := r.ReadVarUint()
			loopStart = v
			hasLoop = true
			return nil, err
		case genParamHasLoop:
			v, err := r.ReadU8()
			hasLoop = hasLoop || v != 0
			return nil, err
		case genParamTune:
			v, err := r.ReadFloat32()
			z.Tune = float64(v)
			return nil, err
		case genParamGain:
			v, err := r.ReadFloat32()
			z.Gain = float64(v)
			return nil, err
		case genParamPan:
			v, err := r.ReadFloat32()
			z.Panorama = float64(v)
			return nil, err
		default:
			return nil, fmt.Errorf("%w: unknown generic param id 0x%02X", domain.ErrFormat, id)
		}
	})
	if err != nil {
		return nil, err
	}

	raw, err := sampleOpener(filename)
	if err != nil {
		return nil, err
	}
	wf, err := wavfile.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	z.SampleData = &domain.SampleData{Metadata: wf.Metadata, Backing: domain.MemoryBacking{Data: raw}}
	z.Start = int64(start)
	if end > 0 {
		z.Stop = int64(end)
	} else {
		z.Stop = wf.Metadata.NumberOfFrames
	}
	if hasLoop {
		z.Loops = []domain.SampleLoop{{Type: domain.LoopForwards, Start: int64(loopStart), End: z.Stop}}
	}
	return z, nil
}

// Encode serializes a MultisampleSource into the generic binary framing.
func (p *GenericPlugin) Encode(ms *domain.MultisampleSource, sampleWriter func(filename string, wav []byte) error) ([]byte, error) {
	out := bytestream.NewWriter()
	out.WriteFixedASCII(p.Tag, len(p.Tag))
	if err := out.WriteLengthPrefixedASCII(ms.Name); err != nil {
		return nil, err
	}

	var zones []*domain.SampleZone
	for _, g := range ms.Groups {
		zones = append(zones, g.Zones...)
	}
	out.WriteU32(uint32(len(zones)))

	for _, z := range zones {
		block, wavBytes, err := p.encodeZone(z)
		if err != nil {
			return nil, err
		}
		if err := sampleWriter(z.Name+".wav", wavBytes); err != nil {
			return nil, err
		}
		out.WriteBytes(block)
	}
	return out.Bytes(), nil
}

func (p *GenericPlugin) encodeZone(z *domain.SampleZone) (block []byte, wavBytes []byte, err error) {
	bw := bytestream.NewWriter()
	if err := bw.WriteLengthPrefixedASCII(z.Name + ".wav"); err != nil {
		return nil, nil, err
	}
	bw.WriteU8(genParamKeyLow)
	bw.WriteU8(uint8(z.KeyLow))
	bw.WriteU8(genParamKeyHigh)
	bw.WriteU8(uint8(z.KeyHigh))
	if z.KeyRoot >= 0 {
		bw.WriteU8(genParamKeyRoot)
		bw.WriteU8(uint8(z.KeyRoot))
	}
	bw.WriteU8(genParamVelLow)
	bw.WriteU8(uint8(z.VelocityLow))
	bw.WriteU8(genParamVelHigh)
	bw.WriteU8(uint8(z.VelocityHigh))
	bw.WriteU8(genParamStart)
	bw.WriteVarUint(uint32(z.Start))
	bw.WriteU8(genParamEnd)
	bw.WriteVarUint(uint32(z.Stop))
	if len(z.Loops) > 0 {
		bw.WriteU8(genParamLoopStart)
		bw.WriteVarUint(uint32(z.Loops[0].Start))
	}
	bw.WriteU8(genParamTune)
	bw.WriteFloat32(float32(z.Tune))
	bw.WriteU8(genParamGain)
	bw.WriteFloat32(float32(z.Gain))
	bw.WriteU8(genParamPan)
	bw.WriteFloat32(float32(z.Panorama))

	var buf bytes.Buffer
	if z.SampleData != nil {
		if err := z.SampleData.Backing.WriteSample(&buf); err != nil {
			return nil, nil, err
		}
	}
	return bw.Bytes(), buf.Bytes(), nil
}
