// Package sf2 reads and writes SoundFont2 banks (the "sfbk" RIFF form):
// an INFO list, a raw-PCM sdta list, and a pdta list of preset/
// instrument/sample header records. Grounded on internal/wavfile's
// RIFF chunk walk (same length-prefixed/padded chunk shape, same
// bytestream primitives) generalized to SF2's own record layout, which
// is openly documented unlike the vendor-proprietary binary formats
// spec §1 scopes out to common-technique level only.
package sf2

import (
	"bytes"
	"fmt"

	"github.com/schollz/convertwithmoss/internal/bytestream"
	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/wavfile"
)

const Prefix = "sf2"

const (
	genKeyRange  = 43
	genVelRange  = 44
	genSampleID  = 53
)

type sampleHeader struct {
	name                       string
	start, end                 uint32
	startLoop, endLoop         uint32
	sampleRate                 uint32
	originalPitch              uint8
	pitchCorrection            int8
}

type instZone struct {
	keyLow, keyHigh int
	velLow, velHigh int
	sampleID        int
	hasSample       bool
}

// Decode parses one SoundFont2 bank into one MultisampleSource per
// instrument record (SF2 has no notion of "one file, one multisample";
// this plugin treats each instrument as the unit Detect reports).
func Decode(data []byte) ([]*domain.MultisampleSource, error) {
	br := bytestream.NewReader(bytes.NewReader(data))
	tag, err := br.ReadFixedASCII(4)
	if err != nil || tag != "RIFF" {
		return nil, fmt.Errorf("%w: missing RIFF tag", domain.ErrFormat)
	}
	if _, err := br.ReadU32(); err != nil {
		return nil, fmt.Errorf("%w: reading RIFF size: %v", domain.ErrFormat, err)
	}
	form, err := br.ReadFixedASCII(4)
	if err != nil || form != "sfbk" {
		return nil, fmt.Errorf("%w: missing sfbk form", domain.ErrFormat)
	}

	var pcm []byte
	var insts []string
	var ibag []struct{ genNdx uint16 }
	var igen []struct {
		op     uint16
		amount uint16
	}
	var shdrs []sampleHeader
	var presetName string

	for {
		id, err := br.ReadFixedASCII(4)
		if err != nil {
			break
		}
		size, err := br.ReadU32()
		if err != nil {
			return nil, fmt.Errorf("%w: reading chunk size: %v", domain.ErrFormat, err)
		}
		payload, err := br.ReadBytes(int(size))
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s payload: %v", domain.ErrFormat, id, err)
		}
		if size%2 == 1 {
			_, _ = br.ReadByte()
		}
		if id != "LIST" {
			continue
		}
		lr := bytestream.NewReader(bytes.NewReader(payload))
		listType, err := lr.ReadFixedASCII(4)
		if err != nil {
			continue
		}
		switch listType {
		case "INFO":
			walkSubChunks(lr, func(subID string, sub []byte) {
				if subID == "INAM" {
					presetName = trimZeros(sub)
				}
			})
		case "sdta":
			walkSubChunks(lr, func(subID string, sub []byte) {
				if subID == "smpl" {
					pcm = sub
				}
			})
		case "pdta":
			walkSubChunks(lr, func(subID string, sub []byte) {
				switch subID {
				case "inst":
					insts = decodeInstNames(sub)
				case "ibag":
					ibag = decodeBag(sub)
				case "igen":
					igen = decodeGen(sub)
				case "shdr":
					shdrs = decodeShdr(sub)
				}
			})
		}
	}

	if pcm == nil || len(shdrs) == 0 {
		return nil, fmt.Errorf("%w: missing sdta/shdr data", domain.ErrFormat)
	}

	var out []*domain.MultisampleSource
	for i, name := range insts {
		if i+1 >= len(ibag) {
			continue
		}
		zones := instrumentZones(ibag, igen, i)
		ms := &domain.MultisampleSource{Name: name, Groups: []*domain.Group{{Trigger: domain.TriggerAttack}}}
		for _, iz := range zones {
			if !iz.hasSample || iz.sampleID >= len(shdrs) {
				continue
			}
			z, err := buildZone(shdrs[iz.sampleID], pcm, iz)
			if err != nil {
				continue
			}
			ms.Groups[0].Zones = append(ms.Groups[0].Zones, z)
		}
		if len(ms.Groups[0].Zones) == 0 {
			continue
		}
		if err := domain.ValidateMultisample(ms); err != nil {
			continue
		}
		out = append(out, ms)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no usable instruments in bank %q", domain.ErrFormat, presetName)
	}
	return out, nil
}

func walkSubChunks(r *bytestream.Reader, visit func(id string, payload []byte)) {
	for {
		id, err := r.ReadFixedASCII(4)
		if err != nil {
			return
		}
		size, err := r.ReadU32()
		if err != nil {
			return
		}
		payload, err := r.ReadBytes(int(size))
		if err != nil {
			return
		}
		if size%2 == 1 {
			_, _ = r.ReadByte()
		}
		visit(id, payload)
	}
}

func trimZeros(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func decodeInstNames(payload []byte) []string {
	var names []string
	for off := 0; off+22 <= len(payload); off += 22 {
		names = append(names, trimZeros(payload[off:off+20]))
	}
	return names
}

func decodeBag(payload []byte) []struct{ genNdx uint16 } {
	var bags []struct{ genNdx uint16 }
	for off := 0; off+4 <= len(payload); off += 4 {
		genNdx := uint16(payload[off]) | uint16(payload[off+1])<<8
		bags = append(bags, struct{ genNdx uint16 }{genNdx})
	}
	return bags
}

func decodeGen(payload []byte) []struct {
	op     uint16
	amount uint16
} {
	var gens []struct {
		op     uint16
		amount uint16
	}
	for off := 0; off+4 <= len(payload); off += 4 {
		op := uint16(payload[off]) | uint16(payload[off+1])<<8
		amount := uint16(payload[off+2]) | uint16(payload[off+3])<<8
		gens = append(gens, struct {
			op     uint16
			amount uint16
		}{op, amount})
	}
	return gens
}

func decodeShdr(payload []byte) []sampleHeader {
	var out []sampleHeader
	for off := 0; off+46 <= len(payload); off += 46 {
		rec := payload[off : off+46]
		h := sampleHeader{
			name:            trimZeros(rec[0:20]),
			start:           le32(rec[20:24]),
			end:             le32(rec[24:28]),
			startLoop:       le32(rec[28:32]),
			endLoop:         le32(rec[32:36]),
			sampleRate:      le32(rec[36:40]),
			originalPitch:   rec[40],
			pitchCorrection: int8(rec[41]),
		}
		out = append(out, h)
	}
	return out
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func instrumentZones(ibag []struct{ genNdx uint16 }, igen []struct {
	op     uint16
	amount uint16
}, instIdx int) []instZone {
	lo := int(ibag[instIdx].genNdx)
	hi := len(igen)
	if instIdx+1 < len(ibag) {
		hi = int(ibag[instIdx+1].genNdx)
	}
	var zones []instZone
	z := instZone{keyLow: 0, keyHigh: 127, velLow: 0, velHigh: 127}
	for _, g := range igen[minInt(lo, len(igen)):minInt(hi, len(igen))] {
		switch g.op {
		case genKeyRange:
			z.keyLow = int(byte(g.amount))
			z.keyHigh = int(byte(g.amount >> 8))
		case genVelRange:
			z.velLow = int(byte(g.amount))
			z.velHigh = int(byte(g.amount >> 8))
		case genSampleID:
			z.sampleID = int(g.amount)
			z.hasSample = true
			zones = append(zones, z)
			z = instZone{keyLow: 0, keyHigh: 127, velLow: 0, velHigh: 127}
		}
	}
	return zones
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func buildZone(h sampleHeader, pcm []byte, iz instZone) (*domain.SampleZone, error) {
	startByte := int(h.start) * 2
	endByte := int(h.end) * 2
	if startByte < 0 || endByte > len(pcm) || startByte >= endByte {
		return nil, fmt.Errorf("%w: sample %q out of range", domain.ErrFormat, h.name)
	}
	raw := pcm[startByte:endByte]
	frames := int64(len(raw) / 2)

	z := domain.NewSampleZone(h.name)
	z.KeyLow, z.KeyHigh = iz.keyLow, iz.keyHigh
	z.VelocityLow, z.VelocityHigh = clampVel(iz.velLow), clampVel(iz.velHigh)
	z.KeyRoot = int(h.originalPitch)
	z.Tune = float64(h.pitchCorrection) / 100
	z.Stop = frames
	if h.endLoop > h.startLoop {
		z.Loops = []domain.SampleLoop{{
			Type:  domain.LoopForwards,
			Start: int64(h.startLoop) - int64(h.start),
			End:   int64(h.endLoop) - int64(h.start),
		}}
	}
	metadata := domain.AudioMetadata{Channels: 1, SampleRate: int(h.sampleRate), BitResolution: 16, NumberOfFrames: frames}
	var buf bytes.Buffer
	if err := wavfile.Emit(&wavfile.File{Metadata: metadata, PCM: raw}, &buf); err != nil {
		return nil, err
	}
	z.SampleData = &domain.SampleData{
		Metadata: metadata,
		Backing:  domain.MemoryBacking{Data: buf.Bytes()},
	}
	return z, nil
}

func clampVel(v int) int {
	if v <= 0 {
		return 1
	}
	if v > 127 {
		return 127
	}
	return v
}

// Encode serializes one MultisampleSource as a single-instrument,
// single-preset SoundFont2 bank.
func Encode(ms *domain.MultisampleSource) ([]byte, error) {
	var zones []*domain.SampleZone
	for _, g := range ms.Groups {
		zones = append(zones, g.Zones...)
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("%w: no zones to encode", domain.ErrFormat)
	}

	var pcm bytes.Buffer
	shdrRecs := bytestream.NewWriter()
	for _, z := range zones {
		raw, err := zoneRawPCM(z)
		if err != nil {
			return nil, err
		}
		start := uint32(pcm.Len() / 2)
		pcm.Write(raw)
		end := uint32(pcm.Len() / 2)
		pcm.Write(make([]byte, 92)) // mandatory post-sample padding

		name := z.Name
		if len(name) > 20 {
			name = name[:20]
		}
		shdrRecs.WriteFixedASCII(name, 20)
		shdrRecs.WriteU32(start)
		shdrRecs.WriteU32(end)
		loopStart, loopEnd := start, start
		if len(z.Loops) > 0 {
			loopStart = start + uint32(z.Loops[0].Start)
			loopEnd = start + uint32(z.Loops[0].End)
		}
		shdrRecs.WriteU32(loopStart)
		shdrRecs.WriteU32(loopEnd)
		rate := 44100
		if z.SampleData != nil {
			rate = z.SampleData.Metadata.SampleRate
		}
		shdrRecs.WriteU32(uint32(rate))
		root := z.KeyRoot
		if root < 0 {
			root = 60
		}
		shdrRecs.WriteU8(uint8(root))
		shdrRecs.WriteU8(uint8(int8(z.Tune * 100)))
		shdrRecs.WriteU16(0) // sampleLink
		shdrRecs.WriteU16(1) // sampleType: mono
	}
	shdrRecs.WriteFixedASCII("EOS", 20)
	shdrRecs.WriteU32(0)
	shdrRecs.WriteU32(0)
	shdrRecs.WriteU32(0)
	shdrRecs.WriteU32(0)
	shdrRecs.WriteU32(0)
	shdrRecs.WriteU8(0)
	shdrRecs.WriteU8(0)
	shdrRecs.WriteU16(0)
	shdrRecs.WriteU16(0)

	igenRecs := bytestream.NewWriter()
	ibagRecs := bytestream.NewWriter()
	genIdx := uint16(0)
	for i, z := range zones {
		ibagRecs.WriteU16(genIdx)
		ibagRecs.WriteU16(0)
		igenRecs.WriteU16(genKeyRange)
		igenRecs.WriteU8(uint8(z.KeyLow))
		igenRecs.WriteU8(uint8(z.KeyHigh))
		igenRecs.WriteU16(genVelRange)
		igenRecs.WriteU8(uint8(z.VelocityLow))
		igenRecs.WriteU8(uint8(z.VelocityHigh))
		igenRecs.WriteU16(genSampleID)
		igenRecs.WriteU16(uint16(i))
		genIdx += 3
	}
	ibagRecs.WriteU16(genIdx)
	ibagRecs.WriteU16(0)

	instRecs := bytestream.NewWriter()
	instName := ms.Name
	if len(instName) > 20 {
		instName = instName[:20]
	}
	instRecs.WriteFixedASCII(instName, 20)
	instRecs.WriteU16(0)
	instRecs.WriteFixedASCII("EOI", 20)
	instRecs.WriteU16(1)

	phdrRecs := bytestream.NewWriter()
	phdrRecs.WriteFixedASCII(instName, 20)
	phdrRecs.WriteU16(0)
	phdrRecs.WriteU16(0)
	phdrRecs.WriteU16(0)
	phdrRecs.WriteU32(0)
	phdrRecs.WriteU32(0)
	phdrRecs.WriteU32(0)
	phdrRecs.WriteFixedASCII("EOP", 20)
	phdrRecs.WriteU16(0)
	phdrRecs.WriteU16(0)
	phdrRecs.WriteU16(0)
	phdrRecs.WriteU32(0)
	phdrRecs.WriteU32(0)
	phdrRecs.WriteU32(0)

	pbagRecs := bytestream.NewWriter()
	pbagRecs.WriteU16(0)
	pbagRecs.WriteU16(0)
	pbagRecs.WriteU16(0)
	pbagRecs.WriteU16(0)

	pgenRecs := bytestream.NewWriter()
	pmodRecs := bytestream.NewWriter()
	imodRecs := bytestream.NewWriter()

	infoList := buildList("INFO", func(w *bytestream.Writer) {
		writeSubChunk(w, "ifil", func(s *bytestream.Writer) { s.WriteU16(2); s.WriteU16(1) })
		writeSubChunkASCII(w, "isng", "EMU8000")
		writeSubChunkASCII(w, "INAM", ms.Name)
	})
	sdtaList := buildList("sdta", func(w *bytestream.Writer) {
		writeSubChunkBytes(w, "smpl", pcm.Bytes())
	})
	pdtaList := buildList("pdta", func(w *bytestream.Writer) {
		writeSubChunkBytes(w, "phdr", phdrRecs.Bytes())
		writeSubChunkBytes(w, "pbag", pbagRecs.Bytes())
		writeSubChunkBytes(w, "pmod", pmodRecs.Bytes())
		writeSubChunkBytes(w, "pgen", pgenRecs.Bytes())
		writeSubChunkBytes(w, "inst", instRecs.Bytes())
		writeSubChunkBytes(w, "ibag", ibagRecs.Bytes())
		writeSubChunkBytes(w, "imod", imodRecs.Bytes())
		writeSubChunkBytes(w, "igen", igenRecs.Bytes())
		writeSubChunkBytes(w, "shdr", shdrRecs.Bytes())
	})

	body := bytestream.NewWriter()
	body.WriteFixedASCII("sfbk", 4)
	body.WriteBytes(infoList)
	body.WriteBytes(sdtaList)
	body.WriteBytes(pdtaList)

	out := bytestream.NewWriter()
	out.WriteFixedASCII("RIFF", 4)
	out.WriteU32(uint32(body.Len()))
	out.WriteBytes(body.Bytes())
	return out.Bytes(), nil
}

func zoneRawPCM(z *domain.SampleZone) ([]byte, error) {
	if z.SampleData == nil {
		return nil, fmt.Errorf("%w: zone %q has no sample data", domain.ErrFormat, z.Name)
	}
	var buf bytes.Buffer
	if err := z.SampleData.Backing.WriteSample(&buf); err != nil {
		return nil, err
	}
	wf, err := wavfile.Parse(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, err
	}
	return wf.PCM, nil
}

func buildList(listType string, writeBody func(*bytestream.Writer)) []byte {
	body := bytestream.NewWriter()
	body.WriteFixedASCII(listType, 4)
	writeBody(body)
	out := bytestream.NewWriter()
	out.WriteFixedASCII("LIST", 4)
	out.WriteU32(uint32(body.Len()))
	out.WriteBytes(body.Bytes())
	return out.Bytes()
}

func writeSubChunk(w *bytestream.Writer, id string, write func(*bytestream.Writer)) {
	body := bytestream.NewWriter()
	write(body)
	writeSubChunkBytes(w, id, body.Bytes())
}

func writeSubChunkASCII(w *bytestream.Writer, id, text string) {
	b := append([]byte(text), 0)
	if len(b)%2 == 1 {
		b = append(b, 0)
	}
	writeSubChunkBytes(w, id, b)
}

func writeSubChunkBytes(w *bytestream.Writer, id string, payload []byte) {
	w.WriteFixedASCII(id, 4)
	w.WriteU32(uint32(len(payload)))
	w.WriteBytes(payload)
	if len(payload)%2 == 1 {
		w.WriteU8(0)
	}
}
