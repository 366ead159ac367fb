// Package decentsampler implements the Decent Sampler .dspreset XML
// format on top of internal/formats/xmlformat's shared group/sample
// schema, which mirrors Decent Sampler's own <groups><group><sample>
// element layout closely enough to round-trip the normalized fields.
package decentsampler

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/formats/xmlformat"
	"github.com/schollz/convertwithmoss/internal/musicutil"
	"github.com/schollz/convertwithmoss/internal/wavfile"
)

const Prefix = "decentsampler"
const rootElement = "DecentSampler"

func Decode(data []byte, sampleDir string) (*domain.MultisampleSource, error) {
	var doc xmlformat.Document
	if err := xmlformat.Decode(bytes.NewReader(data), rootElement, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}

	ms := &domain.MultisampleSource{}
	for _, xg := range doc.Groups {
		g := &domain.Group{Name: xg.Name}
		for _, xs := range xg.Samples {
			z, err := sampleToZone(xs, sampleDir)
			if err != nil {
				return nil, err
			}
			g.Zones = append(g.Zones, z)
		}
		ms.Groups = append(ms.Groups, g)
	}
	if err := domain.ValidateMultisample(ms); err != nil {
		return nil, err
	}
	return ms, nil
}

func sampleToZone(xs xmlformat.Sample, sampleDir string) (*domain.SampleZone, error) {
	z := domain.NewSampleZone(filepath.Base(xs.Path))
	z.KeyLow, z.KeyHigh, z.KeyRoot = xs.LoNote, xs.HiNote, xs.RootNote
	z.VelocityLow, z.VelocityHigh = xs.LoVel, xs.HiVel
	z.Tune = xs.Tuning
	z.Gain = musicutil.DbToDouble(xs.Volume)
	z.Panorama = xs.Pan

	full := filepath.Join(sampleDir, xs.Path)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, full)
	}
	wf, err := wavfile.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	z.SampleData = &domain.SampleData{Metadata: wf.Metadata, Backing: domain.FileBacking{Path: full}}
	z.Start = xs.Start
	if xs.End > 0 {
		z.Stop = xs.End
	} else {
		z.Stop = wf.Metadata.NumberOfFrames
	}
	if xs.LoopEnabled {
		z.Loops = []domain.SampleLoop{{Type: domain.LoopForwards, Start: xs.LoopStart, End: xs.LoopEnd}}
	}
	return z, nil
}

func Encode(ms *domain.MultisampleSource, sampleDir string) ([]byte, error) {
	doc := &xmlformat.Document{}
	for _, g := range ms.Groups {
		xg := xmlformat.Group{Name: g.Name}
		for _, z := range g.Zones {
			filename := z.Name + ".wav"
			xs := xmlformat.Sample{
				Path: filename, RootNote: z.KeyRoot, LoNote: z.KeyLow, HiNote: z.KeyHigh,
				LoVel: z.VelocityLow, HiVel: z.VelocityHigh,
				Tuning: z.Tune, Volume: musicutil.ValueToDb(z.Gain), Pan: z.Panorama,
				Start: z.Start, End: z.Stop,
			}
			if len(z.Loops) > 0 {
				xs.LoopEnabled = true
				xs.LoopStart = z.Loops[0].Start
				xs.LoopEnd = z.Loops[0].End
			}
			xg.Samples = append(xg.Samples, xs)

			if z.SampleData != nil {
				var buf bytes.Buffer
				if err := z.SampleData.Backing.WriteSample(&buf); err != nil {
					return nil, err
				}
				if err := os.WriteFile(filepath.Join(sampleDir, filename), buf.Bytes(), 0o644); err != nil {
					return nil, fmt.Errorf("%w: %v", domain.ErrIO, err)
				}
			}
		}
		doc.Groups = append(doc.Groups, xg)
	}

	var buf bytes.Buffer
	if err := xmlformat.Encode(&buf, rootElement, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
