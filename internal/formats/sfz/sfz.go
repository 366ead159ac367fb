// Package sfz implements the SFZ text format: <region>/<group> opcode
// sections mapping directly onto zones and groups. Grounded on
// spec §4.7's closing note (textopcode-family formats) and built on
// internal/formats/textopcode.
package sfz

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/formats/textopcode"
	"github.com/schollz/convertwithmoss/internal/musicutil"
	"github.com/schollz/convertwithmoss/internal/wavfile"
)

const Prefix = "sfz"

// Decode parses an .sfz file's text into a MultisampleSource. sampleDir
// is the directory region "sample=" paths are relative to.
func Decode(text []byte, sampleDir string) (*domain.MultisampleSource, error) {
	sections, err := textopcode.Parse(bytes.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}

	ms := &domain.MultisampleSource{}
	var currentGroup *domain.Group

	for _, s := range sections {
		switch s.Header {
		case "group":
			currentGroup = &domain.Group{Name: fmt.Sprintf("group%d", len(ms.Groups))}
			ms.Groups = append(ms.Groups, currentGroup)
		case "region":
			if currentGroup == nil {
				currentGroup = &domain.Group{Name: "group0"}
				ms.Groups = append(ms.Groups, currentGroup)
			}
			z, err := sectionToZone(s, sampleDir)
			if err != nil {
				return nil, err
			}
			currentGroup.Zones = append(currentGroup.Zones, z)
		}
	}

	if err := domain.ValidateMultisample(ms); err != nil {
		return nil, err
	}
	return ms, nil
}

func sectionToZone(s *textopcode.Section, sampleDir string) (*domain.SampleZone, error) {
	samplePath := s.String("sample", "")
	z := domain.NewSampleZone(samplePath)

	z.KeyLow = parseKey(s.String("lokey", "0"))
	z.KeyHigh = parseKey(s.String("hikey", "127"))
	z.KeyRoot = parseKey(s.String("pitch_keycenter", "-1"))
	z.VelocityLow = s.Int("lovel", 1)
	z.VelocityHigh = s.Int("hivel", 127)
	z.Gain = musicutil.DbToDouble(s.Float("volume", 0))
	z.Panorama = s.Float("pan", 0) / 100
	z.Tune = s.Float("tune", 0) / 100

	if samplePath != "" {
		full := filepath.Join(sampleDir, samplePath)
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, full)
		}
		wf, err := wavfile.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		z.SampleData = &domain.SampleData{Metadata: wf.Metadata, Backing: domain.FileBacking{Path: full}}
		z.Stop = wf.Metadata.NumberOfFrames
		if s.String("loop_mode", "") == "loop_continuous" {
			z.Loops = []domain.SampleLoop{{
				Type:  domain.LoopForwards,
				Start: int64(s.Int("loop_start", 0)),
				End:   int64(s.Int("loop_end", int(wf.Metadata.NumberOfFrames)-1)),
			}}
		}
	}
	return z, nil
}

func parseKey(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	n := musicutil.ParseNote(s)
	if n < 0 {
		return 0
	}
	return n
}

// Encode writes a MultisampleSource's zones as SFZ text, streaming
// each zone's sample bytes into sampleDir alongside.
func Encode(ms *domain.MultisampleSource, sampleDir string) ([]byte, error) {
	var sections []*textopcode.Section
	for _, g := range ms.Groups {
		sections = append(sections, &textopcode.Section{Header: "group"})
		for _, z := range g.Zones {
			s := &textopcode.Section{Header: "region"}
			filename := z.Name + ".wav"
			s.Set("sample", filename)
			s.Set("lokey", strconv.Itoa(z.KeyLow))
			s.Set("hikey", strconv.Itoa(z.KeyHigh))
			if z.KeyRoot >= 0 {
				s.Set("pitch_keycenter", strconv.Itoa(z.KeyRoot))
			}
			s.Set("lovel", strconv.Itoa(z.VelocityLow))
			s.Set("hivel", strconv.Itoa(z.VelocityHigh))
			s.Set("volume", strconv.FormatFloat(musicutil.ValueToDb(z.Gain), 'f', 3, 64))
			s.Set("pan", strconv.FormatFloat(z.Panorama*100, 'f', 1, 64))
			if len(z.Loops) > 0 {
				s.Set("loop_mode", "loop_continuous")
				s.Set("loop_start", strconv.FormatInt(z.Loops[0].Start, 10))
				s.Set("loop_end", strconv.FormatInt(z.Loops[0].End, 10))
			}
			sections = append(sections, s)

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
	}

	var buf bytes.Buffer
	if err := textopcode.Write(&buf, sections); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
