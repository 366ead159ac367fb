// Package samplefile implements the "samplefile" plugin prefix: a bare
// WAV file treated as a single-zone multisample, keyed off the smpl
// chunk's unity note when present and spanning the full key/velocity
// range otherwise. Grounded directly on internal/wavfile and on the
// teacher's internal/audio.File lifecycle idiom (one file, one model).
package samplefile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/pipeline/walk"
	"github.com/schollz/convertwithmoss/internal/pluginapi"
	"github.com/schollz/convertwithmoss/internal/wavfile"
)

const Prefix = "samplefile"

type Detector struct {
	pluginapi.BaseCancellable
	settings pluginapi.MapSettings
}

func (d *Detector) Name() string                { return "WAV Sample File" }
func (d *Detector) Prefix() string               { return Prefix }
func (d *Detector) Settings() pluginapi.Settings { return d.settings }

func (d *Detector) Detect(sourceFolder string, onMultisample pluginapi.MultisampleConsumer, _ pluginapi.PerformanceConsumer, _ bool) error {
	return walk.Files(sourceFolder, ".wav", d.IsCancelled, func(path string) error {
		ms, err := decodeOne(path)
		if err != nil {
			return nil
		}
		onMultisample(ms)
		return nil
	})
}

func decodeOne(path string) (*domain.MultisampleSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
	}
	wf, err := wavfile.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	z := domain.NewSampleZone(name)
	z.SampleData = &domain.SampleData{Metadata: wf.Metadata, Backing: domain.FileBacking{Path: path}}
	z.Stop = wf.Metadata.NumberOfFrames
	if wf.HasUnityNote {
		z.KeyRoot = wf.UnityNote
		z.Tune = wf.PitchFraction / 100 // cents to semitones
	}
	for _, l := range wf.Loops {
		z.Loops = append(z.Loops, domain.SampleLoop{Type: l.Type, Start: int64(l.Start), End: int64(l.End)})
	}
	if wf.HasInstrumentChunk {
		z.Gain = wf.InstrumentGain
	}

	ms := &domain.MultisampleSource{
		Name:       name,
		SourceFile: path,
		Groups:     []*domain.Group{{Trigger: domain.TriggerAttack, Zones: []*domain.SampleZone{z}}},
	}
	if err := domain.ValidateMultisample(ms); err != nil {
		return nil, err
	}
	return ms, nil
}

type Creator struct {
	pluginapi.BaseCancellable
	settings pluginapi.MapSettings
}

func (c *Creator) Name() string                { return "WAV Sample File" }
func (c *Creator) Prefix() string               { return Prefix }
func (c *Creator) Settings() pluginapi.Settings { return c.settings }

func (c *Creator) CreatePreset(outFolder string, source *domain.MultisampleSource) error {
	if err := os.MkdirAll(outFolder, 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	for _, g := range source.Groups {
		for _, z := range g.Zones {
			if z.SampleData == nil {
				continue
			}
			var buf bytes.Buffer
			if err := z.SampleData.Backing.WriteSample(&buf); err != nil {
				return err
			}
			path := filepath.Join(outFolder, z.Name+".wav")
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrIO, err)
			}
		}
	}
	return nil
}

var errPerformanceUnsupported = domain.ErrFormat

func (c *Creator) CreatePerformance(string, *domain.PerformanceSource) error {
	return fmt.Errorf("%w: samplefile does not support performances", errPerformanceUnsupported)
}

func (c *Creator) CreatePresetLibrary(outFolder string, sources []*domain.MultisampleSource, _ string) error {
	for _, s := range sources {
		if c.IsCancelled() {
			return domain.ErrCancelled
		}
		if err := c.CreatePreset(outFolder, s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Creator) CreatePerformanceLibrary(string, []*domain.PerformanceSource, string) error {
	return fmt.Errorf("%w: samplefile does not support performances", errPerformanceUnsupported)
}
