// Package maschine implements an opaque-passthrough plugin for Native
// Instruments Maschine group/sound files. Spec §4.6 notes Maschine V1's
// own internal tree of data sections and parameter-curve calibrations
// (attack/decay/frequency mapping); spec §9 scopes reimplementing that
// internal structure out, treating it as opaque like Kontakt. This
// plugin therefore preserves a patch's bytes untouched rather than
// modeling its section tree or curves.
package maschine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/pipeline/walk"
	"github.com/schollz/convertwithmoss/internal/pluginapi"
)

const Prefix = "maschine"

type Detector struct {
	pluginapi.BaseCancellable
	settings pluginapi.MapSettings
}

func (d *Detector) Name() string                { return "Native Instruments Maschine" }
func (d *Detector) Prefix() string               { return Prefix }
func (d *Detector) Settings() pluginapi.Settings { return d.settings }

func (d *Detector) Detect(sourceFolder string, onMultisample pluginapi.MultisampleConsumer, _ pluginapi.PerformanceConsumer, _ bool) error {
	return walk.Files(sourceFolder, ".mxgrp", d.IsCancelled, func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		z := domain.NewSampleZone(name)
		z.Stop = 1 // opaque group bytes, not real PCM frames; satisfies Start < Stop
		z.SampleData = &domain.SampleData{Backing: domain.MemoryBacking{Data: data}}
		ms := &domain.MultisampleSource{
			Name:       name,
			SourceFile: path,
			Groups:     []*domain.Group{{Trigger: domain.TriggerAttack, Zones: []*domain.SampleZone{z}}},
		}
		if err := domain.ValidateMultisample(ms); err != nil {
			return nil
		}
		onMultisample(ms)
		return nil
	})
}

type Creator struct {
	pluginapi.BaseCancellable
	settings pluginapi.MapSettings
}

func (c *Creator) Name() string                { return "Native Instruments Maschine" }
func (c *Creator) Prefix() string               { return Prefix }
func (c *Creator) Settings() pluginapi.Settings { return c.settings }

var errNotAMaschineSource = errors.New("maschine: source was not produced by this plugin, cannot round-trip opaque group bytes")

func (c *Creator) CreatePreset(outFolder string, source *domain.MultisampleSource) error {
	if len(source.Groups) != 1 || len(source.Groups[0].Zones) != 1 || source.Groups[0].Zones[0].SampleData == nil ||
		!strings.EqualFold(filepath.Ext(source.SourceFile), ".mxgrp") {
		return errNotAMaschineSource
	}
	var buf strings.Builder
	if err := source.Groups[0].Zones[0].SampleData.Backing.WriteSample(byteWriter{&buf}); err != nil {
		return err
	}
	if err := os.MkdirAll(outFolder, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outFolder, source.Name+".mxgrp"), []byte(buf.String()), 0o644)
}

type byteWriter struct{ b *strings.Builder }

func (w byteWriter) Write(p []byte) (int, error) { return w.b.Write(p) }

func (c *Creator) CreatePerformance(string, *domain.PerformanceSource) error {
	return errNotAMaschineSource
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
	return errNotAMaschineSource
}
