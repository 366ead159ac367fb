// Package kontakt implements an opaque-passthrough plugin for Native
// Instruments Kontakt .nki patches. Spec §9's open question on Kontakt
// is explicit: its internal structures are not fully documented, so a
// reimplementation should treat unknown chunks as opaque and preserve
// them byte-for-byte rather than invent a bit table. Detect therefore
// only surfaces enough of a patch (a name and, when present, a single
// whole-file "sample") to let it flow through the pipeline; Create
// writes the original bytes back unchanged when the source round-trips
// through this same plugin, and refuses conversion from any other
// format since there is nothing faithful to synthesize.
package kontakt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/pipeline/walk"
	"github.com/schollz/convertwithmoss/internal/pluginapi"
)

const Prefix = "kontakt"

type Detector struct {
	pluginapi.BaseCancellable
	settings pluginapi.MapSettings
}

func (d *Detector) Name() string                { return "Native Instruments Kontakt" }
func (d *Detector) Prefix() string               { return Prefix }
func (d *Detector) Settings() pluginapi.Settings { return d.settings }

func (d *Detector) Detect(sourceFolder string, onMultisample pluginapi.MultisampleConsumer, _ pluginapi.PerformanceConsumer, _ bool) error {
	return walk.Files(sourceFolder, ".nki", d.IsCancelled, func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		z := domain.NewSampleZone(name)
		z.Stop = 1 // opaque patch bytes, not real PCM frames; satisfies Start < Stop
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

func (c *Creator) Name() string                { return "Native Instruments Kontakt" }
func (c *Creator) Prefix() string               { return Prefix }
func (c *Creator) Settings() pluginapi.Settings { return c.settings }

var errNotAKontaktSource = errors.New("kontakt: source was not produced by this plugin, cannot round-trip opaque patch bytes")

// CreatePreset only succeeds when source originated from this same
// plugin's Detect: Kontakt's internal layout is not reverse-engineered
// here, so anything else cannot be synthesized faithfully.
func (c *Creator) CreatePreset(outFolder string, source *domain.MultisampleSource) error {
	if len(source.Groups) != 1 || len(source.Groups[0].Zones) != 1 || source.Groups[0].Zones[0].SampleData == nil ||
		!strings.EqualFold(filepath.Ext(source.SourceFile), ".nki") {
		return errNotAKontaktSource
	}
	var buf strings.Builder
	if err := source.Groups[0].Zones[0].SampleData.Backing.WriteSample(byteWriter{&buf}); err != nil {
		return err
	}
	if err := os.MkdirAll(outFolder, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outFolder, source.Name+".nki"), []byte(buf.String()), 0o644)
}

type byteWriter struct{ b *strings.Builder }

func (w byteWriter) Write(p []byte) (int, error) { return w.b.Write(p) }

func (c *Creator) CreatePerformance(string, *domain.PerformanceSource) error {
	return errNotAKontaktSource
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
	return errNotAKontaktSource
}
