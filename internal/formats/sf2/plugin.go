package sf2

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/pipeline/walk"
	"github.com/schollz/convertwithmoss/internal/pluginapi"
)

type Detector struct {
	pluginapi.BaseCancellable
	settings pluginapi.MapSettings
}

func (d *Detector) Name() string                { return "SoundFont2" }
func (d *Detector) Prefix() string               { return Prefix }
func (d *Detector) Settings() pluginapi.Settings { return d.settings }

func (d *Detector) Detect(sourceFolder string, onMultisample pluginapi.MultisampleConsumer, _ pluginapi.PerformanceConsumer, _ bool) error {
	return walk.Files(sourceFolder, ".sf2", d.IsCancelled, func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		sources, err := Decode(data)
		if err != nil {
			return nil
		}
		for _, ms := range sources {
			ms.SourceFile = path
			onMultisample(ms)
		}
		return nil
	})
}

type Creator struct {
	pluginapi.BaseCancellable
	settings pluginapi.MapSettings
}

func (c *Creator) Name() string                { return "SoundFont2" }
func (c *Creator) Prefix() string               { return Prefix }
func (c *Creator) Settings() pluginapi.Settings { return c.settings }

func (c *Creator) CreatePreset(outFolder string, source *domain.MultisampleSource) error {
	data, err := Encode(source)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outFolder, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outFolder, source.Name+".sf2"), data, 0o644)
}

var errPerformanceUnsupported = errors.New("sf2: performance export not supported")

func (c *Creator) CreatePerformance(string, *domain.PerformanceSource) error {
	return errPerformanceUnsupported
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
	return errPerformanceUnsupported
}
