package decentsampler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/pipeline/walk"
	"github.com/schollz/convertwithmoss/internal/pluginapi"
)

var errUnsupported = errors.New("decentsampler: performance export not supported")

type Detector struct {
	pluginapi.BaseCancellable
	settings pluginapi.MapSettings
}

func NewDetector() *Detector { return &Detector{} }

func (d *Detector) Name() string                 { return "Decent Sampler" }
func (d *Detector) Prefix() string               { return Prefix }
func (d *Detector) Settings() pluginapi.Settings { return d.settings }

func (d *Detector) Detect(sourceFolder string, onMultisample pluginapi.MultisampleConsumer, _ pluginapi.PerformanceConsumer, _ bool) error {
	return walk.Files(sourceFolder, ".dspreset", d.IsCancelled, func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		ms, err := Decode(data, filepath.Dir(path))
		if err != nil {
			return nil
		}
		ms.SourceFile = path
		if ms.Name == "" {
			ms.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		onMultisample(ms)
		return nil
	})
}

type Creator struct {
	pluginapi.BaseCancellable
	settings pluginapi.MapSettings
}

func NewCreator() *Creator { return &Creator{} }

func (c *Creator) Name() string                 { return "Decent Sampler" }
func (c *Creator) Prefix() string               { return Prefix }
func (c *Creator) Settings() pluginapi.Settings { return c.settings }

func (c *Creator) CreatePreset(outFolder string, source *domain.MultisampleSource) error {
	dir := filepath.Join(outFolder, source.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := Encode(source, dir)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, source.Name+".dspreset"), data, 0o644)
}

func (c *Creator) CreatePerformance(string, *domain.PerformanceSource) error { return errUnsupported }

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
	return errUnsupported
}
