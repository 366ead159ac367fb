package binformat

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/pipeline/walk"
	"github.com/schollz/convertwithmoss/internal/pluginapi"
)

func (p *GenericPlugin) NewDetector() *genericBinDetector { return &genericBinDetector{p: p} }
func (p *GenericPlugin) NewCreator() *genericBinCreator   { return &genericBinCreator{p: p} }

type genericBinDetector struct {
	pluginapi.BaseCancellable
	p        *GenericPlugin
	settings pluginapi.MapSettings
}

func (d *genericBinDetector) Name() string                { return d.p.DisplayName }
func (d *genericBinDetector) Prefix() string               { return d.p.Prefix }
func (d *genericBinDetector) Settings() pluginapi.Settings { return d.settings }

func (d *genericBinDetector) Detect(sourceFolder string, onMultisample pluginapi.MultisampleConsumer, _ pluginapi.PerformanceConsumer, _ bool) error {
	return walk.Files(sourceFolder, d.p.Extension, d.IsCancelled, func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		dir := filepath.Dir(path)
		ms, err := d.p.Decode(data, func(filename string) ([]byte, error) {
			return os.ReadFile(filepath.Join(dir, filename))
		})
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

type genericBinCreator struct {
	pluginapi.BaseCancellable
	p        *GenericPlugin
	settings pluginapi.MapSettings
}

func (c *genericBinCreator) Name() string                { return c.p.DisplayName }
func (c *genericBinCreator) Prefix() string               { return c.p.Prefix }
func (c *genericBinCreator) Settings() pluginapi.Settings { return c.settings }

func (c *genericBinCreator) CreatePreset(outFolder string, source *domain.MultisampleSource) error {
	dir := filepath.Join(outFolder, source.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	data, err := c.p.Encode(source, func(filename string, wav []byte) error {
		return os.WriteFile(filepath.Join(dir, filename), wav, 0o644)
	})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, source.Name+c.p.Extension), data, 0o644)
}

var errPerformanceUnsupported = errors.New("binformat: performance export not supported by this format")

func (c *genericBinCreator) CreatePerformance(string, *domain.PerformanceSource) error {
	return errPerformanceUnsupported
}

func (c *genericBinCreator) CreatePresetLibrary(outFolder string, sources []*domain.MultisampleSource, _ string) error {
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

func (c *genericBinCreator) CreatePerformanceLibrary(string, []*domain.PerformanceSource, string) error {
	return errPerformanceUnsupported
}
