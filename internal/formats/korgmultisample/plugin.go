package korgmultisample

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/pipeline/walk"
	"github.com/schollz/convertwithmoss/internal/pluginapi"
)

// Detector discovers .korgmultisample files under a source folder.
type Detector struct {
	pluginapi.BaseCancellable
	settings pluginapi.MapSettings
}

func NewDetector() *Detector { return &Detector{} }

func (d *Detector) Name() string              { return "Korg korgmultisample" }
func (d *Detector) Prefix() string            { return Prefix }
func (d *Detector) Settings() pluginapi.Settings { return d.settings }

func (d *Detector) Detect(sourceFolder string, onMultisample pluginapi.MultisampleConsumer, _ pluginapi.PerformanceConsumer, _ bool) error {
	return walk.Files(sourceFolder, ".korgmultisample", d.IsCancelled, func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil // skipped without being reported, walk continues
		}
		dir := filepath.Dir(path)
		ms, err := Decode(data, func(filename string) ([]byte, error) {
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

// Creator emits .korgmultisample files, one per group. When the source
// has more than one group, each file name gets a "_NNN-NNN"
// velocity-range suffix; a single-group source keeps its plain name.
type Creator struct {
	pluginapi.BaseCancellable
	settings pluginapi.MapSettings
}

func NewCreator() *Creator { return &Creator{} }

func (c *Creator) Name() string              { return "Korg korgmultisample" }
func (c *Creator) Prefix() string            { return Prefix }
func (c *Creator) Settings() pluginapi.Settings { return c.settings }

func (c *Creator) CreatePreset(outFolder string, source *domain.MultisampleSource) error {
	for _, g := range source.Groups {
		if c.IsCancelled() {
			return domain.ErrCancelled
		}
		if err := c.writeGroup(outFolder, source, g); err != nil {
			return err
		}
	}
	return nil
}

func (c *Creator) writeGroup(outFolder string, source *domain.MultisampleSource, g *domain.Group) error {
	velLow, velHigh := groupVelocityRange(g)
	name := source.Name
	if len(source.Groups) > 1 {
		name = fmt.Sprintf("%s_%03d-%03d", source.Name, velLow, velHigh)
	}
	subdir := filepath.Join(outFolder, name)
	if err := os.MkdirAll(subdir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}

	single := &domain.MultisampleSource{Name: name, Metadata: source.Metadata, Groups: []*domain.Group{g}}
	data, err := Encode(single, time.Unix(source.Metadata.CreationTime, 0), func(filename string, wav []byte) error {
		return os.WriteFile(filepath.Join(subdir, filename), wav, 0o644)
	})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(subdir, name+".korgmultisample"), data, 0o644)
}

func groupVelocityRange(g *domain.Group) (low, high int) {
	low, high = 127, 1
	for _, z := range g.Zones {
		if z.VelocityLow < low {
			low = z.VelocityLow
		}
		if z.VelocityHigh > high {
			high = z.VelocityHigh
		}
	}
	return low, high
}

func (c *Creator) CreatePerformance(string, *domain.PerformanceSource) error {
	return fmt.Errorf("korgmultisample: performance export not supported")
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
	return fmt.Errorf("korgmultisample: performance export not supported")
}
