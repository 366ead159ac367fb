package pluginapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schollz/convertwithmoss/internal/domain"
)

type stubDetector struct {
	BaseCancellable
	prefix string
}

func (s *stubDetector) Name() string      { return s.prefix }
func (s *stubDetector) Prefix() string    { return s.prefix }
func (s *stubDetector) Settings() Settings { return MapSettings{} }
func (s *stubDetector) Detect(string, MultisampleConsumer, PerformanceConsumer, bool) error {
	return nil
}

type stubCreator struct {
	BaseCancellable
	prefix string
}

func (s *stubCreator) Name() string      { return s.prefix }
func (s *stubCreator) Prefix() string    { return s.prefix }
func (s *stubCreator) Settings() Settings { return MapSettings{} }
func (s *stubCreator) CreatePreset(string, *domain.MultisampleSource) error         { return nil }
func (s *stubCreator) CreatePerformance(string, *domain.PerformanceSource) error    { return nil }
func (s *stubCreator) CreatePresetLibrary(string, []*domain.MultisampleSource, string) error {
	return nil
}
func (s *stubCreator) CreatePerformanceLibrary(string, []*domain.PerformanceSource, string) error {
	return nil
}

func TestRegistryPrefixesAndLookup(t *testing.T) {
	r := NewRegistry(
		[]Detector{&stubDetector{prefix: "wav"}, &stubDetector{prefix: "sfz"}},
		[]Creator{&stubCreator{prefix: "wav"}},
	)

	assert.Equal(t, []string{"sfz", "wav"}, r.Prefixes())

	d, ok := r.DetectorByPrefix("sfz")
	assert.True(t, ok)
	assert.Equal(t, "sfz", d.Prefix())

	_, ok = r.CreatorByPrefix("sfz")
	assert.False(t, ok)
}

func TestBaseCancellable(t *testing.T) {
	var b BaseCancellable
	assert.False(t, b.IsCancelled())
	b.Cancel()
	assert.True(t, b.IsCancelled())
	b.ClearCancelled()
	assert.False(t, b.IsCancelled())
}

func TestMapSettingsRequiresAllKeys(t *testing.T) {
	s := MapSettings{Required: []string{"a", "b"}}
	assert.False(t, s.CheckSettingsCLI(map[string]string{"a": "1"}))
	assert.True(t, s.CheckSettingsCLI(map[string]string{"a": "1", "b": "2"}))
}
