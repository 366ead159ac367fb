// Package pluginapi defines the Detector/Creator/Settings contracts
// every vendor format plugin implements, plus the immutable registry
// keyed by format prefix. Grounded on spec §4.6 and the teacher's
// capability-style interfaces passed by pointer through free functions
// (internal/audio, internal/input).
package pluginapi

import "github.com/schollz/convertwithmoss/internal/domain"

// Notifier decouples the pipeline from any console/UI implementation,
// per spec §4.9. messageID is a short machine-readable key; params are
// substituted into its localized template by the implementation.
type Notifier interface {
	Log(messageID string, params ...any)
	LogError(messageID string, err error, params ...any)
	UpdateButtonStates(canClose bool)
	Finished(cancelled bool)
}

// Settings exposes a plugin's CLI parameter set. CheckSettingsCLI
// consumes recognized keys from params and reports whether every
// required key was present and valid.
type Settings interface {
	CheckSettingsCLI(params map[string]string) bool
}

// MultisampleConsumer receives each multisample a Detector produces.
type MultisampleConsumer func(*domain.MultisampleSource)

// PerformanceConsumer receives each performance a Detector produces.
type PerformanceConsumer func(*domain.PerformanceSource)

// Detector recursively walks a source folder and decodes matching
// files into domain sources (spec §4.6). Implementations must check
// IsCancelled between files and abort promptly; a malformed file is
// skipped, never aborting the whole walk. A Detector has no Notifier,
// so skipped files are not reported.
type Detector interface {
	Name() string
	Prefix() string
	Settings() Settings

	Detect(sourceFolder string, onMultisample MultisampleConsumer, onPerformance PerformanceConsumer, detectPerformances bool) error

	Cancel()
	IsCancelled() bool
}

// Creator encodes domain sources into a vendor format (spec §4.6).
// CreatePresetLibrary/CreatePerformanceLibrary honor the format's own
// constraints (e.g. one file per group for korgmultisample).
type Creator interface {
	Name() string
	Prefix() string
	Settings() Settings

	CreatePreset(outFolder string, source *domain.MultisampleSource) error
	CreatePerformance(outFolder string, source *domain.PerformanceSource) error
	CreatePresetLibrary(outFolder string, sources []*domain.MultisampleSource, libraryName string) error
	CreatePerformanceLibrary(outFolder string, sources []*domain.PerformanceSource, libraryName string) error

	Cancel()
	ClearCancelled()
}
