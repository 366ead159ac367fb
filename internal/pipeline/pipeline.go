// Package pipeline drives one detector/creator pair over a source
// folder per spec §4.8: sanitize, rename, default-envelope, then
// branch on collect/analyse/emit mode. Grounded on
// internal/storage/storage.go's timer+mutex autosave-debounce idiom,
// reused here for the cancellation flag and the once-only Finished
// signal, and on spec §4.8/§4.9 directly.
package pipeline

import (
	"path/filepath"
	"sync/atomic"

	"github.com/schollz/convertwithmoss/internal/algorithms"
	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/pluginapi"
)

// Mode selects what Run does with each detected source once it has
// been sanitized, renamed and given default envelopes.
type Mode int

const (
	ModeEmit Mode = iota
	ModeAnalyseOnly
	ModeCollectLibrary
)

// Options configures one Run invocation (spec §4.8's listed inputs).
type Options struct {
	Detector             pluginapi.Detector
	Creator              pluginapi.Creator
	SourceFolder         string
	DestFolder           string
	RenameTable          RenameTable
	LibraryName          string
	Mode                 Mode
	DetectPerformances   bool
	CreateFolderStructure bool
	EnvelopeCategory     string // "" disables default-envelope application
	Notifier             pluginapi.Notifier
}

// Run executes one detection pass, converting every discovered source
// per spec §4.8's per-source step order, and emits a library at the end
// when Mode is ModeCollectLibrary. Errors on individual sources never
// abort the run; they are reported via the Notifier and the walk
// continues (spec §7 "Propagation").
func Run(opt Options) {
	var cancelled atomic.Bool
	var collectedPresets []*domain.MultisampleSource
	var collectedPerformances []*domain.PerformanceSource

	onMultisample := func(ms *domain.MultisampleSource) {
		if cancelled.Load() || opt.Detector.IsCancelled() {
			cancelled.Store(true)
			return
		}
		processMultisample(opt, ms)
		switch opt.Mode {
		case ModeCollectLibrary:
			opt.Notifier.Log("collecting", ms.Name)
			collectedPresets = append(collectedPresets, ms)
		case ModeAnalyseOnly:
			opt.Notifier.Log("ok", ms.Name)
		case ModeEmit:
			if err := emitPreset(opt, ms); err != nil {
				opt.Notifier.LogError("emit", err, ms.Name)
			}
		}
	}

	onPerformance := func(ps *domain.PerformanceSource) {
		if cancelled.Load() || opt.Detector.IsCancelled() {
			cancelled.Store(true)
			return
		}
		for _, inst := range ps.Instruments {
			processMultisample(opt, inst.Multisample)
		}
		switch opt.Mode {
		case ModeCollectLibrary:
			opt.Notifier.Log("collecting", ps.Name)
			collectedPerformances = append(collectedPerformances, ps)
		case ModeAnalyseOnly:
			opt.Notifier.Log("ok", ps.Name)
		case ModeEmit:
			if err := emitPerformance(opt, ps); err != nil {
				opt.Notifier.LogError("emit", err, ps.Name)
			}
		}
	}

	err := opt.Detector.Detect(opt.SourceFolder, onMultisample, onPerformance, opt.DetectPerformances)
	if err != nil {
		cancelled.Store(true)
	}

	if cancelled.Load() || opt.Detector.IsCancelled() {
		opt.Notifier.UpdateButtonStates(true)
		opt.Notifier.Finished(true)
		return
	}

	if opt.Mode == ModeCollectLibrary {
		libName := opt.LibraryName
		if libName == "" {
			if len(collectedPresets) > 0 {
				libName = collectedPresets[0].Name
			} else if len(collectedPerformances) > 0 {
				libName = collectedPerformances[0].Name
			}
		}
		if len(collectedPresets) > 0 {
			if err := opt.Creator.CreatePresetLibrary(opt.DestFolder, collectedPresets, libName); err != nil {
				opt.Notifier.LogError("library", err, libName)
			}
		}
		if len(collectedPerformances) > 0 {
			if err := opt.Creator.CreatePerformanceLibrary(opt.DestFolder, collectedPerformances, libName); err != nil {
				opt.Notifier.LogError("library", err, libName)
			}
		}
	}

	opt.Notifier.UpdateButtonStates(true)
	opt.Notifier.Finished(false)
}

// processMultisample applies steps 2-4 of spec §4.8 to one detected
// source: sanitize zone names, apply the rename table, apply the
// category's default envelope to any zone without one already set.
func processMultisample(opt Options, ms *domain.MultisampleSource) {
	ensureSafeSampleFileNames(ms)

	if renamed, found := opt.RenameTable.Apply(ms.Name); found {
		opt.Notifier.Log("renamed", ms.Name, renamed)
		ms.Name = renamed
	} else {
		opt.Notifier.Log("not defined", ms.Name)
	}

	if opt.EnvelopeCategory != "" {
		for _, g := range ms.Groups {
			algorithms.ApplyDefaultEnvelopes(g.Zones, opt.EnvelopeCategory)
		}
	}
}

func emitPreset(opt Options, ms *domain.MultisampleSource) error {
	return opt.Creator.CreatePreset(outputFolder(opt, ms.SubPath), ms)
}

func emitPerformance(opt Options, ps *domain.PerformanceSource) error {
	return opt.Creator.CreatePerformance(outputFolder(opt, ps.SubPath), ps)
}

// outputFolder mirrors subPath under DestFolder when CreateFolderStructure
// is set (spec §4.8 step 5's "emit" branch); otherwise it flattens to
// the top output folder.
func outputFolder(opt Options, subPath []string) string {
	if !opt.CreateFolderStructure || len(subPath) == 0 {
		return opt.DestFolder
	}
	parts := append([]string{opt.DestFolder}, subPath...)
	return filepath.Join(parts...)
}
