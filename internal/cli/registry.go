package cli

import (
	"github.com/schollz/convertwithmoss/internal/formats/ableton"
	"github.com/schollz/convertwithmoss/internal/formats/bitwig"
	"github.com/schollz/convertwithmoss/internal/formats/decentsampler"
	"github.com/schollz/convertwithmoss/internal/formats/disting"
	"github.com/schollz/convertwithmoss/internal/formats/exs24"
	"github.com/schollz/convertwithmoss/internal/formats/kmp"
	"github.com/schollz/convertwithmoss/internal/formats/kontakt"
	"github.com/schollz/convertwithmoss/internal/formats/korgmultisample"
	"github.com/schollz/convertwithmoss/internal/formats/maschine"
	"github.com/schollz/convertwithmoss/internal/formats/mpc"
	"github.com/schollz/convertwithmoss/internal/formats/samplefile"
	"github.com/schollz/convertwithmoss/internal/formats/sf2"
	"github.com/schollz/convertwithmoss/internal/formats/sfz"
	"github.com/schollz/convertwithmoss/internal/formats/sxt"
	"github.com/schollz/convertwithmoss/internal/formats/tal"
	"github.com/schollz/convertwithmoss/internal/formats/tenten"
	"github.com/schollz/convertwithmoss/internal/formats/tx16wx"
	"github.com/schollz/convertwithmoss/internal/formats/waldorfqpat"
	"github.com/schollz/convertwithmoss/internal/formats/wav"
	"github.com/schollz/convertwithmoss/internal/formats/yamahaysfc"
	"github.com/schollz/convertwithmoss/internal/pluginapi"
)

// NewRegistry builds the immutable plugin registry covering every
// prefix spec §6 lists. Fresh Detector/Creator instances are created
// per call so a run's cancellation flag never leaks into the next one.
func NewRegistry() *pluginapi.Registry {
	detectors := []pluginapi.Detector{
		korgmultisample.NewDetector(),
		sfz.NewDetector(),
		decentsampler.NewDetector(),
		&samplefile.Detector{},
		(&wav.Detector{}),
		bitwig.Plugin.NewDetector(),
		ableton.Plugin.NewDetector(),
		tal.Plugin.NewDetector(),
		waldorfqpat.Plugin.NewDetector(),
		mpc.Plugin.NewDetector(),
		yamahaysfc.Plugin.NewDetector(),
		disting.Plugin.NewDetector(),
		sxt.Plugin.NewDetector(),
		tx16wx.Plugin.NewDetector(),
		tenten.Plugin.NewDetector(),
		exs24.Plugin.NewDetector(),
		kmp.Plugin.NewDetector(),
		&sf2.Detector{},
		&kontakt.Detector{},
		&maschine.Detector{},
	}
	creators := []pluginapi.Creator{
		korgmultisample.NewCreator(),
		sfz.NewCreator(),
		decentsampler.NewCreator(),
		&samplefile.Creator{},
		(&wav.Creator{}),
		bitwig.Plugin.NewCreator(),
		ableton.Plugin.NewCreator(),
		tal.Plugin.NewCreator(),
		waldorfqpat.Plugin.NewCreator(),
		mpc.Plugin.NewCreator(),
		yamahaysfc.Plugin.NewCreator(),
		disting.Plugin.NewCreator(),
		sxt.Plugin.NewCreator(),
		tx16wx.Plugin.NewCreator(),
		tenten.Plugin.NewCreator(),
		exs24.Plugin.NewCreator(),
		kmp.Plugin.NewCreator(),
		&sf2.Creator{},
		&kontakt.Creator{},
		&maschine.Creator{},
	}
	return pluginapi.NewRegistry(detectors, creators)
}
