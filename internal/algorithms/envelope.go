package algorithms

import "github.com/schollz/convertwithmoss/internal/domain"

// categoryReleases implements the four templates of spec §4.5.4;
// unknown categories fall back to "plucked".
var categoryReleases = map[string]float64{
	"percussive": 0.003,
	"plucked":    0.7,
	"keys":       1.0,
	"pads":       4.0,
}

// DefaultEnvelopeForCategory returns the release-only envelope template
// for category, defaulting to "plucked" when category is unrecognized.
func DefaultEnvelopeForCategory(category string) domain.Envelope {
	release, ok := categoryReleases[category]
	if !ok {
		release = categoryReleases["plucked"]
	}
	env := domain.NewUnsetEnvelope()
	env.Release = release
	return env
}

// ApplyDefaultEnvelopes sets the amplitude envelope on every zone in
// zones whose envelope is not already set, per spec §4.5.4.
func ApplyDefaultEnvelopes(zones []*domain.SampleZone, category string) {
	template := DefaultEnvelopeForCategory(category)
	for _, z := range zones {
		if !z.AmplitudeEnvelopeModulator.Source.IsSet() {
			z.AmplitudeEnvelopeModulator.Source = template
		}
	}
}
