// Package ableton registers the Ableton Sampler multisample format
// (.ablpreset) on the shared xmlformat engine.
package ableton

import "github.com/schollz/convertwithmoss/internal/formats/xmlformat"

const Prefix = "ableton"

var Plugin = xmlformat.NewGenericPlugin(Prefix, ".ablpreset", "Ableton", "Ableton Sampler")
