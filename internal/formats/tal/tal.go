// Package tal registers the TAL-Sampler multisample format
// (.talpreset) on the shared xmlformat engine.
package tal

import "github.com/schollz/convertwithmoss/internal/formats/xmlformat"

const Prefix = "tal"

var Plugin = xmlformat.NewGenericPlugin(Prefix, ".talpreset", "TALPreset", "TAL-Sampler")
