// Package waldorfqpat registers the Waldorf Quantum/Iridium .qpat
// multisample format on the shared xmlformat engine.
package waldorfqpat

import "github.com/schollz/convertwithmoss/internal/formats/xmlformat"

const Prefix = "waldorfqpat"

var Plugin = xmlformat.NewGenericPlugin(Prefix, ".qpat", "WaldorfPatch", "Waldorf Qpat")
