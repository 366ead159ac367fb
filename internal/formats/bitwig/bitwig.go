// Package bitwig registers the Bitwig multisample format (.bwpreset)
// on top of the shared xmlformat engine (spec §1 scopes concrete
// byte-level tables for non-representative formats out of scope).
package bitwig

import "github.com/schollz/convertwithmoss/internal/formats/xmlformat"

const Prefix = "bitwig"

// Plugin is the Bitwig Detector/Creator pair, shared via
// Plugin.NewDetector()/Plugin.NewCreator().
var Plugin = xmlformat.NewGenericPlugin(Prefix, ".bwpreset", "MultiSampleFile", "Bitwig Multisample")
