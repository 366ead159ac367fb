// Package disting registers the Expert Sleepers Disting EX multisample
// format on the shared binformat generic binary engine (spec §4.7).
package disting

import "github.com/schollz/convertwithmoss/internal/formats/binformat"

const Prefix = "disting"

var Plugin = &binformat.GenericPlugin{
	Prefix:      Prefix,
	Extension:   ".wav.disting",
	DisplayName: "Disting EX",
	Tag:         "DIST",
}
