// Package sxt registers the Yamaha Motif/MOXF SXT voice/sample format on
// the shared binformat generic binary engine (spec §4.7).
package sxt

import "github.com/schollz/convertwithmoss/internal/formats/binformat"

const Prefix = "sxt"

var Plugin = &binformat.GenericPlugin{
	Prefix:      Prefix,
	Extension:   ".sxt",
	DisplayName: "Yamaha SXT",
	Tag:         "SXT1",
}
