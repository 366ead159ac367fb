// Package exs24 registers the Apple EXS24 Sampler multisample format on
// the shared binformat generic binary engine (spec §4.7).
package exs24

import "github.com/schollz/convertwithmoss/internal/formats/binformat"

const Prefix = "exs24"

var Plugin = &binformat.GenericPlugin{
	Prefix:      Prefix,
	Extension:   ".exs",
	DisplayName: "Apple EXS24",
	Tag:         "TBOS",
}
