// Package tx16wx registers the TX16Wx Software Sampler multisample
// format on the shared binformat generic binary engine (spec §4.7).
package tx16wx

import "github.com/schollz/convertwithmoss/internal/formats/binformat"

const Prefix = "tx16wx"

var Plugin = &binformat.GenericPlugin{
	Prefix:      Prefix,
	Extension:   ".txprog",
	DisplayName: "TX16Wx",
	Tag:         "TX16",
}
