// Package tenten registers the 1010music multisample preset format on
// the shared binformat generic binary engine (spec §4.7). The CLI
// prefix keeps the vendor's own "1010music" spelling even though a Go
// package name cannot start with a digit.
package tenten

import "github.com/schollz/convertwithmoss/internal/formats/binformat"

const Prefix = "1010music"

var Plugin = &binformat.GenericPlugin{
	Prefix:      Prefix,
	Extension:   ".preset",
	DisplayName: "1010music",
	Tag:         "TENX",
}
