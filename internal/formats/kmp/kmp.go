// Package kmp registers the Korg KMP multisample format (korgmultisample's
// predecessor on older Korg workstations) on the shared binformat
// generic binary engine (spec §4.7).
package kmp

import "github.com/schollz/convertwithmoss/internal/formats/binformat"

const Prefix = "kmp"

var Plugin = &binformat.GenericPlugin{
	Prefix:      Prefix,
	Extension:   ".KMP",
	DisplayName: "Korg KMP",
	Tag:         "KMP1",
}
