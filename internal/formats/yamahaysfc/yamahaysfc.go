// Package yamahaysfc registers the Yamaha YSFC multisample container on
// the shared binformat generic binary engine (spec §4.7's closing note:
// every other binary format follows korgmultisample's framed-header /
// ascending-ID-loop shape; this format's own internal chunk table is
// not otherwise documented in the retrieval pack).
package yamahaysfc

import "github.com/schollz/convertwithmoss/internal/formats/binformat"

const Prefix = "yamahaysfc"

var Plugin = &binformat.GenericPlugin{
	Prefix:      Prefix,
	Extension:   ".ysfc",
	DisplayName: "Yamaha YSFC",
	Tag:         "YSFC",
}
