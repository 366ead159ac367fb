// Package mpc registers the Akai MPC keygroup program format (.xpm)
// on the shared xmlformat engine.
package mpc

import "github.com/schollz/convertwithmoss/internal/formats/xmlformat"

const Prefix = "mpc"

var Plugin = xmlformat.NewGenericPlugin(Prefix, ".xpm", "MPCVObject", "Akai MPC Keygroup")
