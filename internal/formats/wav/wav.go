// Package wav registers the "wav" CLI prefix: the same full-fidelity
// RIFF chunk round trip as internal/formats/samplefile, exposed under
// the format's own name since spec §6's prefix list names both "wav"
// and "samplefile" as distinct CLI entry points onto the one WAV
// codec.
package wav

import "github.com/schollz/convertwithmoss/internal/formats/samplefile"

const Prefix = "wav"

type Detector struct{ samplefile.Detector }

func (d *Detector) Name() string  { return "WAV" }
func (d *Detector) Prefix() string { return Prefix }

type Creator struct{ samplefile.Creator }

func (c *Creator) Name() string  { return "WAV" }
func (c *Creator) Prefix() string { return Prefix }
