package domain

import "fmt"

// ValidateZone checks the per-zone invariants from spec §3.1/§4.3/§8.
func ValidateZone(z *SampleZone) error {
	if z.KeyLow < 0 || z.KeyHigh > 127 || z.KeyLow > z.KeyHigh {
		return fmt.Errorf("%w: zone %q key range %d..%d invalid", ErrFormat, z.Name, z.KeyLow, z.KeyHigh)
	}
	if z.KeyRoot != -1 && (z.KeyRoot < z.KeyLow || z.KeyRoot > z.KeyHigh) {
		return fmt.Errorf("%w: zone %q root %d outside key range %d..%d", ErrFormat, z.Name, z.KeyRoot, z.KeyLow, z.KeyHigh)
	}
	if z.VelocityLow < 1 || z.VelocityHigh > 127 || z.VelocityLow > z.VelocityHigh {
		return fmt.Errorf("%w: zone %q velocity range %d..%d invalid", ErrFormat, z.Name, z.VelocityLow, z.VelocityHigh)
	}
	if z.Start < 0 || z.Start >= z.Stop {
		return fmt.Errorf("%w: zone %q playback window %d..%d invalid", ErrFormat, z.Name, z.Start, z.Stop)
	}
	for _, l := range z.Loops {
		if l.Start > l.End {
			return fmt.Errorf("%w: zone %q loop start %d > end %d", ErrFormat, z.Name, l.Start, l.End)
		}
	}
	return nil
}

// ValidateGroup checks that a non-empty group contains at least one
// zone and that every zone in it satisfies ValidateZone.
func ValidateGroup(g *Group) error {
	if len(g.Zones) == 0 {
		return nil
	}
	for _, z := range g.Zones {
		if err := ValidateZone(z); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMultisample checks the MultisampleSource invariants: at least
// one group when emitted, and every group's zones are individually
// valid.
func ValidateMultisample(m *MultisampleSource) error {
	if len(m.Groups) == 0 {
		return fmt.Errorf("%w: multisample %q has no groups", ErrFormat, m.Name)
	}
	for _, g := range m.Groups {
		if err := ValidateGroup(g); err != nil {
			return err
		}
	}
	return nil
}

// ClampLoopToFrameCount clamps a loop's start/end into [0, frameCount),
// the creator-side clamping spec §4.3 allows before the playback window
// invariant is re-checked.
func ClampLoopToFrameCount(l *SampleLoop, frameCount int64) {
	if frameCount <= 0 {
		return
	}
	if l.Start < 0 {
		l.Start = 0
	}
	if l.End >= frameCount {
		l.End = frameCount - 1
	}
	if l.Start > l.End {
		l.Start = l.End
	}
}
