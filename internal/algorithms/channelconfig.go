// Package algorithms implements the shared cross-format operations
// every plugin leans on: channel-configuration detection, split-stereo
// recombination, coverage-preserving zone reduction and default
// envelope selection by category. Grounded on the teacher's
// internal/getbpm.guessBPM sort/score idiom and spec §4.5 directly.
package algorithms

import "github.com/schollz/convertwithmoss/internal/domain"

// ChannelConfig is the result of inspecting a group's zones.
type ChannelConfig int

const (
	ConfigMono ChannelConfig = iota
	ConfigStereo
	ConfigSplitStereo
	ConfigMixed
)

// DetectChannelConfig classifies a group per spec §4.5.1.
func DetectChannelConfig(zones []*domain.SampleZone) ChannelConfig {
	sawMono, sawStereo := false, false
	allSplit := true

	for _, z := range zones {
		if z.SampleData == nil {
			continue
		}
		switch z.SampleData.Metadata.Channels {
		case 1:
			sawMono = true
			if z.Panorama > -1 && z.Panorama < 1 {
				allSplit = false
			}
		case 2:
			sawStereo = true
		default:
			sawMono, sawStereo = true, true
		}
	}

	if sawMono && sawStereo {
		return ConfigMixed
	}
	if sawStereo {
		return ConfigStereo
	}
	if sawMono && allSplit {
		return ConfigSplitStereo
	}
	return ConfigMono
}
