// Package domain holds the normalized instrument representation every
// format reader decodes into and every format writer encodes from:
// multisamples, groups, zones, envelopes, modulators, filters, loops,
// sample data and metadata. Mutation after a detector hands a source to
// the pipeline is restricted to name, envelope and panorama (see
// internal/pipeline).
package domain

// TriggerType is the event a Group's zones respond to.
type TriggerType int

const (
	TriggerAttack TriggerType = iota
	TriggerRelease
	TriggerFirst
	TriggerLegato
)

// PlayLogic selects how a zone is chosen among its siblings.
type PlayLogic int

const (
	PlayAlways PlayLogic = iota
	PlayRoundRobin
)

// LoopType is the sample loop playback direction.
type LoopType int

const (
	LoopForwards LoopType = iota
	LoopAlternating
	LoopBackwards
)

// FilterType is the filter topology.
type FilterType int

const (
	FilterLowPass FilterType = iota
	FilterBandPass
	FilterHighPass
)

// Unset is the sentinel for an absent envelope time/level field.
const Unset = -1.0

// Envelope is the classical delay/attack/hold/decay/sustain/release
// shape plus a per-phase slope. Any field may be Unset; IsSet reports
// whether at least one field carries real data.
type Envelope struct {
	Delay   float64
	Attack  float64
	Hold    float64
	Decay   float64
	Sustain float64
	Release float64

	DelaySlope   float64
	AttackSlope  float64
	HoldSlope    float64
	DecaySlope   float64
	ReleaseSlope float64
}

// NewUnsetEnvelope returns an envelope with every field at its sentinel.
func NewUnsetEnvelope() Envelope {
	return Envelope{Delay: Unset, Attack: Unset, Hold: Unset, Decay: Unset, Sustain: Unset, Release: Unset}
}

// IsSet reports whether any time or level field has been given a real
// value (i.e. differs from the Unset sentinel).
func (e Envelope) IsSet() bool {
	return e.Delay != Unset || e.Attack != Unset || e.Hold != Unset ||
		e.Decay != Unset || e.Sustain != Unset || e.Release != Unset
}

// EffectiveHold returns Hold, or the attack peak (1.0) when Hold is unset,
// per spec §4.3: "hold level unset => equal to attack peak".
func (e Envelope) EffectiveHold() float64 {
	if e.Hold == Unset {
		return 1.0
	}
	return e.Hold
}

// Modulator is a depth-scaled connection from a source to a target.
// Depth is in -1..1.
type Modulator struct {
	Depth float64
}

// EnvelopeModulator adds an Envelope source to a Modulator; the depth's
// unit is dimension-specific (amp 0..1, filter +-12000 cent, pitch
// +-48000 cent).
type EnvelopeModulator struct {
	Modulator
	Source Envelope
}

// Filter is an optional per-zone filter stage.
type Filter struct {
	Type      FilterType
	Poles     int // 1, 2 or 4 -> 6/12/24 dB/oct
	Cutoff    float64
	Resonance float64 // 0..1, 1 == 40dB

	CutoffEnvelope EnvelopeModulator
	CutoffVelocity Modulator
}

// SampleLoop is a playback loop region within a zone's sample window.
type SampleLoop struct {
	Type       LoopType
	Start      int64 // frames
	End        int64 // frames, inclusive
	Crossfade  float64 // fraction of loop length, 0..1
}

// AudioMetadata describes the physical shape of a SampleData's PCM.
type AudioMetadata struct {
	Channels       int
	SampleRate     int
	BitResolution  int
	NumberOfFrames int64
}

// SampleData is the audio abstraction every zone's sampleData field
// references. Multiple zones may alias the same backing data; lifetime
// is managed by whichever physical Backing implementation is in use
// (file path, zip entry, or in-memory buffer).
type SampleData struct {
	Metadata AudioMetadata
	Backing  Backing
}

// Backing is implemented by file-path, zip-entry and in-memory sample
// data sources. WriteSample must emit a well-formed WAV stream.
type Backing interface {
	WriteSample(out interface{ Write([]byte) (int, error) }) error
}

// SampleZone is the fundamental key/velocity mapping record.
type SampleZone struct {
	Name       string
	SampleData *SampleData

	PlayLogic        PlayLogic
	SequencePosition int // -1 == unset
	Trigger          TriggerType

	Start int64 // playback window, frames
	Stop  int64

	KeyLow, KeyHigh, KeyRoot int // 0..127, root -1 == unset
	NoteCrossfadeLow         int
	NoteCrossfadeHigh        int

	VelocityLow, VelocityHigh         int // 1..127
	VelocityCrossfadeLow             int
	VelocityCrossfadeHigh            int

	Gain        float64 // linear, 0.125..24.0
	Panorama    float64 // -1..1
	Tune        float64 // semitones, 0.01 == 1 cent
	KeyTracking float64 // 0..1

	BendUp, BendDown float64 // cents, -9600..9600

	IsReversed bool

	Loops []SampleLoop

	Filter *Filter

	AmplitudeEnvelopeModulator EnvelopeModulator
	PitchModulator             EnvelopeModulator
	AmplitudeVelocityModulator Modulator
}

// NewSampleZone returns a zone with spec-default ranges: full key and
// velocity coverage, unit gain, centered pan, unset root/sequence.
func NewSampleZone(name string) *SampleZone {
	return &SampleZone{
		Name:             name,
		SequencePosition: -1,
		KeyLow:           0,
		KeyHigh:          127,
		KeyRoot:          -1,
		VelocityLow:      1,
		VelocityHigh:     127,
		Gain:             1.0,
		Panorama:         0,
		KeyTracking:      1.0,
		AmplitudeEnvelopeModulator: EnvelopeModulator{Source: NewUnsetEnvelope()},
		PitchModulator:             EnvelopeModulator{Source: NewUnsetEnvelope()},
	}
}

// Group is a named collection of zones sharing a trigger type.
type Group struct {
	Name    string
	Trigger TriggerType
	Zones   []*SampleZone
}

// IsRoundRobin reports whether every zone plays round-robin at the same
// sequence position (spec §3.1).
func (g *Group) IsRoundRobin() bool {
	if len(g.Zones) == 0 {
		return false
	}
	pos := g.Zones[0].SequencePosition
	for _, z := range g.Zones {
		if z.PlayLogic != PlayRoundRobin || z.SequencePosition != pos {
			return false
		}
	}
	return true
}

// Metadata is the normalized descriptive data carried by a source.
type Metadata struct {
	Description  string
	Creator      string
	CreationTime int64 // unix seconds
	Category     string
	Keywords     []string
}

// MultisampleSource is a single logical instrument: an ordered list of
// groups plus metadata, identified by its originating file/folder path.
type MultisampleSource struct {
	SourceFile  string
	SubPath     []string // used for output-folder mirroring
	Name        string
	MappingName string
	Groups      []*Group
	Metadata    Metadata
}

// KeyRange returns the union of every zone's key range across all
// groups: spec §3.1's "aggregated key range is the union of zone key
// ranges".
func (m *MultisampleSource) KeyRange() (lowest, highest int) {
	lowest, highest = 127, 0
	found := false
	for _, g := range m.Groups {
		for _, z := range g.Zones {
			found = true
			if z.KeyLow < lowest {
				lowest = z.KeyLow
			}
			if z.KeyHigh > highest {
				highest = z.KeyHigh
			}
		}
	}
	if !found {
		return 0, 0
	}
	return lowest, highest
}

// InstrumentSource pairs a MultisampleSource with the MIDI channel it
// plays on within a PerformanceSource (0..15, or -1 for omni).
type InstrumentSource struct {
	Multisample *MultisampleSource
	MidiChannel int
}

// PerformanceSource is an ordered collection of instruments.
type PerformanceSource struct {
	SourceFile  string
	SubPath     []string
	Name        string
	Instruments []InstrumentSource
}
