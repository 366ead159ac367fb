package algorithms

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/wavfile"
)

// sortKey is the attribute tuple spec §4.5.2 sorts split-stereo zones
// by before pairing them by index.
type sortKey struct {
	keyRoot, keyLow, keyHigh                           int
	noteXfLow, noteXfHigh                               int
	velLow, velHigh, velXfLow, velXfHigh                int
	start, stop                                         int64
	tune                                                 float64
	triggerOrdinal                                       int
	name                                                 string
}

func keyOf(z *domain.SampleZone) sortKey {
	return sortKey{
		keyRoot: z.KeyRoot, keyLow: z.KeyLow, keyHigh: z.KeyHigh,
		noteXfLow: z.NoteCrossfadeLow, noteXfHigh: z.NoteCrossfadeHigh,
		velLow: z.VelocityLow, velHigh: z.VelocityHigh,
		velXfLow: z.VelocityCrossfadeLow, velXfHigh: z.VelocityCrossfadeHigh,
		start: z.Start, stop: z.Stop, tune: z.Tune,
		triggerOrdinal: int(z.Trigger), name: z.Name,
	}
}

func lessKey(a, b sortKey) bool {
	switch {
	case a.keyRoot != b.keyRoot:
		return a.keyRoot < b.keyRoot
	case a.keyLow != b.keyLow:
		return a.keyLow < b.keyLow
	case a.keyHigh != b.keyHigh:
		return a.keyHigh < b.keyHigh
	case a.noteXfLow != b.noteXfLow:
		return a.noteXfLow < b.noteXfLow
	case a.noteXfHigh != b.noteXfHigh:
		return a.noteXfHigh < b.noteXfHigh
	case a.velLow != b.velLow:
		return a.velLow < b.velLow
	case a.velHigh != b.velHigh:
		return a.velHigh < b.velHigh
	case a.velXfLow != b.velXfLow:
		return a.velXfLow < b.velXfLow
	case a.velXfHigh != b.velXfHigh:
		return a.velXfHigh < b.velXfHigh
	case a.start != b.start:
		return a.start < b.start
	case a.stop != b.stop:
		return a.stop < b.stop
	case a.tune != b.tune:
		return a.tune < b.tune
	case a.triggerOrdinal != b.triggerOrdinal:
		return a.triggerOrdinal < b.triggerOrdinal
	default:
		return a.name < b.name
	}
}

// CombineSplitStereo partitions zones into left (pan <= -1) and right
// (pan > -1... actually > -1 meaning not hard-left) groups per spec
// §4.5.2, pairs them by sorted index, and merges each pair into a
// single centered stereo zone. Returns domain.ErrCombinationNotPossible
// if the partition sizes differ or any pair fails its preconditions.
func CombineSplitStereo(zones []*domain.SampleZone) ([]*domain.SampleZone, error) {
	var left, right []*domain.SampleZone
	for _, z := range zones {
		if z.Panorama <= -1 {
			left = append(left, z)
		} else {
			right = append(right, z)
		}
	}
	if len(left) != len(right) {
		return nil, fmt.Errorf("%w: %d left zones vs %d right zones", domain.ErrCombinationNotPossible, len(left), len(right))
	}

	sort.Slice(left, func(i, j int) bool { return lessKey(keyOf(left[i]), keyOf(left[j])) })
	sort.Slice(right, func(i, j int) bool { return lessKey(keyOf(right[i]), keyOf(right[j])) })

	combined := make([]*domain.SampleZone, 0, len(left))
	for i := range left {
		merged, err := combinePair(left[i], right[i])
		if err != nil {
			return nil, err
		}
		combined = append(combined, merged)
	}
	return combined, nil
}

func combinePair(l, r *domain.SampleZone) (*domain.SampleZone, error) {
	if l.SampleData == nil || r.SampleData == nil {
		return nil, fmt.Errorf("%w: missing sample data", domain.ErrCombinationNotPossible)
	}
	if !loopsMatch(l.Loops, r.Loops) {
		return nil, fmt.Errorf("%w: loop lists differ for %q/%q", domain.ErrCombinationNotPossible, l.Name, r.Name)
	}

	lf, err := readAsWavFile(l)
	if err != nil {
		return nil, err
	}
	rf, err := readAsWavFile(r)
	if err != nil {
		return nil, err
	}

	combined, err := wavfile.CombinePCM(lf, rf)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := wavfile.Emit(combined, &buf); err != nil {
		return nil, err
	}

	merged := *l
	merged.Name = commonPrefix(l.Name, r.Name)
	merged.Panorama = 0
	merged.SampleData = &domain.SampleData{
		Metadata: combined.Metadata,
		Backing:  domain.MemoryBacking{Data: buf.Bytes()},
	}
	return &merged, nil
}

func readAsWavFile(z *domain.SampleZone) (*wavfile.File, error) {
	var buf bytes.Buffer
	if err := z.SampleData.Backing.WriteSample(&buf); err != nil {
		return nil, err
	}
	return wavfile.Parse(bytes.NewReader(buf.Bytes()))
}

func loopsMatch(a, b []domain.SampleLoop) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Start != b[i].Start || a[i].End != b[i].End {
			return false
		}
	}
	return true
}

// commonPrefix returns the longest common prefix of a and b with any
// trailing "_" or "-" stripped, per spec §4.5.2's naming rule.
func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return strings.TrimRight(a[:i], "_-")
}
