package pluginapi

import "sort"

// Registry is an immutable-after-construction lookup of every format
// plugin by its lowercase prefix (spec §5 "registry of plugins is
// immutable after construction").
type Registry struct {
	detectors map[string]Detector
	creators  map[string]Creator
}

// NewRegistry builds a Registry from the given detectors and creators.
// Prefixes are assumed unique per side; a later entry silently wins
// over an earlier one with the same prefix, since plugin registration
// order is caller-controlled and deliberate.
func NewRegistry(detectors []Detector, creators []Creator) *Registry {
	r := &Registry{detectors: map[string]Detector{}, creators: map[string]Creator{}}
	for _, d := range detectors {
		r.detectors[d.Prefix()] = d
	}
	for _, c := range creators {
		r.creators[c.Prefix()] = c
	}
	return r
}

// Prefixes returns every distinct format prefix known to the registry,
// sorted, spanning both detectors and creators.
func (r *Registry) Prefixes() []string {
	seen := map[string]bool{}
	for p := range r.detectors {
		seen[p] = true
	}
	for p := range r.creators {
		seen[p] = true
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// DetectorByPrefix looks up a Detector by its prefix.
func (r *Registry) DetectorByPrefix(prefix string) (Detector, bool) {
	d, ok := r.detectors[prefix]
	return d, ok
}

// CreatorByPrefix looks up a Creator by its prefix.
func (r *Registry) CreatorByPrefix(prefix string) (Creator, bool) {
	c, ok := r.creators[prefix]
	return c, ok
}
