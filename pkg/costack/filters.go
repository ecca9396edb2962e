package costack

// Filter-identity bookkeeping. This lives outside the accumulator on
// purpose - it's peripheral metadata, not part of the numerical core.

const FilterMixed = "mixed"

type FilterTracker struct {
	names map[string]bool
}

func NewFilterTracker() *FilterTracker {
	return &FilterTracker{names: map[string]bool{}}
}

// Add records the filter of an exposure. Empty names are ignored.
func (ft *FilterTracker)Add(name string) {
	if name != "" {
		ft.names[name] = true
	}
}

// Filter reports the single filter seen so far, "" if none, or
// FilterMixed once more than one distinct filter has been added.
func (ft *FilterTracker)Filter() string {
	if len(ft.names) > 1 {
		return FilterMixed
	}
	for name := range ft.names {
		return name
	}
	return ""
}
