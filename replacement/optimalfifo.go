package replacement

// OptimalFIFOVictimFinder is Belady's algorithm with a FIFO tie-break among
// the pages that are never used again. Unlike OptimalVictimFinder, it applies
// the same rule at the final position of the reference string.
type OptimalFIFOVictimFinder struct{}

// NewOptimalFIFOVictimFinder returns a newly constructed victim finder.
func NewOptimalFIFOVictimFinder() *OptimalFIFOVictimFinder {
	return &OptimalFIFOVictimFinder{}
}

// Kind returns KindOptimalFIFO.
func (f *OptimalFIFOVictimFinder) Kind() Kind {
	return KindOptimalFIFO
}

// Start does nothing; the rule is stateless.
func (f *OptimalFIFOVictimFinder) Start(*FrameSet) {}

// Visit does nothing; the rule is stateless.
func (f *OptimalFIFOVictimFinder) Visit(Page) {}

// FindVictim partitions the frames into pages with and without a future
// reference.
//
//   - exactly one page without a future reference is evicted directly;
//   - among several such pages, the one whose first appearance in the
//     reference string is the earliest is evicted, lowest slot on ties;
//   - if every page is used again, the furthest next use wins, lowest slot on
//     ties.
func (f *OptimalFIFOVictimFinder) FindVictim(
	refs []Page,
	pos int,
	frames *FrameSet,
) Evictable {
	var noFuture []int

	furthest := Evictable{Kind: EvictFurthestDistance}

	for slot := 0; slot < frames.Len(); slot++ {
		next, ok := NextUse(refs, pos, frames.At(slot))
		if !ok {
			noFuture = append(noFuture, slot)
			continue
		}

		if distance := next - pos; distance > furthest.Distance {
			furthest.Slot = slot
			furthest.Distance = distance
		}
	}

	switch len(noFuture) {
	case 0:
		return furthest
	case 1:
		return Evictable{Kind: EvictNoFuture, Slot: noFuture[0]}
	default:
		return f.earliestLoaded(refs, pos, frames, noFuture)
	}
}

func (f *OptimalFIFOVictimFinder) earliestLoaded(
	refs []Page,
	pos int,
	frames *FrameSet,
	candidates []int,
) Evictable {
	victim := Evictable{Kind: EvictFIFOTieBreak, Slot: candidates[0]}
	victim.FirstSeen = FirstUse(refs, pos, frames.At(candidates[0]))

	for _, slot := range candidates[1:] {
		firstSeen := FirstUse(refs, pos, frames.At(slot))
		if firstSeen < victim.FirstSeen {
			victim.Slot = slot
			victim.FirstSeen = firstSeen
		}
	}

	return victim
}

// Admit does nothing; the rule is stateless.
func (f *OptimalFIFOVictimFinder) Admit(Page, int) {}
