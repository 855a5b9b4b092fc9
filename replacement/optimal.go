package replacement

// OptimalVictimFinder implements Belady's algorithm: evict the page that is
// never used again, or else the one whose next use is the furthest away.
//
// A fault at the final position of the reference string always evicts slot
// 0. No future access remains to be served, so the choice cannot change the
// fault count.
type OptimalVictimFinder struct{}

// NewOptimalVictimFinder returns a newly constructed optimal victim finder.
func NewOptimalVictimFinder() *OptimalVictimFinder {
	return &OptimalVictimFinder{}
}

// Kind returns KindOptimal.
func (f *OptimalVictimFinder) Kind() Kind {
	return KindOptimal
}

// Start does nothing; the rule is stateless.
func (f *OptimalVictimFinder) Start(*FrameSet) {}

// Visit does nothing; the rule is stateless.
func (f *OptimalVictimFinder) Visit(Page) {}

// FindVictim scans the frames in slot order. The first page that has no
// future reference wins immediately. Otherwise the furthest next use wins and
// ties go to the lowest slot.
func (f *OptimalVictimFinder) FindVictim(
	refs []Page,
	pos int,
	frames *FrameSet,
) Evictable {
	if pos == len(refs)-1 {
		return Evictable{Kind: EvictLastReference, Slot: 0}
	}

	return furthestOrNoFuture(refs, pos, frames)
}

// Admit does nothing; the rule is stateless.
func (f *OptimalVictimFinder) Admit(Page, int) {}
