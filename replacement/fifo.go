package replacement

// FIFOVictimFinder evicts pages in the order they were loaded, regardless of
// how recently they were used.
type FIFOVictimFinder struct {
	cursor   int
	capacity int
}

// NewFIFOVictimFinder returns a newly constructed FIFO victim finder.
func NewFIFOVictimFinder() *FIFOVictimFinder {
	return &FIFOVictimFinder{}
}

// Kind returns KindFIFO.
func (f *FIFOVictimFinder) Kind() Kind {
	return KindFIFO
}

// Start rewinds the cursor to slot 0.
func (f *FIFOVictimFinder) Start(frames *FrameSet) {
	f.cursor = 0
	f.capacity = frames.Capacity()
}

// Visit does nothing. Hits do not change the eviction order.
func (f *FIFOVictimFinder) Visit(Page) {}

// FindVictim returns the slot under the cursor.
func (f *FIFOVictimFinder) FindVictim(
	_ []Page,
	_ int,
	_ *FrameSet,
) Evictable {
	return Evictable{Kind: EvictCursor, Slot: f.cursor}
}

// Admit advances the cursor circularly.
func (f *FIFOVictimFinder) Admit(_ Page, _ int) {
	f.cursor++
	if f.cursor >= f.capacity {
		f.cursor = 0
	}
}
