package replacement

// LRUVictimFinder evicts the least recently used page. It keeps a recency
// list ordered from the least to the most recently used page. The list
// agrees with the frame set on membership, never on order.
type LRUVictimFinder struct {
	visitList []Page
}

// NewLRUVictimFinder returns a newly constructed LRU victim finder.
func NewLRUVictimFinder() *LRUVictimFinder {
	return &LRUVictimFinder{}
}

// Kind returns KindLRU.
func (f *LRUVictimFinder) Kind() Kind {
	return KindLRU
}

// Start seeds the recency list with the filled frames in fill order. Repeats
// seen during the fill do not reorder the list.
func (f *LRUVictimFinder) Start(frames *FrameSet) {
	f.visitList = frames.Snapshot()
}

// Visit moves the page to the most recently used end.
func (f *LRUVictimFinder) Visit(page Page) {
	f.remove(page)
	f.visitList = append(f.visitList, page)
}

// FindVictim returns the slot that holds the least recently used page. The
// recency list is left untouched.
func (f *LRUVictimFinder) FindVictim(
	_ []Page,
	_ int,
	frames *FrameSet,
) Evictable {
	return Evictable{
		Kind: EvictLeastRecent,
		Slot: frames.SlotOf(f.visitList[0]),
	}
}

// Admit drops the evicted least recently used page and appends the new page
// as the most recently used one.
func (f *LRUVictimFinder) Admit(page Page, _ int) {
	f.visitList = append(f.visitList[1:], page)
}

func (f *LRUVictimFinder) remove(page Page) {
	for i, p := range f.visitList {
		if p == page {
			f.visitList = append(f.visitList[:i], f.visitList[i+1:]...)
			return
		}
	}
}
