package replacement

// Page identifies a virtual page in a reference string.
type Page int

// A FrameSet holds the pages that are currently resident in physical memory.
// The slot order is significant: slot i is frame i.
type FrameSet struct {
	capacity int
	pages    []Page
}

// NewFrameSet creates an empty FrameSet with the given number of frames.
func NewFrameSet(capacity int) *FrameSet {
	return &FrameSet{
		capacity: capacity,
		pages:    make([]Page, 0, capacity),
	}
}

// Capacity returns the number of frames.
func (s *FrameSet) Capacity() int {
	return s.capacity
}

// Len returns the number of occupied frames.
func (s *FrameSet) Len() int {
	return len(s.pages)
}

// Full tells if every frame holds a page.
func (s *FrameSet) Full() bool {
	return len(s.pages) >= s.capacity
}

// Contains tells if the page is resident.
func (s *FrameSet) Contains(p Page) bool {
	return s.SlotOf(p) >= 0
}

// SlotOf returns the slot that holds the page, or -1 if the page is not
// resident.
func (s *FrameSet) SlotOf(p Page) int {
	for i, resident := range s.pages {
		if resident == p {
			return i
		}
	}

	return -1
}

// At returns the page in the given slot.
func (s *FrameSet) At(slot int) Page {
	return s.pages[slot]
}

// Append places the page in the next empty frame. It panics if the set is
// full or the page is already resident.
func (s *FrameSet) Append(p Page) {
	if s.Full() {
		panic("frame set is full")
	}

	if s.Contains(p) {
		panic("page is already resident")
	}

	s.pages = append(s.pages, p)
}

// Replace overwrites the page in the given slot and returns the evicted page.
func (s *FrameSet) Replace(slot int, p Page) Page {
	old := s.pages[slot]
	s.pages[slot] = p

	return old
}

// Snapshot returns a copy of the resident pages in slot order.
func (s *FrameSet) Snapshot() []Page {
	snapshot := make([]Page, len(s.pages))
	copy(snapshot, s.pages)

	return snapshot
}

// Clear removes all the pages.
func (s *FrameSet) Clear() {
	s.pages = s.pages[:0]
}
