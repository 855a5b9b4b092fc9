package replacement

import "fmt"

// EvictionKind tells which rule selected a victim.
type EvictionKind int

// The rules that a victim finder can apply.
const (
	// EvictCursor is the FIFO rule: the slot under the rotating cursor.
	EvictCursor EvictionKind = iota

	// EvictLeastRecent is the LRU rule: the page at the head of the recency
	// list.
	EvictLeastRecent

	// EvictNoFuture selects a page that is never referenced again.
	EvictNoFuture

	// EvictFurthestDistance selects the page whose next use is the furthest
	// away. Ties go to the lowest slot.
	EvictFurthestDistance

	// EvictFIFOTieBreak selects, among several pages that are never used
	// again, the one that first appeared the earliest.
	EvictFIFOTieBreak

	// EvictLastReference always selects slot 0 when the fault happens at the
	// final position of the reference string.
	EvictLastReference
)

func (k EvictionKind) String() string {
	switch k {
	case EvictCursor:
		return "Cursor"
	case EvictLeastRecent:
		return "LeastRecent"
	case EvictNoFuture:
		return "NoFuture"
	case EvictFurthestDistance:
		return "FurthestDistance"
	case EvictFIFOTieBreak:
		return "FIFOTieBreak"
	case EvictLastReference:
		return "LastReference"
	default:
		return fmt.Sprintf("EvictionKind(%d)", int(k))
	}
}

// Evictable is the decision of a victim finder.
type Evictable struct {
	Kind EvictionKind
	Slot int

	// Distance is set for EvictFurthestDistance: positions until next use.
	Distance int

	// FirstSeen is set for EvictFIFOTieBreak: the position where the page
	// first appeared in the reference string.
	FirstSeen int
}

func (e Evictable) String() string {
	switch e.Kind {
	case EvictFurthestDistance:
		return fmt.Sprintf("%s(slot=%d, distance=%d)", e.Kind, e.Slot, e.Distance)
	case EvictFIFOTieBreak:
		return fmt.Sprintf("%s(slot=%d, first=%d)", e.Kind, e.Slot, e.FirstSeen)
	default:
		return fmt.Sprintf("%s(slot=%d)", e.Kind, e.Slot)
	}
}

// NextUse returns the first position at or after from where the page is
// referenced. ok is false if the page is never referenced again.
func NextUse(refs []Page, from int, p Page) (pos int, ok bool) {
	for i := from; i < len(refs); i++ {
		if refs[i] == p {
			return i, true
		}
	}

	return len(refs), false
}

// FirstUse returns the first position before the given bound where the page
// is referenced, or bound if it does not appear.
func FirstUse(refs []Page, before int, p Page) int {
	for i := 0; i < before; i++ {
		if refs[i] == p {
			return i
		}
	}

	return before
}

// furthestOrNoFuture scans the frames in slot order. It stops at the first
// page that is never used again. Otherwise it returns the page with the
// furthest next use.
func furthestOrNoFuture(refs []Page, pos int, frames *FrameSet) Evictable {
	best := Evictable{Kind: EvictFurthestDistance}

	for slot := 0; slot < frames.Len(); slot++ {
		next, ok := NextUse(refs, pos, frames.At(slot))
		if !ok {
			return Evictable{Kind: EvictNoFuture, Slot: slot}
		}

		if distance := next - pos; distance > best.Distance {
			best.Slot = slot
			best.Distance = distance
		}
	}

	return best
}
