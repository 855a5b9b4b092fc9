package replacement

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func framesOf(capacity int, ids ...int) *FrameSet {
	frames := NewFrameSet(capacity)
	for _, id := range ids {
		frames.Append(Page(id))
	}

	return frames
}

var _ = Describe("Lookahead", func() {
	refs := pages(1, 2, 3, 1, 4, 2)

	It("should find the next use at or after a position", func() {
		pos, ok := NextUse(refs, 1, 1)
		Expect(ok).To(BeTrue())
		Expect(pos).To(Equal(3))

		pos, ok = NextUse(refs, 3, 1)
		Expect(ok).To(BeTrue())
		Expect(pos).To(Equal(3))
	})

	It("should report pages that are never used again", func() {
		_, ok := NextUse(refs, 4, 3)
		Expect(ok).To(BeFalse())
	})

	It("should find the first use before a bound", func() {
		Expect(FirstUse(refs, 5, 1)).To(Equal(0))
		Expect(FirstUse(refs, 5, 4)).To(Equal(4))
		Expect(FirstUse(refs, 4, 4)).To(Equal(4))
	})
})

var _ = Describe("OptimalVictimFinder", func() {
	var finder *OptimalVictimFinder

	BeforeEach(func() {
		finder = NewOptimalVictimFinder()
	})

	It("should pick the first page without future use", func() {
		refs := pages(1, 2, 3, 4, 2, 9)
		frames := framesOf(3, 1, 2, 3)

		victim := finder.FindVictim(refs, 3, frames)

		Expect(victim).To(Equal(Evictable{Kind: EvictNoFuture, Slot: 0}))
	})

	It("should pick the furthest next use", func() {
		refs := pages(1, 2, 3, 4, 1, 2, 3, 9)
		frames := framesOf(3, 1, 2, 3)

		victim := finder.FindVictim(refs, 3, frames)

		Expect(victim.Kind).To(Equal(EvictFurthestDistance))
		Expect(victim.Slot).To(Equal(2))
		Expect(victim.Distance).To(Equal(3))
	})

	It("should prefer a later slot when its next use is further", func() {
		refs := pages(1, 2, 3, 4, 1, 2, 9)
		frames := framesOf(2, 1, 2)

		victim := finder.FindVictim(refs, 3, frames)

		Expect(victim.Kind).To(Equal(EvictFurthestDistance))
		Expect(victim.Slot).To(Equal(1))
		Expect(victim.Distance).To(Equal(2))
	})

	It("should always pick slot 0 at the last reference", func() {
		refs := pages(1, 2, 3)
		frames := framesOf(2, 1, 2)

		victim := finder.FindVictim(refs, 2, frames)

		Expect(victim).To(Equal(Evictable{Kind: EvictLastReference, Slot: 0}))
	})
})

var _ = Describe("OptimalFIFOVictimFinder", func() {
	var finder *OptimalFIFOVictimFinder

	BeforeEach(func() {
		finder = NewOptimalFIFOVictimFinder()
	})

	It("should evict the only page without future use", func() {
		refs := pages(1, 2, 3, 4, 1, 3)
		frames := framesOf(3, 1, 2, 3)

		victim := finder.FindVictim(refs, 3, frames)

		Expect(victim).To(Equal(Evictable{Kind: EvictNoFuture, Slot: 1}))
	})

	It("should break no-future ties by earliest first appearance", func() {
		refs := pages(1, 2, 3, 2, 4, 5)
		frames := framesOf(2, 3, 2)

		victim := finder.FindVictim(refs, 4, frames)

		Expect(victim.Kind).To(Equal(EvictFIFOTieBreak))
		Expect(victim.Slot).To(Equal(1))
		Expect(victim.FirstSeen).To(Equal(1))
	})

	It("should use the first appearance, not the latest one", func() {
		refs := pages(1, 2, 1, 3)
		frames := framesOf(2, 1, 2)

		victim := finder.FindVictim(refs, 3, frames)

		Expect(victim.Kind).To(Equal(EvictFIFOTieBreak))
		Expect(victim.Slot).To(Equal(0))
		Expect(victim.FirstSeen).To(Equal(0))
	})

	It("should fall back to the furthest next use", func() {
		refs := pages(1, 2, 3, 4, 3, 1, 2)
		frames := framesOf(3, 1, 2, 3)

		victim := finder.FindVictim(refs, 3, frames)

		Expect(victim.Kind).To(Equal(EvictFurthestDistance))
		Expect(victim.Slot).To(Equal(1))
		Expect(victim.Distance).To(Equal(3))
	})

	It("should not special-case the last reference", func() {
		refs := pages(1, 2, 3, 2, 4, 5)
		frames := framesOf(2, 3, 4)

		victim := finder.FindVictim(refs, 5, frames)

		Expect(victim.Kind).To(Equal(EvictFIFOTieBreak))
		Expect(victim.Slot).To(Equal(0))
	})
})

var _ = Describe("LRUVictimFinder", func() {
	It("should seed the recency list in fill order", func() {
		finder := NewLRUVictimFinder()
		finder.Start(framesOf(3, 7, 0, 1))

		Expect(finder.visitList).To(Equal(pages(7, 0, 1)))
	})

	It("should move visited pages to the tail", func() {
		finder := NewLRUVictimFinder()
		finder.Start(framesOf(3, 7, 0, 1))

		finder.Visit(7)

		Expect(finder.visitList).To(Equal(pages(0, 1, 7)))
	})

	It("should evict the head wherever it sits in the frames", func() {
		finder := NewLRUVictimFinder()
		frames := framesOf(3, 7, 0, 1)
		finder.Start(frames)
		finder.Visit(7)

		victim := finder.FindVictim(nil, 0, frames)
		finder.Admit(4, victim.Slot)

		Expect(victim).To(Equal(Evictable{Kind: EvictLeastRecent, Slot: 1}))
		Expect(finder.visitList).To(Equal(pages(1, 7, 4)))
	})

	It("should only commit the eviction on Admit", func() {
		finder := NewLRUVictimFinder()
		frames := framesOf(3, 7, 0, 1)
		finder.Start(frames)

		first := finder.FindVictim(nil, 0, frames)
		second := finder.FindVictim(nil, 0, frames)

		Expect(second).To(Equal(first))
		Expect(finder.visitList).To(Equal(pages(7, 0, 1)))

		finder.Admit(4, first.Slot)

		Expect(finder.visitList).To(Equal(pages(0, 1, 4)))
	})
})

var _ = Describe("FIFOVictimFinder", func() {
	It("should rotate the cursor", func() {
		finder := NewFIFOVictimFinder()
		frames := framesOf(2, 1, 2)
		finder.Start(frames)

		var slots []int
		for i := 0; i < 3; i++ {
			victim := finder.FindVictim(nil, 0, frames)
			finder.Admit(9, victim.Slot)
			slots = append(slots, victim.Slot)
		}

		Expect(slots).To(Equal([]int{0, 1, 0}))
	})
})
