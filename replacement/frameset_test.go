package replacement

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FrameSet", func() {
	var frames *FrameSet

	BeforeEach(func() {
		frames = NewFrameSet(3)
	})

	It("should start empty", func() {
		Expect(frames.Capacity()).To(Equal(3))
		Expect(frames.Len()).To(Equal(0))
		Expect(frames.Full()).To(BeFalse())
		Expect(frames.SlotOf(1)).To(Equal(-1))
	})

	It("should append in slot order", func() {
		frames.Append(4)
		frames.Append(2)

		Expect(frames.SlotOf(4)).To(Equal(0))
		Expect(frames.SlotOf(2)).To(Equal(1))
		Expect(frames.Contains(2)).To(BeTrue())
		Expect(frames.Snapshot()).To(Equal(pages(4, 2)))
	})

	It("should panic when appending to a full set", func() {
		frames.Append(1)
		frames.Append(2)
		frames.Append(3)

		Expect(frames.Full()).To(BeTrue())
		Expect(func() { frames.Append(4) }).To(Panic())
	})

	It("should panic when appending a resident page", func() {
		frames.Append(1)

		Expect(func() { frames.Append(1) }).To(Panic())
	})

	It("should replace a slot", func() {
		frames.Append(1)
		frames.Append(2)

		old := frames.Replace(1, 9)

		Expect(old).To(Equal(Page(2)))
		Expect(frames.At(1)).To(Equal(Page(9)))
		Expect(frames.Contains(2)).To(BeFalse())
	})

	It("should return independent snapshots", func() {
		frames.Append(1)
		snapshot := frames.Snapshot()

		frames.Replace(0, 5)

		Expect(snapshot).To(Equal(pages(1)))
	})

	It("should clear", func() {
		frames.Append(1)

		frames.Clear()

		Expect(frames.Len()).To(Equal(0))
		Expect(frames.Capacity()).To(Equal(3))
	})
})

var _ = Describe("History", func() {
	It("should record snapshots", func() {
		h := &History{}
		frames := NewFrameSet(2)
		frames.Append(1)
		h.Record(frames)
		frames.Append(2)
		h.Record(frames)

		Expect(h.NumRows()).To(Equal(2))
		Expect(h.Row(0)).To(Equal(pages(1)))
		Expect(h.Row(1)).To(Equal(pages(1, 2)))
		Expect(h.Width()).To(Equal(2))
	})

	It("should return a deep copy of the rows", func() {
		h := &History{}
		frames := NewFrameSet(1)
		frames.Append(1)
		h.Record(frames)

		rows := h.Rows()
		rows[0][0] = 7

		Expect(h.Row(0)).To(Equal(pages(1)))
	})

	It("should clear", func() {
		h := &History{}
		h.Record(NewFrameSet(1))

		h.Clear()

		Expect(h.NumRows()).To(Equal(0))
		Expect(h.Width()).To(Equal(0))
	})
})
