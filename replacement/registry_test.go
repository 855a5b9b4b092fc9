package replacement

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	var registry *Registry

	BeforeEach(func() {
		registry = NewRegistry()
	})

	It("should assign increasing ids", func() {
		var engines []*Engine
		for _, kind := range DefaultKinds() {
			engines = append(engines, registry.NewEngine(kind, kind.DisplayName()))
		}

		Expect(engines).To(HaveLen(4))
		for i, e := range engines {
			Expect(e.ID()).To(Equal(i + 1))
		}
		Expect(engines[0].Name()).To(Equal("Fifo"))
		Expect(engines[3].Name()).To(Equal("Optimal with Fifo"))
		Expect(engines[3].Kind()).To(Equal(KindOptimalFIFO))
		Expect(registry.MaxID()).To(Equal(4))
		Expect(registry.Engines()).To(HaveLen(4))
	})

	It("should list engines in creation order", func() {
		registry.NewEngine(KindLRU, "A")
		e2 := registry.NewEngine(KindFIFO, "B")

		Expect(e2.ID()).To(Equal(2))
		Expect(registry.Engines()[0].Name()).To(Equal("A"))
		Expect(registry.Engines()[1]).To(BeIdenticalTo(e2))
	})

	It("should keep registries independent", func() {
		other := NewRegistry()

		registry.NewEngine(KindFIFO, "A")
		e := other.NewEngine(KindFIFO, "A")

		Expect(e.ID()).To(Equal(1))
	})
})

var _ = Describe("Builder", func() {
	It("should panic without a registry", func() {
		Expect(func() { MakeBuilder().Build("X") }).To(Panic())
	})

	It("should use a custom victim finder", func() {
		finder := NewLRUVictimFinder()

		e := MakeBuilder().
			WithRegistry(NewRegistry()).
			WithKind(KindOptimal).
			WithVictimFinder(finder).
			Build("Custom")

		Expect(e.Kind()).To(Equal(KindLRU))
	})
})

var _ = Describe("Kind", func() {
	DescribeTable("should parse policy names",
		func(name string, kind Kind) {
			parsed, err := ParseKind(name)

			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(kind))
		},
		Entry("fifo", "fifo", KindFIFO),
		Entry("lru", "LRU", KindLRU),
		Entry("opt", "opt", KindOptimal),
		Entry("optimal", " optimal ", KindOptimal),
		Entry("opt-fifo", "opt-fifo", KindOptimalFIFO),
	)

	It("should reject unknown names", func() {
		_, err := ParseKind("clock")

		Expect(err).To(HaveOccurred())
	})

	It("should round trip through String", func() {
		for _, kind := range DefaultKinds() {
			parsed, err := ParseKind(kind.String())

			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(kind))
		}
	})

	It("should decode text names", func() {
		var kind Kind

		Expect(kind.UnmarshalText([]byte("lru"))).To(Succeed())
		Expect(kind).To(Equal(KindLRU))
		Expect(kind.UnmarshalText([]byte("clock"))).NotTo(Succeed())
	})
})
