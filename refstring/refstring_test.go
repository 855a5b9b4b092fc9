package refstring_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/replacement"
)

var _ = Describe("Parse", func() {
	limits := refstring.DefaultLimits()

	It("should parse pages separated by any whitespace", func() {
		refs, err := refstring.Parse("  1 2\t3\n 0  9 ", limits)

		Expect(err).NotTo(HaveOccurred())
		Expect(refs).To(Equal([]replacement.Page{1, 2, 3, 0, 9}))
	})

	It("should truncate decimal input", func() {
		refs, err := refstring.Parse("3.7 0.2", limits)

		Expect(err).NotTo(HaveOccurred())
		Expect(refs).To(Equal([]replacement.Page{3, 0}))
	})

	It("should report every invalid token", func() {
		_, err := refstring.Parse("1 x 12 99999 -1", limits)

		Expect(err).To(MatchError(refstring.ErrTokenNotInteger))
		Expect(err).To(MatchError(refstring.ErrPageOutOfRange))
		Expect(err).To(MatchError(refstring.ErrTokenTooBig))
		Expect(err.Error()).To(ContainSubstring(`"x"`))
		Expect(err.Error()).To(ContainSubstring(`"-1"`))
	})

	It("should reject an empty line", func() {
		_, err := refstring.Parse("   ", limits)

		Expect(err).To(MatchError(refstring.ErrLengthOutOfRange))
	})

	It("should reject too many pages", func() {
		small := refstring.Limits{MaxPage: 9, MaxLength: 3, MaxFrames: 2}

		_, err := refstring.Parse("1 2 3 4", small)

		Expect(err).To(MatchError(refstring.ErrLengthOutOfRange))
	})
})

var _ = Describe("ParseInt", func() {
	It("should parse integers", func() {
		Expect(refstring.ParseInt(" 42 ")).To(Equal(42))
	})

	It("should truncate toward zero", func() {
		Expect(refstring.ParseInt("-2.9")).To(Equal(-2))
	})

	It("should reject text", func() {
		_, err := refstring.ParseInt("yes")

		Expect(err).To(MatchError(refstring.ErrTokenNotInteger))
	})

	DescribeTable("should reject whole tokens only, never numeric prefixes",
		func(token string) {
			_, err := refstring.ParseInt(token)

			Expect(err).To(MatchError(refstring.ErrTokenNotInteger))
		},
		Entry("trailing letters", "3abc"),
		Entry("hexadecimal", "0x5"),
		Entry("trailing dot text", "2.5x"),
		Entry("infinity", "inf"),
		Entry("not a number", "NaN"),
	)

	It("should reject huge numbers", func() {
		_, err := refstring.ParseInt("1e20")

		Expect(err).To(MatchError(refstring.ErrTokenTooBig))
	})
})

var _ = Describe("Generate", func() {
	limits := refstring.DefaultLimits()

	It("should generate pages within range", func() {
		rng := rand.New(rand.NewSource(42))

		refs, err := refstring.Generate(rng, 50, limits)

		Expect(err).NotTo(HaveOccurred())
		Expect(refs).To(HaveLen(50))
		for _, p := range refs {
			Expect(int(p)).To(BeNumerically(">=", 0))
			Expect(int(p)).To(BeNumerically("<=", limits.MaxPage))
		}
	})

	It("should be deterministic for a seed", func() {
		a, _ := refstring.Generate(rand.New(rand.NewSource(7)), 20, limits)
		b, _ := refstring.Generate(rand.New(rand.NewSource(7)), 20, limits)

		Expect(a).To(Equal(b))
	})

	It("should reject a bad length", func() {
		_, err := refstring.Generate(rand.New(rand.NewSource(1)), 51, limits)

		Expect(err).To(MatchError(refstring.ErrLengthOutOfRange))
	})
})

var _ = Describe("Frames", func() {
	limits := refstring.DefaultLimits()

	It("should validate the frame count", func() {
		Expect(refstring.ValidateFrames(1, limits)).To(Succeed())
		Expect(refstring.ValidateFrames(7, limits)).To(Succeed())
		Expect(refstring.ValidateFrames(0, limits)).
			To(MatchError(refstring.ErrFramesOutOfRange))
		Expect(refstring.ValidateFrames(8, limits)).
			To(MatchError(refstring.ErrFramesOutOfRange))
	})

	It("should cap frames at the reference string length", func() {
		Expect(refstring.EffectiveFrames(7, 3)).To(Equal(3))
		Expect(refstring.EffectiveFrames(2, 3)).To(Equal(2))
	})
})

var _ = Describe("Format", func() {
	It("should join pages with spaces", func() {
		Expect(refstring.Format([]replacement.Page{1, 0, 9})).To(Equal("1 0 9"))
	})
})
