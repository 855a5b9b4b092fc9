package hooking

import (
	"bytes"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

type sampleHookable struct {
	HookableBase
}

func (s *sampleHookable) Name() string {
	return "Sample"
}

var _ = Describe("HookableBase", func() {
	var (
		mockCtrl *gomock.Controller
		domain   *sampleHookable
		pos      *HookPos
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		domain = &sampleHookable{}
		pos = &HookPos{Name: "Sample Pos"}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should register hooks", func() {
		hook := NewMockHook(mockCtrl)

		domain.AcceptHook(hook)

		Expect(domain.NumHooks()).To(Equal(1))
		Expect(domain.Hooks()).To(ConsistOf(hook))
	})

	It("should panic on duplicated hook", func() {
		hook := NewMockHook(mockCtrl)
		domain.AcceptHook(hook)

		Expect(func() { domain.AcceptHook(hook) }).To(Panic())
	})

	It("should invoke hooks in order", func() {
		hook1 := NewMockHook(mockCtrl)
		hook2 := NewMockHook(mockCtrl)
		domain.AcceptHook(hook1)
		domain.AcceptHook(hook2)

		ctx := HookCtx{Domain: domain, Pos: pos, Item: 3}

		gomock.InOrder(
			hook1.EXPECT().Func(ctx),
			hook2.EXPECT().Func(ctx),
		)

		domain.InvokeHook(ctx)
	})
})

var _ = Describe("LogHook", func() {
	var (
		buf    *bytes.Buffer
		logger *slog.Logger
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		logger = slog.New(slog.NewTextHandler(buf,
			&slog.HandlerOptions{Level: slog.LevelDebug}))
	})

	It("should log position, domain and item", func() {
		hook := NewLogHook(logger, slog.LevelDebug)

		hook.Func(HookCtx{
			Domain: &sampleHookable{},
			Pos:    &HookPos{Name: "Miss"},
			Item:   7,
		})

		Expect(buf.String()).To(ContainSubstring("pos=Miss"))
		Expect(buf.String()).To(ContainSubstring("domain=Sample"))
		Expect(buf.String()).To(ContainSubstring("item=7"))
	})

	It("should skip disabled levels", func() {
		hook := NewLogHook(logger, slog.LevelDebug-4)

		hook.Func(HookCtx{Pos: &HookPos{Name: "Hit"}})

		Expect(buf.Len()).To(BeZero())
	})
})
