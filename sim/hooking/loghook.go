package hooking

import (
	"context"
	"log/slog"
)

// A LogHook writes every hook invocation to a structured logger.
type LogHook struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogHook creates a LogHook that logs at the given level. A nil logger
// falls back to slog.Default().
func NewLogHook(logger *slog.Logger, level slog.Level) *LogHook {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogHook{
		logger: logger,
		level:  level,
	}
}

// Func logs the hook context.
func (h *LogHook) Func(ctx HookCtx) {
	if !h.logger.Enabled(context.Background(), h.level) {
		return
	}

	attrs := []any{slog.String("pos", ctx.Pos.Name)}
	if ctx.Domain != nil {
		attrs = append(attrs, slog.String("domain", ctx.Domain.Name()))
	}

	if ctx.Item != nil {
		attrs = append(attrs, slog.Any("item", ctx.Item))
	}

	if ctx.Detail != nil {
		attrs = append(attrs, slog.Any("detail", ctx.Detail))
	}

	h.logger.Log(context.Background(), h.level, "hook", attrs...)
}
