// Package tracing records every access that a replacement engine serves.
package tracing

import (
	"strconv"

	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/sim/hooking"
)

// An Access is one served reference, flattened for trace backends.
type Access struct {
	RunID    string
	Policy   string
	Position int
	Page     int
	Phase    string
	Outcome  string
	Slot     int
	Victim   string
	Decision string
}

// A TraceWriter stores accesses.
type TraceWriter interface {
	Init()
	Write(access Access)
	Flush()
}

// AccessTracer is a hook that converts engine accesses into trace records.
type AccessTracer struct {
	runID   string
	backend TraceWriter
}

// NewAccessTracer creates a tracer that tags every record with the run id and
// writes it to the backend.
func NewAccessTracer(runID string, backend TraceWriter) *AccessTracer {
	return &AccessTracer{
		runID:   runID,
		backend: backend,
	}
}

// SetRunID changes the run id attached to the records that follow.
func (t *AccessTracer) SetRunID(runID string) {
	t.runID = runID
}

// Func records hit and miss accesses. Other positions are ignored.
func (t *AccessTracer) Func(ctx hooking.HookCtx) {
	var outcome string

	switch ctx.Pos {
	case replacement.HookPosHit:
		outcome = "hit"
	case replacement.HookPosMiss:
		outcome = "miss"
	default:
		return
	}

	detail, ok := ctx.Detail.(replacement.AccessDetail)
	if !ok {
		return
	}

	access := Access{
		RunID:    t.runID,
		Policy:   ctx.Domain.Name(),
		Position: detail.Position,
		Page:     int(detail.Page),
		Phase:    detail.Phase.String(),
		Outcome:  outcome,
		Slot:     detail.Slot,
	}

	if detail.Evicted {
		access.Victim = strconv.Itoa(int(detail.Victim))
		access.Decision = detail.Decision.Kind.String()
	}

	t.backend.Write(access)
}

// An AccessCounter counts hits and misses per policy.
type AccessCounter struct {
	hits   map[string]int
	misses map[string]int
}

// NewAccessCounter creates an empty counter.
func NewAccessCounter() *AccessCounter {
	return &AccessCounter{
		hits:   make(map[string]int),
		misses: make(map[string]int),
	}
}

// Func counts the access.
func (c *AccessCounter) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case replacement.HookPosHit:
		c.hits[ctx.Domain.Name()]++
	case replacement.HookPosMiss:
		c.misses[ctx.Domain.Name()]++
	}
}

// Hits returns the number of hits of a policy.
func (c *AccessCounter) Hits(policy string) int {
	return c.hits[policy]
}

// Misses returns the number of misses of a policy.
func (c *AccessCounter) Misses(policy string) int {
	return c.misses[policy]
}

// Reset drops all the counts.
func (c *AccessCounter) Reset() {
	c.hits = make(map[string]int)
	c.misses = make(map[string]int)
}
