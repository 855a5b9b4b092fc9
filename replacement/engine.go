// Package replacement simulates page-replacement policies. An Engine replays
// a reference string against a fixed number of frames and records every
// change of the frame set, while a VictimFinder decides which page to evict.
package replacement

import (
	"fmt"

	"github.com/sarchlab/pagesim/sim/hooking"
)

// HookPosFill marks the end of the cold-start fill. Item is the filled frame
// snapshot.
var HookPosFill = &hooking.HookPos{Name: "Fill"}

// HookPosHit marks an access to a resident page. Item is the page and Detail
// is an AccessDetail.
var HookPosHit = &hooking.HookPos{Name: "Hit"}

// HookPosMiss marks a page fault. Item is the page and Detail is an
// AccessDetail.
var HookPosMiss = &hooking.HookPos{Name: "Miss"}

// AccessDetail describes one access of the reference string.
type AccessDetail struct {
	Position int
	Page     Page
	Phase    State

	// Slot holds the page after the access.
	Slot int

	// Evicted is set if a resident page was replaced. Victim and Decision
	// are only meaningful when Evicted is set.
	Evicted  bool
	Victim   Page
	Decision Evictable
}

// A Policy is a page-replacement policy that can be run over reference
// strings.
type Policy interface {
	hooking.Hookable

	// ID returns the identifier assigned by the registry.
	ID() int

	// Kind returns the replacement rule of the policy.
	Kind() Kind

	// State returns the phase of the current calculation.
	State() State

	// Reset clears the frames, the history, and the miss counter.
	Reset()

	// Run replays the reference string with the given number of frames.
	Run(refs []Page, frames int) error

	// MissCount returns the number of page faults of the last run.
	MissCount() int

	// FillMisses returns the number of page faults during the cold-start
	// fill.
	FillMisses() int

	// History returns the recorded frame snapshots of the last run.
	History() *History

	// Frames returns the resident pages at the end of the last run.
	Frames() []Page
}

// Engine runs one replacement policy. It owns the frame set, the history and
// the miss counter. The eviction decision is delegated to a VictimFinder.
type Engine struct {
	hooking.HookableBase

	name   string
	id     int
	finder VictimFinder

	state      State
	frames     *FrameSet
	history    History
	misses     int
	fillMisses int
}

// Name returns the name of the engine.
func (e *Engine) Name() string {
	return e.name
}

// ID returns the identifier assigned by the registry.
func (e *Engine) ID() int {
	return e.id
}

// Kind returns the kind of the victim finder.
func (e *Engine) Kind() Kind {
	return e.finder.Kind()
}

// State returns the phase of the current calculation.
func (e *Engine) State() State {
	return e.state
}

// MissCount returns the number of page faults.
func (e *Engine) MissCount() int {
	return e.misses
}

// FillMisses returns the number of page faults during the cold-start fill.
func (e *Engine) FillMisses() int {
	return e.fillMisses
}

// History returns the frame snapshots.
func (e *Engine) History() *History {
	return &e.history
}

// Frames returns a copy of the resident pages.
func (e *Engine) Frames() []Page {
	if e.frames == nil {
		return nil
	}

	return e.frames.Snapshot()
}

// Reset returns the engine to StateAwaitingFill and releases the previous
// history.
func (e *Engine) Reset() {
	e.frames = nil
	e.history.Clear()
	e.misses = 0
	e.fillMisses = 0
	e.state = StateAwaitingFill
}

// Run replays the reference string. The inputs are validated before any
// state changes.
func (e *Engine) Run(refs []Page, frames int) error {
	err := e.checkRun(refs, frames)
	if err != nil {
		return err
	}

	e.frames = NewFrameSet(frames)
	e.state = StateFilling

	start := e.fill(refs)

	e.state = StateReplacing
	e.finder.Start(e.frames)

	for pos := start; pos < len(refs); pos++ {
		e.access(refs, pos)
	}

	return nil
}

func (e *Engine) checkRun(refs []Page, frames int) error {
	if e.state != StateAwaitingFill {
		return fmt.Errorf("%s: %w", e.name, ErrNotReset)
	}

	if len(refs) == 0 {
		return fmt.Errorf("%s: %w", e.name, ErrEmptyInput)
	}

	if frames < 1 || frames > len(refs) {
		return fmt.Errorf("%s: %w: %d frames for %d references",
			e.name, ErrInvalidCapacity, frames, len(refs))
	}

	return nil
}

// fill loads the first distinct pages into empty frames and returns the
// position right after the fill. It records exactly one history row.
func (e *Engine) fill(refs []Page) int {
	for pos, p := range refs {
		detail := AccessDetail{Position: pos, Page: p, Phase: StateFilling}

		if slot := e.frames.SlotOf(p); slot >= 0 {
			detail.Slot = slot
			e.invokeAccessHook(HookPosHit, detail)
		} else {
			e.misses++
			e.fillMisses++
			e.frames.Append(p)
			detail.Slot = e.frames.Len() - 1
			e.invokeAccessHook(HookPosMiss, detail)
		}

		if e.frames.Full() || pos+1 >= len(refs) {
			e.history.Record(e.frames)
			e.InvokeHook(hooking.HookCtx{
				Domain: e,
				Pos:    HookPosFill,
				Item:   e.frames.Snapshot(),
			})

			return pos + 1
		}
	}

	return len(refs)
}

func (e *Engine) access(refs []Page, pos int) {
	p := refs[pos]
	detail := AccessDetail{Position: pos, Page: p, Phase: StateReplacing}

	if slot := e.frames.SlotOf(p); slot >= 0 {
		e.finder.Visit(p)
		detail.Slot = slot
		e.invokeAccessHook(HookPosHit, detail)

		return
	}

	e.misses++

	decision := e.finder.FindVictim(refs, pos, e.frames)
	victim := e.frames.Replace(decision.Slot, p)
	e.finder.Admit(p, decision.Slot)
	e.history.Record(e.frames)

	detail.Slot = decision.Slot
	detail.Evicted = true
	detail.Victim = victim
	detail.Decision = decision
	e.invokeAccessHook(HookPosMiss, detail)
}

func (e *Engine) invokeAccessHook(pos *hooking.HookPos, detail AccessDetail) {
	if e.NumHooks() == 0 {
		return
	}

	e.InvokeHook(hooking.HookCtx{
		Domain: e,
		Pos:    pos,
		Item:   detail.Page,
		Detail: detail,
	})
}
