// Package runner feeds one reference string to a group of replacement
// policies and collects their results.
package runner

import (
	"fmt"

	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/sim/hooking"
)

// An Observer is notified around every comparison. BeginRun is called before
// the first policy runs. Observe is called after every policy succeeded.
type Observer interface {
	BeginRun()
	Observe(refs []replacement.Page, frames int, results []Result)
}

// A Runner owns a set of policies that are compared under the same reference
// string and frame count.
type Runner struct {
	policies  []replacement.Policy
	results   []Result
	observers []Observer
}

// NewRunner creates a runner over the given policies. Policies run in the
// given order.
func NewRunner(policies ...replacement.Policy) *Runner {
	return &Runner{
		policies: policies,
	}
}

// NewRunnerForKinds builds one engine per kind in a fresh registry, all
// sharing the hooks, and returns a runner over them. Engines are named with
// the policy display names.
func NewRunnerForKinds(kinds []replacement.Kind, hooks ...hooking.Hook) *Runner {
	registry := replacement.NewRegistry()
	for _, kind := range kinds {
		registry.NewEngine(kind, kind.DisplayName(), hooks...)
	}

	return NewRunner(registry.Engines()...)
}

// WithObserver adds an observer of the comparisons.
func (r *Runner) WithObserver(o Observer) *Runner {
	r.observers = append(r.observers, o)
	return r
}

// Policies returns the policies of the runner.
func (r *Runner) Policies() []replacement.Policy {
	return r.policies
}

// Reset resets every policy and drops the previous results.
func (r *Runner) Reset() {
	for _, p := range r.policies {
		p.Reset()
	}

	r.results = nil
}

// RunAll resets the policies and runs each of them over the reference string.
// It stops at the first policy that fails. Observers only see successful
// comparisons.
func (r *Runner) RunAll(refs []replacement.Page, frames int) ([]Result, error) {
	r.Reset()

	for _, o := range r.observers {
		o.BeginRun()
	}

	results := make([]Result, 0, len(r.policies))
	for _, p := range r.policies {
		err := p.Run(refs, frames)
		if err != nil {
			return nil, fmt.Errorf("running policy %s: %w", p.Name(), err)
		}

		results = append(results, resultOf(p, frames))
	}

	r.results = results

	for _, o := range r.observers {
		o.Observe(refs, frames, results)
	}

	return results, nil
}

// Results returns the results of the last successful RunAll.
func (r *Runner) Results() []Result {
	return r.results
}
