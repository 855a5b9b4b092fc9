package replacement

import "github.com/sarchlab/pagesim/sim/hooking"

// A Registry hands out engine identifiers and keeps track of the engines it
// built. Identifiers increase monotonically and are never reused.
type Registry struct {
	maxID   int
	engines []Policy
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) register(p Policy) int {
	r.maxID++
	r.engines = append(r.engines, p)

	return r.maxID
}

// MaxID returns the last assigned identifier.
func (r *Registry) MaxID() int {
	return r.maxID
}

// Engines returns the registered engines in creation order.
func (r *Registry) Engines() []Policy {
	engines := make([]Policy, len(r.engines))
	copy(engines, r.engines)

	return engines
}

// NewEngine builds and registers an engine of the given kind. The hooks are
// attached to the engine.
func (r *Registry) NewEngine(kind Kind, name string, hooks ...hooking.Hook) *Engine {
	return MakeBuilder().
		WithRegistry(r).
		WithKind(kind).
		WithHooks(hooks...).
		Build(name)
}
