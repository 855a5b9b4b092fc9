package replacement

import "github.com/sarchlab/pagesim/sim/hooking"

// Builder can build engines.
type Builder struct {
	registry *Registry
	kind     Kind
	finder   VictimFinder
	hooks    []hooking.Hook
}

// MakeBuilder returns a new Builder. The default policy is FIFO.
func MakeBuilder() Builder {
	return Builder{
		kind: KindFIFO,
	}
}

// WithRegistry sets the registry that assigns the engine identifier.
func (b Builder) WithRegistry(r *Registry) Builder {
	b.registry = r
	return b
}

// WithKind sets the replacement policy.
func (b Builder) WithKind(kind Kind) Builder {
	b.kind = kind
	return b
}

// WithVictimFinder sets a custom victim finder. It takes precedence over
// WithKind.
func (b Builder) WithVictimFinder(finder VictimFinder) Builder {
	b.finder = finder
	return b
}

// WithHooks sets the hooks attached to the engine.
func (b Builder) WithHooks(hooks ...hooking.Hook) Builder {
	b.hooks = append([]hooking.Hook(nil), hooks...)
	return b
}

// Build creates the engine with the given name. It panics if no registry is
// set.
func (b Builder) Build(name string) *Engine {
	if b.registry == nil {
		panic("a registry is required to build an engine")
	}

	finder := b.finder
	if finder == nil {
		finder = NewVictimFinder(b.kind)
	}

	e := &Engine{
		name:   name,
		finder: finder,
		state:  StateAwaitingFill,
	}

	for _, h := range b.hooks {
		e.AcceptHook(h)
	}

	e.id = b.registry.register(e)

	return e
}
