package replacement

import (
	"fmt"
	"strings"
)

// Kind names a replacement policy.
type Kind int

// The supported replacement policies.
const (
	KindFIFO Kind = iota
	KindLRU
	KindOptimal
	KindOptimalFIFO
)

// DefaultKinds returns every supported policy in display order.
func DefaultKinds() []Kind {
	return []Kind{KindFIFO, KindLRU, KindOptimal, KindOptimalFIFO}
}

func (k Kind) String() string {
	switch k {
	case KindFIFO:
		return "fifo"
	case KindLRU:
		return "lru"
	case KindOptimal:
		return "opt"
	case KindOptimalFIFO:
		return "opt-fifo"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText encodes the kind with its command-line name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a command-line policy name.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = kind

	return nil
}

// DisplayName returns the name used when presenting the policy.
func (k Kind) DisplayName() string {
	switch k {
	case KindFIFO:
		return "Fifo"
	case KindLRU:
		return "LRU"
	case KindOptimal:
		return "Optimal"
	case KindOptimalFIFO:
		return "Optimal with Fifo"
	default:
		return k.String()
	}
}

// ParseKind converts a policy name, as accepted on the command line, into a
// Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fifo":
		return KindFIFO, nil
	case "lru":
		return KindLRU, nil
	case "opt", "optimal":
		return KindOptimal, nil
	case "opt-fifo", "optfifo", "optimal-fifo":
		return KindOptimalFIFO, nil
	default:
		return 0, fmt.Errorf("unknown policy %q", s)
	}
}

// A VictimFinder decides which resident page is evicted on a page fault. The
// engine owns the frames and the history; the finder only carries the state
// its own rule needs.
type VictimFinder interface {
	// Kind returns the policy that the finder implements.
	Kind() Kind

	// Start is called once the cold-start fill completes.
	Start(frames *FrameSet)

	// Visit is called when the page at a position is already resident.
	Visit(page Page)

	// FindVictim selects the slot to overwrite for the fault at position pos.
	// It does not change the finder, so it may be called more than once.
	FindVictim(refs []Page, pos int, frames *FrameSet) Evictable

	// Admit is called after the page has been placed in the slot chosen by
	// the last FindVictim. It commits the eviction.
	Admit(page Page, slot int)
}

// NewVictimFinder creates the victim finder of a policy.
func NewVictimFinder(kind Kind) VictimFinder {
	switch kind {
	case KindFIFO:
		return NewFIFOVictimFinder()
	case KindLRU:
		return NewLRUVictimFinder()
	case KindOptimal:
		return NewOptimalVictimFinder()
	case KindOptimalFIFO:
		return NewOptimalFIFOVictimFinder()
	default:
		panic(fmt.Sprintf("unknown policy kind %d", int(kind)))
	}
}
