package runner

import "github.com/sarchlab/pagesim/replacement"

// Result is the outcome of one policy over one reference string.
type Result struct {
	PolicyID   int                  `json:"policy_id"`
	Name       string               `json:"name"`
	Kind       replacement.Kind     `json:"kind"`
	Frames     int                  `json:"frames"`
	Misses     int                  `json:"misses"`
	FillMisses int                  `json:"fill_misses"`
	History    [][]replacement.Page `json:"history"`
}

// NumRows returns the number of recorded snapshots.
func (r Result) NumRows() int {
	return len(r.History)
}

// Width returns the length of the longest snapshot.
func (r Result) Width() int {
	width := 0
	for _, row := range r.History {
		width = max(width, len(row))
	}

	return width
}

// Clone returns a copy that shares no memory with the result.
func (r Result) Clone() Result {
	history := make([][]replacement.Page, len(r.History))
	for i, row := range r.History {
		history[i] = append([]replacement.Page(nil), row...)
	}

	r.History = history

	return r
}

func resultOf(p replacement.Policy, frames int) Result {
	return Result{
		PolicyID:   p.ID(),
		Name:       p.Name(),
		Kind:       p.Kind(),
		Frames:     frames,
		Misses:     p.MissCount(),
		FillMisses: p.FillMisses(),
		History:    p.History().Rows(),
	}
}
