package replacement

// History records a snapshot of the frame set after every step that changes
// it. The first row is the state after the cold-start fill, every later row
// follows a page fault.
type History struct {
	rows [][]Page
}

// Record appends a snapshot of the frame set.
func (h *History) Record(frames *FrameSet) {
	h.rows = append(h.rows, frames.Snapshot())
}

// NumRows returns the number of recorded snapshots.
func (h *History) NumRows() int {
	return len(h.rows)
}

// Row returns the i-th snapshot.
func (h *History) Row(i int) []Page {
	return h.rows[i]
}

// Rows returns a deep copy of all the snapshots.
func (h *History) Rows() [][]Page {
	rows := make([][]Page, len(h.rows))
	for i, row := range h.rows {
		rows[i] = make([]Page, len(row))
		copy(rows[i], row)
	}

	return rows
}

// Width returns the length of the longest snapshot.
func (h *History) Width() int {
	width := 0
	for _, row := range h.rows {
		if len(row) > width {
			width = len(row)
		}
	}

	return width
}

// Clear drops all the snapshots and releases their memory.
func (h *History) Clear() {
	h.rows = nil
}
