package datarecording

import (
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/runner"
)

// Table names used by the ResultExporter.
const (
	PolicySummaryTable   = "policy_summary"
	FrameHistoryTable    = "frame_history"
	ReferenceStringTable = "reference_string"
)

// PolicySummary is one row of the policy_summary table.
type PolicySummary struct {
	RunID      string
	PolicyID   int
	Policy     string
	Kind       string
	Frames     int
	Length     int
	Misses     int
	FillMisses int
	Steps      int
}

// FrameCell is one occupied cell of a policy's frame history.
type FrameCell struct {
	RunID  string
	Policy string
	Step   int
	Slot   int
	Page   int
}

// ReferenceEntry is one position of the compared reference string.
type ReferenceEntry struct {
	RunID    string
	Position int
	Page     int
}

// ResultExporter writes comparison results into a DataRecorder. The caller
// names every comparison with a run id.
type ResultExporter struct {
	recorder DataRecorder
	created  bool
}

// NewResultExporter creates an exporter over the recorder.
func NewResultExporter(recorder DataRecorder) *ResultExporter {
	return &ResultExporter{
		recorder: recorder,
	}
}

// Export records the reference string, one summary per policy, and every
// occupied cell of every history. The entries are flushed before returning.
func (e *ResultExporter) Export(
	runID string,
	refs []replacement.Page,
	frames int,
	results []runner.Result,
) {
	e.createTables()

	for i, p := range refs {
		e.recorder.InsertData(ReferenceStringTable, ReferenceEntry{
			RunID:    runID,
			Position: i,
			Page:     int(p),
		})
	}

	for _, r := range results {
		e.recorder.InsertData(PolicySummaryTable, PolicySummary{
			RunID:      runID,
			PolicyID:   r.PolicyID,
			Policy:     r.Name,
			Kind:       r.Kind.String(),
			Frames:     frames,
			Length:     len(refs),
			Misses:     r.Misses,
			FillMisses: r.FillMisses,
			Steps:      r.NumRows(),
		})

		for step, row := range r.History {
			for slot, p := range row {
				e.recorder.InsertData(FrameHistoryTable, FrameCell{
					RunID:  runID,
					Policy: r.Name,
					Step:   step,
					Slot:   slot,
					Page:   int(p),
				})
			}
		}
	}

	e.recorder.Flush()
}

func (e *ResultExporter) createTables() {
	if e.created {
		return
	}

	e.recorder.CreateTable(ReferenceStringTable, ReferenceEntry{})
	e.recorder.CreateTable(PolicySummaryTable, PolicySummary{})
	e.recorder.CreateTable(FrameHistoryTable, FrameCell{})
	e.created = true
}
