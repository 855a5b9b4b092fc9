// Package report renders the frame histories of the replacement policies.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sarchlab/pagesim/runner"
)

// A HitCounter reports how many references a policy served from memory.
type HitCounter interface {
	Hits(policy string) int
}

// A Presenter prints results in the layout used by operating-system
// textbooks: one line per frame, one column per recorded step.
type Presenter struct {
	hits HitCounter
}

// NewPresenter creates a Presenter.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// WithHitCounter adds a hits column to the summary.
func (p *Presenter) WithHitCounter(c HitCounter) *Presenter {
	p.hits = c
	return p
}

// Present prints every result, separated by a blank line.
func (p *Presenter) Present(w io.Writer, results []runner.Result) error {
	for i, r := range results {
		if i > 0 {
			_, err := io.WriteString(w, "\n")
			if err != nil {
				return err
			}
		}

		err := p.PresentOne(w, r)
		if err != nil {
			return err
		}
	}

	return nil
}

// PresentOne prints a single result.
func (p *Presenter) PresentOne(w io.Writer, r runner.Result) error {
	buf := new(bytes.Buffer)
	p.writeTable(buf, r)

	_, err := w.Write(buf.Bytes())

	return err
}

func (p *Presenter) writeTable(buf *bytes.Buffer, r runner.Result) {
	fmt.Fprintf(buf, "\n%s page faults: %d\n", r.Name, r.Misses)

	cellWidth := p.cellWidth(r)
	blank := strings.Repeat(" ", cellWidth)

	for slot := 0; slot < r.Width(); slot++ {
		cells := make([]string, len(r.History))
		for step, row := range r.History {
			if slot < len(row) {
				cells[step] = fmt.Sprintf("%*d", cellWidth, int(row[slot]))
			} else {
				cells[step] = blank
			}
		}

		buf.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
		buf.WriteString("\n")
	}
}

func (p *Presenter) cellWidth(r runner.Result) int {
	width := 1
	for _, row := range r.History {
		for _, page := range row {
			width = max(width, len(strconv.Itoa(int(page))))
		}
	}

	return width
}

// Summary prints one aligned line per policy. The hits column only appears
// when a hit counter is set.
func (p *Presenter) Summary(w io.Writer, results []runner.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if p.hits != nil {
		fmt.Fprintln(tw, "ID\tPolicy\tFrames\tHits\tFaults\tSteps")
	} else {
		fmt.Fprintln(tw, "ID\tPolicy\tFrames\tFaults\tSteps")
	}

	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%d\t", r.PolicyID, r.Name, r.Frames)

		if p.hits != nil {
			fmt.Fprintf(tw, "%d\t", p.hits.Hits(r.Name))
		}

		fmt.Fprintf(tw, "%d\t%d\n", r.Misses, r.NumRows())
	}

	return tw.Flush()
}
