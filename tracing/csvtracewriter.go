package tracing

import (
	"fmt"
	"io"

	"github.com/tebeka/atexit"
)

// CSVTraceWriter is a trace backend that stores accesses into a CSV file.
type CSVTraceWriter struct {
	path string
	file io.WriteCloser

	accesses   []Access
	bufferSize int
}

// NewCSVTraceWriter creates a new CSVTraceWriter.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the tracing csv file. If the file already exists, it will be
// overwritten. A .lz4 or .sz suffix compresses the file. Buffered accesses are
// flushed when the program exits through atexit.
func (t *CSVTraceWriter) Init() {
	file, err := createTraceFile(t.path)
	if err != nil {
		panic(err)
	}

	t.file = file

	fmt.Fprintf(file,
		"RunID, Policy, Position, Page, Phase, Outcome, Slot, Victim, Decision\n")

	atexit.Register(func() {
		t.Close()
	})
}

// Write buffers an access.
func (t *CSVTraceWriter) Write(access Access) {
	t.accesses = append(t.accesses, access)
	if len(t.accesses) >= t.bufferSize {
		t.Flush()
	}
}

// Flush writes the buffered accesses to the CSV file.
func (t *CSVTraceWriter) Flush() {
	if t.file == nil {
		return
	}

	for _, a := range t.accesses {
		fmt.Fprintf(t.file, "%s, %s, %d, %d, %s, %s, %d, %s, %s\n",
			a.RunID,
			a.Policy,
			a.Position,
			a.Page,
			a.Phase,
			a.Outcome,
			a.Slot,
			a.Victim,
			a.Decision,
		)
	}

	t.accesses = nil
}

// Close flushes and closes the file. Closing twice is a no-op.
func (t *CSVTraceWriter) Close() {
	if t.file == nil {
		return
	}

	t.Flush()

	err := t.file.Close()
	if err != nil {
		panic(err)
	}

	t.file = nil
}
