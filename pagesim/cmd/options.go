package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/runner"
	"github.com/sarchlab/pagesim/sim/hooking"
	"github.com/sarchlab/pagesim/sim/id"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/spf13/cobra"
)

const defaultPolicies = "fifo,lru,opt,opt-fifo"

var errNoInput = errors.New("either --refs or --random is required")

// inputOptions select the reference string, the frame count, and the
// policies to compare.
type inputOptions struct {
	refs     string
	random   int
	seed     int64
	frames   int
	policies string
}

func (o *inputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.refs, "refs", "",
		"Reference string, pages separated by spaces")
	cmd.Flags().IntVar(&o.random, "random", 0,
		"Generate a random reference string of the given length")
	cmd.Flags().Int64Var(&o.seed, "seed", 0,
		"Seed of the random reference string")
	cmd.Flags().IntVar(&o.frames, "frames", 3, "Number of frames")
	cmd.Flags().StringVar(&o.policies, "policies", defaultPolicies,
		"Comma separated policies to compare")

	cmd.MarkFlagsMutuallyExclusive("refs", "random")
}

func (o *inputOptions) hasInput() bool {
	return o.refs != "" || o.random > 0
}

func (o *inputOptions) newRand(cmd *cobra.Command, g *globalOptions) *rand.Rand {
	switch {
	case cmd.Flags().Changed("seed"):
		return rand.New(rand.NewSource(o.seed))
	case g.cfg.HasSeed:
		return rand.New(rand.NewSource(g.cfg.Seed))
	default:
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

// input returns the reference string and the frame count after capping the
// frames at the string length.
func (o *inputOptions) input(
	cmd *cobra.Command,
	g *globalOptions,
) ([]replacement.Page, int, error) {
	var (
		refs []replacement.Page
		err  error
	)

	switch {
	case o.random > 0:
		refs, err = refstring.Generate(o.newRand(cmd, g), o.random, g.cfg.Limits)
	case o.refs != "":
		refs, err = refstring.Parse(o.refs, g.cfg.Limits)
	default:
		err = errNoInput
	}

	if err != nil {
		return nil, 0, err
	}

	err = refstring.ValidateFrames(o.frames, g.cfg.Limits)
	if err != nil {
		return nil, 0, err
	}

	return refs, refstring.EffectiveFrames(o.frames, len(refs)), nil
}

func (o *inputOptions) kinds() ([]replacement.Kind, error) {
	var kinds []replacement.Kind

	seen := make(map[replacement.Kind]bool)

	for _, name := range strings.Split(o.policies, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}

		kind, err := replacement.ParseKind(name)
		if err != nil {
			return nil, err
		}

		if seen[kind] {
			return nil, fmt.Errorf("policy %s is listed twice", kind)
		}

		seen[kind] = true
		kinds = append(kinds, kind)
	}

	if len(kinds) == 0 {
		return nil, errors.New("no policy selected")
	}

	return kinds, nil
}

// outputOptions select where the accesses and the results are stored. They
// observe the runner so that every comparison gets its own run id, shared by
// the trace and the database.
type outputOptions struct {
	trace  string
	record string

	runIDs      id.IDGenerator
	runID       string
	counter     *tracing.AccessCounter
	traceWriter *tracing.CSVTraceWriter
	tracer      *tracing.AccessTracer
	exporter    *datarecording.ResultExporter
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.trace, "trace", "",
		"CSV file that receives every access")
	cmd.Flags().StringVar(&o.record, "record", "",
		"SQLite database (without the .sqlite3 suffix) or clickhouse:// DSN "+
			"that receives the results")
}

// open creates the trace file and the database requested by the flags or by
// the configuration.
func (o *outputOptions) open(g *globalOptions) error {
	o.runIDs = id.NewParallelIDGenerator()
	o.counter = tracing.NewAccessCounter()

	trace := o.trace
	if trace == "" {
		trace = g.cfg.TraceFile
	}

	if trace != "" {
		o.traceWriter = tracing.NewCSVTraceWriter(trace)
		o.traceWriter.Init()
		o.tracer = tracing.NewAccessTracer("", o.traceWriter)
		g.logger.Info("tracing accesses", "file", trace)
	}

	record := o.record
	if record == "" {
		record = g.cfg.RecordDB
	}

	if record != "" {
		recorder, err := datarecording.Open(record)
		if err != nil {
			return err
		}

		o.exporter = datarecording.NewResultExporter(recorder)
		g.logger.Info("recording results", "target", record)
	}

	return nil
}

// newRunner builds one engine per kind. The engines report to the access
// counter, the debug log, and the tracer.
func (o *outputOptions) newRunner(
	g *globalOptions,
	kinds []replacement.Kind,
) *runner.Runner {
	hooks := []hooking.Hook{
		hooking.NewLogHook(g.logger, slog.LevelDebug),
		o.counter,
	}

	if o.tracer != nil {
		hooks = append(hooks, o.tracer)
	}

	return runner.NewRunnerForKinds(kinds, hooks...).WithObserver(o)
}

// BeginRun names the next comparison and restarts the hit counts.
func (o *outputOptions) BeginRun() {
	o.runID = o.runIDs.Generate()
	o.counter.Reset()

	if o.tracer != nil {
		o.tracer.SetRunID(o.runID)
	}
}

// Observe records the comparison under the run id chosen by BeginRun.
func (o *outputOptions) Observe(
	refs []replacement.Page,
	frames int,
	results []runner.Result,
) {
	if o.exporter != nil {
		o.exporter.Export(o.runID, refs, frames, results)
	}
}

func (o *outputOptions) close() {
	if o.traceWriter != nil {
		o.traceWriter.Close()
	}
}
