// Package monitoring serves the policies and their latest results over HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/sarchlab/pagesim/monitoring/web"
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/runner"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// Monitor turns a runner into a server that lists the policies, shows their
// internal state, and runs new comparisons on request. Comparisons requested
// over HTTP reach the observers of the runner.
type Monitor struct {
	lock    sync.Mutex
	runner  *runner.Runner
	limits  refstring.Limits
	rng     *rand.Rand
	logger  *slog.Logger
	refs    []replacement.Page
	frames  int
	results []runner.Result

	portNumber      int
	profileDuration time.Duration
	listener        net.Listener
}

// NewMonitor creates a new Monitor over the policies of the runner.
func NewMonitor(r *runner.Runner) *Monitor {
	return &Monitor{
		runner:          r,
		limits:          refstring.DefaultLimits(),
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:          slog.Default(),
		profileDuration: time.Second,
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		m.logger.Warn("port number not allowed, using a random port instead",
			"port", portNumber)

		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithLimits sets the range of the inputs accepted by the run endpoint.
func (m *Monitor) WithLimits(limits refstring.Limits) *Monitor {
	m.limits = limits
	return m
}

// WithRand sets the random source used for random reference strings.
func (m *Monitor) WithRand(rng *rand.Rand) *Monitor {
	m.rng = rng
	return m
}

// WithLogger sets the logger.
func (m *Monitor) WithLogger(logger *slog.Logger) *Monitor {
	m.logger = logger
	return m
}

// Observe keeps a copy of the results of a comparison made outside the
// monitor.
func (m *Monitor) Observe(
	refs []replacement.Page,
	frames int,
	results []runner.Result,
) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.keep(refs, frames, results)
}

func (m *Monitor) keep(
	refs []replacement.Page,
	frames int,
	results []runner.Result,
) {
	m.refs = append([]replacement.Page(nil), refs...)
	m.frames = frames

	m.results = make([]runner.Result, len(results))
	for i, r := range results {
		m.results[i] = r.Clone()
	}
}

// Handler returns the router that serves the monitoring API and the web
// page.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/list_policies", m.listPolicies).Methods(http.MethodGet)
	r.HandleFunc("/api/policy/{name}", m.policyDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/policy/{name}/history", m.policyHistory).
		Methods(http.MethodGet)
	r.HandleFunc("/api/field/{json}", m.policyField).Methods(http.MethodGet)
	r.HandleFunc("/api/results", m.latestResults).Methods(http.MethodGet)
	r.HandleFunc("/api/run", m.run).Methods(http.MethodPost)
	r.HandleFunc("/api/resource", m.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server in the background and
// returns the URL it listens on.
func (m *Monitor) StartServer() (string, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", m.portNumber))
	if err != nil {
		return "", err
	}

	m.listener = listener

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	m.logger.Info("monitoring policies", "url", url)

	go func() {
		err := http.Serve(listener, m.Handler())
		if err != nil && !errors.Is(err, net.ErrClosed) {
			m.logger.Error("monitoring server stopped", "error", err)
		}
	}()

	return url, nil
}

// StopServer closes the listener started by StartServer.
func (m *Monitor) StopServer() error {
	if m.listener == nil {
		return nil
	}

	err := m.listener.Close()
	m.listener = nil

	return err
}

type policyRsp struct {
	ID     int              `json:"id"`
	Name   string           `json:"name"`
	Kind   replacement.Kind `json:"kind"`
	State  string           `json:"state"`
	Misses int              `json:"misses"`
}

func (m *Monitor) listPolicies(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	rsp := make([]policyRsp, 0, len(m.runner.Policies()))
	for _, p := range m.runner.Policies() {
		rsp = append(rsp, policyRsp{
			ID:     p.ID(),
			Name:   p.Name(),
			Kind:   p.Kind(),
			State:  p.State().String(),
			Misses: p.MissCount(),
		})
	}

	writeJSON(w, rsp)
}

func (m *Monitor) policyDetails(w http.ResponseWriter, r *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	policy := m.findPolicyOr404(w, mux.Vars(r)["name"])
	if policy == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(policy)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type fieldReq struct {
	PolicyName string `json:"policy_name,omitempty"`
	FieldName  string `json:"field_name,omitempty"`
}

func (m *Monitor) policyField(w http.ResponseWriter, r *http.Request) {
	req := fieldReq{}

	err := json.Unmarshal([]byte(mux.Vars(r)["json"]), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	policy := m.findPolicyOr404(w, req.PolicyName)
	if policy == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(policy)
	serializer.SetMaxDepth(1)

	err = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = serializer.Serialize(w)
	dieOnErr(err)
}

type historyRsp struct {
	Name    string               `json:"name"`
	Misses  int                  `json:"misses"`
	Frames  []replacement.Page   `json:"frames"`
	History [][]replacement.Page `json:"history"`
}

func (m *Monitor) policyHistory(w http.ResponseWriter, r *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	policy := m.findPolicyOr404(w, mux.Vars(r)["name"])
	if policy == nil {
		return
	}

	writeJSON(w, historyRsp{
		Name:    policy.Name(),
		Misses:  policy.MissCount(),
		Frames:  policy.Frames(),
		History: policy.History().Rows(),
	})
}

type resultsRsp struct {
	Refs    string          `json:"refs"`
	Frames  int             `json:"frames"`
	Results []runner.Result `json:"results"`
}

func (m *Monitor) latestResults(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	writeJSON(w, m.resultsRsp())
}

func (m *Monitor) resultsRsp() resultsRsp {
	results := m.results
	if results == nil {
		results = []runner.Result{}
	}

	return resultsRsp{
		Refs:    refstring.Format(m.refs),
		Frames:  m.frames,
		Results: results,
	}
}

type runReq struct {
	Refs   string `json:"refs,omitempty"`
	Random int    `json:"random,omitempty"`
	Frames int    `json:"frames"`
}

func (m *Monitor) run(w http.ResponseWriter, r *http.Request) {
	req := runReq{}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	refs, err := m.referenceString(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = refstring.ValidateFrames(req.Frames, m.limits)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	frames := refstring.EffectiveFrames(req.Frames, len(refs))

	results, err := m.runner.RunAll(refs, frames)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	m.keep(refs, frames, results)

	m.logger.Debug("policies compared over http",
		"refs", refstring.Format(refs), "frames", frames)

	writeJSON(w, m.resultsRsp())
}

func (m *Monitor) referenceString(req runReq) ([]replacement.Page, error) {
	if req.Random > 0 {
		return refstring.Generate(m.rng, req.Random, m.limits)
	}

	return refstring.Parse(req.Refs, m.limits)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func (m *Monitor) findPolicyOr404(
	w http.ResponseWriter,
	name string,
) replacement.Policy {
	var policy replacement.Policy
	for _, p := range m.runner.Policies() {
		if p.Name() == name {
			policy = p
		}
	}

	if policy == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Policy not found"))
		dieOnErr(err)
	}

	return policy
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
