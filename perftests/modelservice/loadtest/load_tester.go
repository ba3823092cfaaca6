package loadtest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"golang.org/x/time/rate"

	mcerror "github.com/twitter/modelcheck/common/errors"
	"github.com/twitter/modelcheck/common/stats"
	"github.com/twitter/modelcheck/scenario"
)

const (
	statsFileName    = "model_load_test.csv"
	progressInterval = 10 * time.Second
)

type StatusCode int

const (
	WaitingToStart StatusCode = iota
	Initializing
	RunningIterations
	Finished
)

type Status struct {
	Code      StatusCode `json:"code"`
	Desc      string     `json:"desc"`
	Completed int64      `json:"completed"`
	Failed    int64      `json:"failed"`
	Errors    int64      `json:"errors"`
}

func (s Status) String() string {
	return fmt.Sprintf("{'code': %d; 'desc':'%s'}", s.Code, s.Desc)
}

type Args struct {
	LogLevel   string
	Scenario   string
	VUs        int
	Iterations int           // total across all VUs, 0 to run until Duration
	Duration   time.Duration // 0 to run until Iterations are spent
	Rate       float64       // iteration starts per second, 0 for no limit
	StatsFile  string        // defaults to <tmp>/modelcheck/model_load_test.csv
}

func (a Args) validate() error {
	if a.VUs < 1 {
		return errors.Errorf("vus must be at least 1, got %d", a.VUs)
	}
	if a.Iterations < 0 || a.Duration < 0 || a.Rate < 0 {
		return errors.New("iterations, duration and rate must not be negative")
	}
	if a.Iterations == 0 && a.Duration == 0 {
		return errors.New("one of iterations or duration is required")
	}
	return nil
}

/*
ScenarioLoadTester is the object that runs the load test. The RunLoadTest() function starts the
load test, only one test runs at a time.
*/
type ScenarioLoadTester struct {
	args      Args
	env       scenario.Env
	registry  *scenario.Registry
	stat      stats.StatsReceiver
	stream    *streamHub
	unlisten  func()
	statsFile string

	mu        sync.RWMutex
	status    StatusCode
	cancel    context.CancelFunc
	firstErr  error
	remaining int64

	completed int64
	failed    int64
	errored   int64
}

// MakeScenarioLoadTester returns a tester running scenarios from registry in env. env is copied,
// its Stats defaults to a finagle receiver reporting in milliseconds.
func MakeScenarioLoadTester(a *Args, env *scenario.Env, registry *scenario.Registry) *ScenarioLoadTester {
	lt := &ScenarioLoadTester{
		args:     *a,
		env:      *env,
		registry: registry,
		status:   WaitingToStart,
		stream:   newStreamHub(),
	}
	if lt.env.Stats == nil {
		lt.env.Stats = stats.NewFinagleStatsReceiver().Precision(time.Millisecond)
	}
	lt.stat = lt.env.Stats
	subscribers := lt.stat.Gauge(stats.LoadTestStreamSubscribersGauge)
	lt.stream.gauge = func(n int) { subscribers.Update(int64(n)) }
	if lt.env.Report != nil {
		lt.unlisten = lt.env.Report.AddListener(lt.stream)
	}

	lt.statsFile = a.StatsFile
	if lt.statsFile == "" {
		dir := filepath.Join(os.TempDir(), "modelcheck")
		if err := os.MkdirAll(dir, 0777); err != nil {
			log.Warnf("creating stats dir %s: %v", dir, err)
		}
		lt.statsFile = filepath.Join(dir, statsFileName)
	}
	return lt
}

func (lt *ScenarioLoadTester) StatsFile() string {
	return lt.statsFile
}

func (lt *ScenarioLoadTester) StatsReceiver() stats.StatsReceiver {
	return lt.stat
}

func (lt *ScenarioLoadTester) running() bool {
	return lt.status == Initializing || lt.status == RunningIterations
}

var errAlreadyRunning = errors.New("load test already running")

// testRun is a test claimed by begin and not yet run.
type testRun struct {
	args   Args
	sc     scenario.Scenario
	stop   context.Context
	cancel context.CancelFunc
}

/*
RunLoadTest runs the test to completion. It returns the first iteration error (a failed dial
for instance), check failures are left in the env's Report.
*/
func (lt *ScenarioLoadTester) RunLoadTest(ctx context.Context) error {
	run, err := lt.begin(ctx, nil)
	if err != nil {
		return err
	}
	return lt.run(ctx, run)
}

// begin validates the args and moves the tester to Initializing in one step, so
// a second caller sees the test as running. A nil a keeps the current args.
func (lt *ScenarioLoadTester) begin(ctx context.Context, a *Args) (*testRun, error) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if lt.running() {
		return nil, errAlreadyRunning
	}
	args := lt.args
	if a != nil {
		args = *a
		if args.StatsFile == "" {
			args.StatsFile = lt.statsFile
		}
	}
	if err := args.validate(); err != nil {
		return nil, mcerror.NewError(err, mcerror.ConfigFailureExitCode)
	}
	sc, err := lt.registry.Get(args.Scenario)
	if err != nil {
		return nil, mcerror.NewError(err, mcerror.ConfigFailureExitCode)
	}
	run := &testRun{args: args, sc: sc}
	// stop ends the test, iterations in flight run on ctx and finish.
	if args.Duration > 0 {
		run.stop, run.cancel = context.WithTimeout(ctx, args.Duration)
	} else {
		run.stop, run.cancel = context.WithCancel(ctx)
	}
	lt.args = args
	lt.cancel = run.cancel
	lt.status = Initializing
	lt.firstErr = nil
	lt.remaining = int64(args.Iterations)
	atomic.StoreInt64(&lt.completed, 0)
	atomic.StoreInt64(&lt.failed, 0)
	atomic.StoreInt64(&lt.errored, 0)
	return run, nil
}

func (lt *ScenarioLoadTester) run(ctx context.Context, run *testRun) error {
	defer run.cancel()
	args, sc, stop := run.args, run.sc, run.stop

	lt.stat.Render(false, true) // clear the stats
	var limiter *rate.Limiter
	if args.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(args.Rate), 1)
	}

	log.Infof("starting %d VUs running %s", args.VUs, sc.Name())
	start := time.Now()
	startCh := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < args.VUs; i++ {
		wg.Add(1)
		go func(vu int) {
			defer wg.Done()
			lt.runVU(stop, ctx, vu, sc, args.Iterations > 0, limiter, startCh)
		}(i)
	}

	ticker := stats.Time.NewTicker(progressInterval)
	progressDone := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C():
				log.Info(lt.GetStatus().Desc)
			case <-progressDone:
				return
			}
		}
	}()

	lt.setStatus(RunningIterations)
	close(startCh) // signal start all VUs
	wg.Wait()
	ticker.Stop()
	close(progressDone)

	lt.mu.Lock()
	lt.status = Finished
	lt.cancel = nil
	firstErr := lt.firstErr
	lt.mu.Unlock()

	log.Infof("load test finished in %s: %d iterations, %d with failed checks, %d errors",
		time.Since(start), atomic.LoadInt64(&lt.completed), atomic.LoadInt64(&lt.failed), atomic.LoadInt64(&lt.errored))
	lt.writeStatsToFile(args)
	return firstErr
}

// wait for the start signal, then run iterations until the test is over
func (lt *ScenarioLoadTester) runVU(stop, ctx context.Context, vu int, sc scenario.Scenario, budgeted bool,
	limiter *rate.Limiter, startCh chan struct{}) {
	<-startCh
	active := lt.stat.Gauge(stats.LoadTestActiveVUsGauge)
	for stop.Err() == nil && (!budgeted || lt.takeIteration()) {
		if limiter != nil {
			if err := limiter.Wait(stop); err != nil {
				return
			}
		}
		lt.adjustActive(active, 1)
		res, err := sc.Run(ctx, &lt.env)
		lt.adjustActive(active, -1)
		lt.recordIteration(vu, res, err)
	}
}

// takeIteration reserves one iteration of the budget.
func (lt *ScenarioLoadTester) takeIteration() bool {
	return atomic.AddInt64(&lt.remaining, -1) >= 0
}

func (lt *ScenarioLoadTester) adjustActive(g stats.Gauge, delta int64) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	g.Update(g.Value() + delta)
}

func (lt *ScenarioLoadTester) recordIteration(vu int, res *scenario.RunResult, err error) {
	atomic.AddInt64(&lt.completed, 1)
	if err != nil {
		atomic.AddInt64(&lt.errored, 1)
		log.Errorf("vu %d: %v", vu, err)
		lt.mu.Lock()
		if lt.firstErr == nil {
			lt.firstErr = err
		}
		lt.mu.Unlock()
		return
	}
	if res.Failed() {
		atomic.AddInt64(&lt.failed, 1)
		log.Warnf("vu %d: %s had %d failed checks", vu, res.Identity.ID, res.Fails)
	}
}

func (lt *ScenarioLoadTester) setStatus(s StatusCode) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	lt.status = s
}

func (lt *ScenarioLoadTester) writeStatsToFile(args Args) {
	statsJson := lt.stat.Render(false, false) // don't reset in case we get status request

	statsMap := make(map[string]interface{})
	if err := json.Unmarshal(statsJson, &statsMap); err != nil {
		log.Errorf("decoding rendered stats: %v", err)
	}

	// sort the map to print in same order each time
	keys := make([]string, 0, len(statsMap))
	for k := range statsMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	line := new(bytes.Buffer)
	now := time.Now().Format("2006-01-02 15:04:05 MST")
	fmt.Fprintf(line, "%s,scenario,%s,vus,%d,iterations,%d,duration,%s,rate,%g,completed,%d,failed,%d,errors,%d", now,
		args.Scenario, args.VUs, args.Iterations, args.Duration, args.Rate,
		atomic.LoadInt64(&lt.completed), atomic.LoadInt64(&lt.failed), atomic.LoadInt64(&lt.errored))
	for _, sKey := range keys {
		fmt.Fprintf(line, ",%s,%v", sKey, statsMap[sKey])
	}
	fmt.Fprintf(line, "\n")

	f, err := os.OpenFile(args.StatsFileOr(lt.statsFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Errorf("opening stats file: %v", err)
		return
	}
	defer f.Close()
	if _, err := f.Write(line.Bytes()); err != nil {
		log.Errorf("writing stats file: %v", err)
		return
	}
	log.Infof("stats written to %s", f.Name())
}

// StatsFileOr returns StatsFile, or deflt when unset.
func (a Args) StatsFileOr(deflt string) string {
	if a.StatsFile == "" {
		return deflt
	}
	return a.StatsFile
}

/*
GetStatus returns the current state of the test.
*/
func (lt *ScenarioLoadTester) GetStatus() Status {
	lt.mu.RLock()
	code, args := lt.status, lt.args
	lt.mu.RUnlock()

	s := Status{
		Code:      code,
		Completed: atomic.LoadInt64(&lt.completed),
		Failed:    atomic.LoadInt64(&lt.failed),
		Errors:    atomic.LoadInt64(&lt.errored),
	}
	switch code {
	case Initializing:
		s.Desc = fmt.Sprintf("Initializing %s with %d VUs", args.Scenario, args.VUs)
	case RunningIterations:
		s.Desc = fmt.Sprintf("Running %s: %d iterations have finished, %d with failed checks.",
			args.Scenario, s.Completed, s.Failed)
	case Finished:
		data, err := ioutil.ReadFile(args.StatsFileOr(lt.statsFile))
		if err != nil {
			s.Desc = err.Error()
		} else {
			s.Desc = string(data)
		}
	default:
		s.Desc = "Waiting to start"
	}
	return s
}

/*
Trigger kill action. No new iteration starts, iterations in flight run to completion.
*/
func (lt *ScenarioLoadTester) KillTest() {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if lt.cancel != nil {
		log.Info("kill requested")
		lt.cancel()
	}
}

// Close stops the result stream and detaches it from the report.
func (lt *ScenarioLoadTester) Close() {
	if lt.unlisten != nil {
		lt.unlisten()
	}
	lt.stream.close()
}
