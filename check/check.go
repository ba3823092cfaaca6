// Package check records named pass/fail assertions without aborting the caller.
// Every predicate is evaluated independently, a predicate that panics (say on a
// nil response) counts as a failure. Results are aggregated per group and name
// across any number of concurrent scenario runs.
package check

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/twitter/modelcheck/common/stats"
)

// Result is one evaluation of a named check.
type Result struct {
	Group  string
	Name   string
	Passed bool
	// Set when the predicate panicked.
	Panic string
}

// Tally aggregates the results of one named check.
type Tally struct {
	Group  string
	Name   string
	Passes int64
	Fails  int64
}

// Listener is told about every recorded result. It is called synchronously
// and must not block for long.
type Listener interface {
	CheckRecorded(Result)
}

type ListenerFunc func(Result)

func (f ListenerFunc) CheckRecorded(r Result) { f(r) }

// Case is a named predicate.
type Case struct {
	Name      string
	Predicate func() bool
}

type Report struct {
	mu           sync.Mutex
	order        []string
	tallies      map[string]*Tally
	listeners    map[int]Listener
	nextListener int

	passes stats.Counter
	fails  stats.Counter
}

// NewReport returns an empty report counting into stat under "checks".
func NewReport(stat stats.StatsReceiver) *Report {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	scoped := stat.Scope("checks")
	return &Report{
		tallies:   make(map[string]*Tally),
		listeners: make(map[int]Listener),
		passes:    scoped.Counter(stats.CheckPassCounter),
		fails:     scoped.Counter(stats.CheckFailCounter),
	}
}

// AddListener registers l and returns the func that unregisters it.
func (r *Report) AddListener(l Listener) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextListener
	r.nextListener++
	r.listeners[id] = l
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

func (r *Report) record(res Result) {
	r.mu.Lock()
	key := res.Group + "\x00" + res.Name
	t, ok := r.tallies[key]
	if !ok {
		t = &Tally{Group: res.Group, Name: res.Name}
		r.tallies[key] = t
		r.order = append(r.order, key)
	}
	if res.Passed {
		t.Passes++
	} else {
		t.Fails++
	}
	listeners := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	r.mu.Unlock()

	if res.Passed {
		r.passes.Inc(1)
	} else {
		r.fails.Inc(1)
	}
	for _, l := range listeners {
		l.CheckRecorded(res)
	}
}

// Group returns a recorder for checks of the named group.
func (r *Report) Group(name string) *Group {
	return &Group{name: name, report: r}
}

// Failed reports whether any check has failed at least once.
func (r *Report) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tallies {
		if t.Fails > 0 {
			return true
		}
	}
	return false
}

// Totals returns the pass and fail counts over all checks.
func (r *Report) Totals() (passes, fails int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tallies {
		passes += t.Passes
		fails += t.Fails
	}
	return passes, fails
}

// Results returns a copy of the tallies in first seen order.
func (r *Report) Results() []Tally {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Tally, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, *r.tallies[key])
	}
	return out
}

// Group records checks under one group name. A Group is meant for a single
// goroutine, the Report behind it may be shared.
type Group struct {
	name   string
	report *Report

	passes int
	fails  int
}

func (g *Group) Name() string {
	return g.name
}

// Passes and Fails count the checks recorded through this Group only.
func (g *Group) Passes() int { return g.passes }
func (g *Group) Fails() int  { return g.fails }

// Check evaluates predicate and records the result under name.
func (g *Group) Check(name string, predicate func() bool) (passed bool) {
	res := Result{Group: g.name, Name: name}
	defer func() {
		if p := recover(); p != nil {
			res.Passed = false
			res.Panic = fmt.Sprint(p)
			passed = false
		}
		if res.Passed {
			g.passes++
		} else {
			g.fails++
			log.WithField("group", g.name).Debugf("check failed: %s %s", name, res.Panic)
		}
		g.report.record(res)
	}()
	res.Passed = predicate()
	return res.Passed
}

// CheckAll evaluates every case, in order, and reports whether all passed.
func (g *Group) CheckAll(cases ...Case) bool {
	all := true
	for _, c := range cases {
		if !g.Check(c.Name, c.Predicate) {
			all = false
		}
	}
	return all
}
