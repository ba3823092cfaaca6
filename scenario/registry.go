package scenario

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/context"
)

// Scenario is one repeatable test against the model service.
type Scenario interface {
	Name() string
	// Run executes one iteration. Check failures are recorded in env.Report and
	// in the result, the error is reserved for failures that stop the run.
	Run(ctx context.Context, env *Env) (*RunResult, error)
}

// RunResult summarizes one iteration.
type RunResult struct {
	Identity Identity
	Passes   int
	Fails    int
	Duration time.Duration
	// Per step latencies keyed by step name.
	Steps map[string]time.Duration
}

func (r *RunResult) Failed() bool {
	return r == nil || r.Fails > 0
}

type Registry struct {
	mu        sync.RWMutex
	scenarios map[string]Scenario
}

func NewRegistry() *Registry {
	return &Registry{scenarios: make(map[string]Scenario)}
}

// DefaultRegistry holds the scenarios shipped with modelcheck.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(&UpdateModelScenario{})
	return r
}

func (r *Registry) Register(s Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.scenarios[s.Name()]; ok {
		return errors.Errorf("scenario %q already registered", s.Name())
	}
	r.scenarios[s.Name()] = s
	return nil
}

func (r *Registry) MustRegister(s Scenario) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(name string) (Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scenarios[name]
	if !ok {
		return nil, errors.Errorf("unknown scenario %q, known: %v", name, r.namesLocked())
	}
	return s, nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
