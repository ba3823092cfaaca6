package loadtest

/*
start the load tester as an http server exposing the endpoints:
get model_test - returns the status (running, waiting to start, etc.)
get model_test?action=start&... - starts a load test
get model_test/kill - kills the current running test
get model_test/stream - websocket stream of check results
*/

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (lt *ScenarioLoadTester) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		switch {
		case strings.HasSuffix(r.URL.Path, "/kill"):
			lt.KillEndpoint(w, r)
		case strings.HasSuffix(r.URL.Path, "/stream"):
			lt.stream.ServeHTTP(w, r)
		default:
			lt.GetEndpoint(w, r)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		resp := fmt.Sprintf("Method %s not implemented", r.Method)
		json.NewEncoder(w).Encode(resp)
	}
}

func (lt *ScenarioLoadTester) GetEndpoint(w http.ResponseWriter, r *http.Request) {
	a := lt.getStringParam("action", "noAction", r)
	if a == "noAction" {
		lt.GetTestResultEndpoint(w, r)
	} else {
		lt.StartTestEndpoint(w, r)
	}
}

func (lt *ScenarioLoadTester) GetTestResultEndpoint(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lt.GetStatus())
}

func (lt *ScenarioLoadTester) StartTestEndpoint(w http.ResponseWriter, r *http.Request) {
	lt.mu.RLock()
	current := lt.args
	lt.mu.RUnlock()

	// get the test parameters from the request
	args := current
	args.Scenario = lt.getStringParam("scenario", current.Scenario, r)
	args.VUs = lt.getIntParam("vus", current.VUs, r)
	args.Iterations = lt.getIntParam("iterations", current.Iterations, r)
	args.Duration = lt.getDurationParam("duration", current.Duration, r)
	args.Rate = lt.getFloatParam("rate", current.Rate, r)

	if err := args.validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(err.Error())
		return
	}
	ctx := context.Background()
	run, err := lt.begin(ctx, &args)
	if err != nil {
		if err == errAlreadyRunning {
			w.WriteHeader(http.StatusConflict)
		} else {
			w.WriteHeader(http.StatusBadRequest)
		}
		json.NewEncoder(w).Encode(err.Error())
		return
	}

	go func() {
		if err := lt.run(ctx, run); err != nil {
			log.Errorf("load test: %v", err)
		}
	}()

	resp := "Starting load test."
	json.NewEncoder(w).Encode(resp)
}

func (lt *ScenarioLoadTester) KillEndpoint(w http.ResponseWriter, r *http.Request) {
	lt.KillTest()
	resp := "Killing test.  Use GET to confirm that the test has stopped."
	json.NewEncoder(w).Encode(resp)
}

func (lt *ScenarioLoadTester) getStringParam(name string, deflt string, r *http.Request) string {
	t, ok := r.URL.Query()[name]
	if !ok {
		return deflt
	}
	return t[0]
}

func (lt *ScenarioLoadTester) getIntParam(name string, deflt int, r *http.Request) int {
	t := r.URL.Query()[name]
	if len(t) == 0 {
		return deflt
	}
	n, err := strconv.Atoi(t[0])
	if err != nil {
		log.Errorf("%s, with value %s could not be converted to int, using default:%d",
			name, t, deflt)
		return deflt
	}
	return n
}

func (lt *ScenarioLoadTester) getFloatParam(name string, deflt float64, r *http.Request) float64 {
	t := r.URL.Query()[name]
	if len(t) == 0 {
		return deflt
	}
	f, err := strconv.ParseFloat(t[0], 64)
	if err != nil {
		log.Errorf("%s, with value %s could not be converted to float, using default:%g",
			name, t, deflt)
		return deflt
	}
	return f
}

func (lt *ScenarioLoadTester) getDurationParam(name string, deflt time.Duration, r *http.Request) time.Duration {
	t := r.URL.Query()[name]
	if len(t) == 0 {
		return deflt
	}
	d, err := time.ParseDuration(t[0])
	if err != nil {
		log.Errorf("%s, with value %s could not be converted to a duration, using default:%s",
			name, t, deflt)
		return deflt
	}
	return d
}

func (lt *ScenarioLoadTester) GetEndpointHandlers() map[string]http.Handler {
	handlers := map[string]http.Handler{}
	handlers["/model_test/kill"] = http.Handler(lt)
	handlers["/model_test/stream"] = http.Handler(lt)
	handlers["/model_test"] = http.Handler(lt)
	return handlers
}
