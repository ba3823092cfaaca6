/*
The loadtest package repeats a registered scenario against the model service from a pool of
virtual users (VUs). Each VU runs iterations back to back, every iteration uses its own identity
and its own gRPC channel. A test ends when the iteration budget is spent, the duration elapses or
a kill is requested. An optional rate caps iteration starts per second across all VUs.

Per step and per iteration latencies go to the stats receiver. When a test finishes one line with
the test arguments and the rendered stats is appended to a CSV file (its location is logged when
the test runs).

The methods in http_api.go implement the http endpoints:

(GET) /model_test - returns the status (waiting to start, running, finished)

(GET) /model_test?action=start&scenario=update_model&vus=..&iterations=..&duration=..&rate=.. - starts a
load test. Like the other test endpoints GET is used so it can be triggered with a bare curl.

(GET) /model_test/kill - kills the current running test

(GET) /model_test/stream - websocket upgrade, every recorded check is pushed as a JSON message
*/
package loadtest
