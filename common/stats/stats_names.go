package stats

/*
Metric names collected by modelcheck. Scenario instruments live under the
scenario scope ("scenario/<name>/..."), check counters under "checks".
*/

const (
	/************************* Check metrics ********************************/
	/*
		number of checks whose predicate held
	*/
	CheckPassCounter = "passes"

	/*
		number of checks whose predicate failed or panicked
	*/
	CheckFailCounter = "fails"

	/************************* Scenario metrics *****************************/
	/*
		time spent in the REST multipart create call, including the upload
	*/
	ScenarioCreateLatency_ms = "createLatency_ms"

	/*
		time spent in the gRPC UpdateModel call
	*/
	ScenarioUpdateLatency_ms = "updateLatency_ms"

	/*
		time spent in the gRPC DeleteModel cleanup call
	*/
	ScenarioDeleteLatency_ms = "deleteLatency_ms"

	/*
		wall time of one full scenario iteration
	*/
	ScenarioIterationLatency_ms = "iterationLatency_ms"

	/*
		number of scenario iterations started
	*/
	ScenarioIterationCounter = "iterationCounter"

	/*
		number of iterations in which at least one check failed
	*/
	ScenarioFailedIterationCounter = "failedIterationCounter"

	/*
		number of transport errors (REST or gRPC call did not complete)
	*/
	ScenarioTransportErrCounter = "transportErrCounter"

	/************************* Load tester metrics **************************/
	/*
		number of virtual users currently running an iteration
	*/
	LoadTestActiveVUsGauge = "activeVUsGauge"

	/*
		number of websocket subscribers to the result stream
	*/
	LoadTestStreamSubscribersGauge = "streamSubscribersGauge"

	/************************* Fake model service metrics *******************/
	/*
		number of models held by the in-memory store
	*/
	FakeModelCountGauge = "modelCountGauge"

	/*
		number of multipart create requests served, by any outcome
	*/
	FakeCreateRequestCounter = "createRequestCounter"

	/*
		number of UpdateModel requests served
	*/
	FakeUpdateRequestCounter = "updateRequestCounter"

	/*
		number of DeleteModel requests served
	*/
	FakeDeleteRequestCounter = "deleteRequestCounter"
)
