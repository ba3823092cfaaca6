// +build integration

package scenario

import (
	"flag"
	"testing"
	"time"

	"github.com/cenkalti/backoff"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/twitter/modelcheck/check"
	"github.com/twitter/modelcheck/common/dialer"
	"github.com/twitter/modelcheck/common/log/hooks"
	"github.com/twitter/modelcheck/config/modelcheckconfig"
	"github.com/twitter/modelcheck/modelapi"
)

var configFlag = flag.String("modelcheck_config", "", "YAML config of the live model service")

// Runs update_model against a live model service. Point it at one with
// CFG_API_HOST, CFG_GRPC_ADDR and TEST_FOLDER_ABS_PATH, or -modelcheck_config.
func TestUpdateModelLive(t *testing.T) {
	log.AddHook(hooks.NewContextHook())

	cfg, err := modelcheckconfig.Load(*configFlag)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	fixture, err := cfg.ReadFixture()
	if err != nil {
		t.Fatal(err)
	}

	httpClient := modelapi.MakePesterClient(cfg.RestTries)
	httpClient.Timeout = cfg.RequestTimeout
	rest := modelapi.NewRestClient(cfg.APIHost, httpClient, nil)
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = time.Minute
	if err := rest.WaitForReady(context.Background(), b); err != nil {
		t.Fatalf("model service is not ready: %v", err)
	}

	env := &Env{
		Config:  cfg,
		Fixture: fixture,
		Rest:    rest,
		Grpc:    modelapi.MakeConnector(dialer.NewConstantResolver(cfg.GRPCAddr), cfg.DialTimeout, cfg.RequestTimeout),
		Report:  check.NewReport(nil),
	}
	res, err := (&UpdateModelScenario{}).Run(context.Background(), env)
	if err != nil {
		t.Fatal(err)
	}
	log.Infof("\n%s", env.Report.Summary())
	if res.Failed() {
		t.Fatalf("%d checks failed", res.Fails)
	}
}
