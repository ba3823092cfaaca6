package client

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/net/context"

	"github.com/twitter/modelcheck/check"
	"github.com/twitter/modelcheck/common/endpoints"
	"github.com/twitter/modelcheck/perftests/modelservice/loadtest"
	"github.com/twitter/modelcheck/scenario"
)

type loadTestCmd struct {
	args          loadtest.Args
	startAsServer bool
	addr          string
}

func (c *loadTestCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "load_test",
		Short: "repeat a scenario from concurrent virtual users",
	}
	r.Flags().StringVar(&c.args.Scenario, "scenario", scenario.UpdateModelName, "scenario to run")
	r.Flags().IntVar(&c.args.VUs, "vus", 1, "number of concurrent virtual users")
	r.Flags().IntVar(&c.args.Iterations, "iterations", 1, "total iterations across all VUs, 0 to run for --duration")
	r.Flags().DurationVar(&c.args.Duration, "duration", 0, "stop starting iterations after this long, 0 for no limit")
	r.Flags().Float64Var(&c.args.Rate, "rate", 0, "max iteration starts per second across all VUs, 0 for no limit")
	r.Flags().StringVar(&c.args.StatsFile, "stats_file", "", "CSV file the stats line is appended to")
	r.Flags().BoolVar(&c.startAsServer, "start_as_http_server", false,
		"start an http service accepting /model_test requests instead of running once")
	r.Flags().StringVar(&c.addr, "addr", "localhost:9091", "http service address with --start_as_http_server")
	return r
}

func (c *loadTestCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	c.args.LogLevel = cl.cfg.LogLevel
	stat := endpoints.MakeStatsReceiver("modelcl")
	report := check.NewReport(stat)
	env, err := cl.makeEnv(report, stat)
	if err != nil {
		return err
	}
	lt := loadtest.MakeScenarioLoadTester(&c.args, env, cl.registry)
	defer lt.Close()

	if c.startAsServer { // start as http service, waiting for run requests
		admin := endpoints.NewAdminServer(c.addr, lt.StatsReceiver())
		for path, h := range lt.GetEndpointHandlers() {
			admin.Handle(path, h)
		}
		err := admin.Serve()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}

	// The first interrupt stops new iterations, in flight ones finish and clean up.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		if _, ok := <-sigs; ok {
			log.Warn("interrupted, waiting for running iterations")
			lt.KillTest()
		}
	}()

	start := time.Now()
	if err := lt.RunLoadTest(context.Background()); err != nil {
		return err
	}
	status := lt.GetStatus()
	fmt.Fprint(cl.out, report.Summary())
	fmt.Fprintf(cl.out, "iterations.................: %d in %s, %d with failed checks\n",
		status.Completed, time.Since(start).Round(time.Millisecond), status.Failed)
	log.Infof("stats written to %s", lt.StatsFile())
	return checksResult(report)
}
