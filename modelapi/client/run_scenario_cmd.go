package client

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/net/context"

	"github.com/twitter/modelcheck/check"
	mcerror "github.com/twitter/modelcheck/common/errors"
	"github.com/twitter/modelcheck/common/stats"
	"github.com/twitter/modelcheck/scenario"
)

type runScenarioCmd struct {
	printStats bool
}

func (c *runScenarioCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "run_scenario [name]",
		Short: "run one iteration of a scenario (default " + scenario.UpdateModelName + ")",
		Args:  cobra.MaximumNArgs(1),
	}
	r.Flags().BoolVar(&c.printStats, "print_stats", false, "print the rendered latency stats after the summary")
	return r
}

func (c *runScenarioCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	name := scenario.UpdateModelName
	if len(args) > 0 {
		name = args[0]
	}
	sc, err := cl.registry.Get(name)
	if err != nil {
		return mcerror.NewError(err, mcerror.ConfigFailureExitCode)
	}

	stat := stats.NewFinagleStatsReceiver().Precision(time.Millisecond)
	report := check.NewReport(stat)
	env, err := cl.makeEnv(report, stat)
	if err != nil {
		return err
	}

	log.Infof("running %s against %s / %s", name, cl.cfg.APIHost, cl.cfg.GRPCAddr)
	res, err := sc.Run(context.Background(), env)
	if err != nil {
		return err
	}
	fmt.Fprint(cl.out, report.Summary())
	if c.printStats {
		fmt.Fprintf(cl.out, "%s\n", stat.Render(true, false))
	}
	log.Infof("%s finished in %s: %d passed, %d failed", res.Identity.ID, res.Duration, res.Passes, res.Fails)
	return checksResult(report)
}
