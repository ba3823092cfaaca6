// Package client is the modelcl command line: single scenario runs, the load
// tester and the fake model service.
package client

import (
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/net/context"
	"google.golang.org/grpc/metadata"

	"github.com/twitter/modelcheck/check"
	"github.com/twitter/modelcheck/common/dialer"
	mcerror "github.com/twitter/modelcheck/common/errors"
	"github.com/twitter/modelcheck/common/stats"
	"github.com/twitter/modelcheck/config/modelcheckconfig"
	"github.com/twitter/modelcheck/modelapi"
	"github.com/twitter/modelcheck/scenario"
)

// Model API Client interface that includes CLI handling
type CLIClient interface {
	Exec() error
}

// Implements CLIClient
type simpleCLIClient struct {
	rootCmd  *cobra.Command
	registry *scenario.Registry
	out      io.Writer

	// populated by persistent flags
	configPath string
	envFiles   []string
	logLevel   string
	apiHost    string
	grpcAddr   string
	fixture    string

	cfg modelcheckconfig.Config
}

func NewSimpleCLIClient(registry *scenario.Registry, out io.Writer) (CLIClient, error) {
	c := &simpleCLIClient{registry: registry, out: out}

	c.rootCmd = &cobra.Command{
		Use:               "modelcl",
		Short:             "modelcl runs integration and load scenarios against the model service",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.loadConfig,
		Run:               func(*cobra.Command, []string) {},
	}
	flags := c.rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "YAML config file, CFG_<KEY> environment variables override it")
	flags.StringSliceVar(&c.envFiles, "env_file", nil, "dotenv files with CFG_<KEY> lines, applied after --config")
	flags.StringVar(&c.logLevel, "log_level", "", "Log everything at this level and above (error|info|debug)")
	flags.StringVar(&c.apiHost, "api_host", "", "model service REST base URL")
	flags.StringVar(&c.grpcAddr, "grpc_addr", "", "model service gRPC host:port")
	flags.StringVar(&c.fixture, "fixture", "", "model artifact to upload, defaults to $"+
		modelcheckconfig.TestFolderEnv+"/"+modelcheckconfig.FixtureRelPath)

	c.addCmd(&runScenarioCmd{})
	c.addCmd(&loadTestCmd{})
	c.addCmd(&serveFakeCmd{})

	return c, nil
}

func (c *simpleCLIClient) Exec() error {
	return c.rootCmd.Execute()
}

// SetArgs is for tests.
func (c *simpleCLIClient) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// Layers flags over the file and environment config, then validates once.
func (c *simpleCLIClient) loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := modelcheckconfig.Load(c.configPath, c.envFiles...)
	if err != nil {
		return mcerror.NewError(err, mcerror.ConfigFailureExitCode)
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.apiHost != "" {
		cfg.APIHost = c.apiHost
	}
	if c.grpcAddr != "" {
		cfg.GRPCAddr = c.grpcAddr
	}
	if c.fixture != "" {
		cfg.Fixture = c.fixture
	}
	if err := cfg.Validate(); err != nil {
		return mcerror.NewError(err, mcerror.ConfigFailureExitCode)
	}
	level, _ := log.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)
	log.Debugf("config:\n%s", cfg)
	c.cfg = cfg
	return nil
}

// makeEnv wires the REST and gRPC clients for the loaded config.
func (c *simpleCLIClient) makeEnv(report *check.Report, stat stats.StatsReceiver) (*scenario.Env, error) {
	fixture, err := c.cfg.ReadFixture()
	if err != nil {
		return nil, mcerror.NewError(err, mcerror.ConfigFailureExitCode)
	}

	httpClient := modelapi.MakePesterClient(c.cfg.RestTries)
	httpClient.Timeout = c.cfg.RequestTimeout
	connector := modelapi.MakeConnector(dialer.NewConstantResolver(c.cfg.GRPCAddr), c.cfg.DialTimeout, c.cfg.RequestTimeout)
	var header http.Header
	if c.cfg.OwnerID != "" {
		header = http.Header{}
		header.Set(modelapi.OwnerIDHeader, c.cfg.OwnerID)
		connector.Metadata = metadata.Pairs(modelapi.OwnerIDHeader, c.cfg.OwnerID)
	}
	rest := modelapi.NewRestClient(c.cfg.APIHost, httpClient, header)

	if c.cfg.ReadyTimeout > 0 {
		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = c.cfg.ReadyTimeout
		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.ReadyTimeout+time.Second)
		defer cancel()
		if err := rest.WaitForReady(ctx, b); err != nil {
			return nil, mcerror.NewError(err, mcerror.ConnectFailureExitCode)
		}
	}

	return &scenario.Env{
		Config:  c.cfg,
		Fixture: fixture,
		Rest:    rest,
		Grpc:    connector,
		Report:  report,
		Stats:   stat,
	}, nil
}

// checksResult turns a failed report into the checks failed exit code.
func checksResult(report *check.Report) error {
	if !report.Failed() {
		return nil
	}
	passes, fails := report.Totals()
	return mcerror.NewErrorf(mcerror.ChecksFailedExitCode, "%d of %d checks failed", fails, passes+fails)
}

func (c *simpleCLIClient) addCmd(cmd command) {
	cobraCmd := cmd.registerFlags()
	cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
		return cmd.run(c, innerCmd, args)
	}
	c.rootCmd.AddCommand(cobraCmd)
}

type command interface {
	registerFlags() *cobra.Command
	run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error
}
