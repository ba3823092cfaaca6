package client

import (
	"net"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/twitter/modelcheck/common/endpoints"
	mcerror "github.com/twitter/modelcheck/common/errors"
	"github.com/twitter/modelcheck/fake"
)

type serveFakeCmd struct {
	addr string
}

func (c *serveFakeCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "serve_fake",
		Short: "serve an in-memory model service, REST and gRPC on one port",
	}
	r.Flags().StringVar(&c.addr, "addr", "localhost:8083", "address to listen on")
	return r
}

func (c *serveFakeCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	ln, err := net.Listen("tcp", c.addr)
	if err != nil {
		return mcerror.NewError(errors.Wrapf(err, "listening on %s", c.addr), mcerror.ConfigFailureExitCode)
	}
	s := fake.NewServer(endpoints.MakeStatsReceiver("fake"))
	return s.ServeSinglePort(ln)
}
