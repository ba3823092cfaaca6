package scenario

import (
	"golang.org/x/net/context"

	"github.com/twitter/modelcheck/check"
	"github.com/twitter/modelcheck/common/stats"
	"github.com/twitter/modelcheck/config/modelcheckconfig"
	"github.com/twitter/modelcheck/modelapi"
)

// RestAPI is the REST side of the model service used by scenarios.
type RestAPI interface {
	CreateModelMultipart(ctx context.Context, form modelapi.CreateModelForm) (*modelapi.RestResponse, error)
}

// Dialer opens a fresh gRPC channel for one run.
type Dialer interface {
	Dial(ctx context.Context) (*modelapi.GrpcClient, error)
}

// Env is built once per process and shared read-only by every run.
type Env struct {
	Config  modelcheckconfig.Config
	Fixture modelcheckconfig.FixtureFile
	Rest    RestAPI
	Grpc    Dialer
	Report  *check.Report
	Stats   stats.StatsReceiver

	// Defaults to NewIdentity.
	Identities func() Identity
}

func (e *Env) identity() Identity {
	if e.Identities != nil {
		return e.Identities()
	}
	return NewIdentity()
}

func (e *Env) stats() stats.StatsReceiver {
	if e.Stats == nil {
		return stats.NilStatsReceiver()
	}
	return e.Stats
}
