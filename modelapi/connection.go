package modelapi

/*
Interfaces needed to allow testing to mock out grpc connection behavior
*/
import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/twitter/modelcheck/common/dialer"
	"github.com/twitter/modelcheck/modelapi/modelpb"
)

type ClientConnPtr interface {
	Close() error
}

type GRPCDialer interface {
	DialContext(ctx context.Context, target string, opts ...grpc.DialOption) (ClientConnPtr, error)
}

type realGRPCDialer struct{}

func (rd *realGRPCDialer) DialContext(ctx context.Context, target string, opts ...grpc.DialOption) (ClientConnPtr, error) {
	return grpc.DialContext(ctx, target, opts...)
}

func MakeRealGRPCDialer() *realGRPCDialer {
	return &realGRPCDialer{}
}

func MakeModelServicepbClient(cc ClientConnPtr) modelpb.ModelServiceClient {
	return modelpb.NewModelServiceClient(cc.(*grpc.ClientConn))
}

// Connector opens one gRPC channel per call. Channels are never shared across
// scenario runs.
type Connector struct {
	Resolver    dialer.Resolver
	DialTimeout time.Duration
	CallTimeout time.Duration
	// Sent with every call on dialed channels, may be nil.
	Metadata metadata.MD

	grpcDialer        GRPCDialer
	modelServiceMaker func(cc ClientConnPtr) modelpb.ModelServiceClient
}

// MakeConnector returns a Connector using the production grpc dialer.
func MakeConnector(r dialer.Resolver, dialTimeout, callTimeout time.Duration) *Connector {
	return &Connector{
		Resolver:          r,
		DialTimeout:       dialTimeout,
		CallTimeout:       callTimeout,
		grpcDialer:        MakeRealGRPCDialer(),
		modelServiceMaker: MakeModelServicepbClient,
	}
}

// setters use builder pattern (y.Set(x) returns y) for more succinct construction
func (c *Connector) SetGrpcDialer(d GRPCDialer) *Connector {
	c.grpcDialer = d
	return c
}
func (c *Connector) SetModelServicepbMaker(maker func(cc ClientConnPtr) modelpb.ModelServiceClient) *Connector {
	c.modelServiceMaker = maker
	return c
}

// Dial opens a plaintext channel, blocking until it is ready or DialTimeout elapses.
func (c *Connector) Dial(ctx context.Context) (*GrpcClient, error) {
	target, err := c.Resolver.Resolve()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to resolve model service address")
	}
	dialCtx := ctx
	if c.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.DialTimeout)
		defer cancel()
	}
	cc, err := c.grpcDialer.DialContext(dialCtx, target, grpc.WithInsecure(), grpc.WithBlock())
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to dial model service %s", target)
	}
	log.Debugf("connected to model service %s", target)
	return NewGrpcClient(cc, c.modelServiceMaker(cc), c.CallTimeout).WithMetadata(c.Metadata), nil
}
