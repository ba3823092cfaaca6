package modelapi

import (
	"time"

	field_mask "google.golang.org/genproto/protobuf/field_mask"
	"golang.org/x/net/context"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/twitter/modelcheck/modelapi/modelpb"
)

// GrpcResponse is the outcome of one unary call. A failed call is reported
// through Code and Message, Err keeps the original error for logging.
type GrpcResponse struct {
	Code    codes.Code
	Message string
	Err     error
}

func newGrpcResponse(err error) GrpcResponse {
	st, _ := status.FromError(err)
	return GrpcResponse{Code: st.Code(), Message: st.Message(), Err: err}
}

func (r GrpcResponse) OK() bool {
	return r.Code == codes.OK
}

type UpdateModelResult struct {
	GrpcResponse
	Response *modelpb.UpdateModelResponse
}

// Model returns the updated model, nil when the call failed.
func (r *UpdateModelResult) Model() *modelpb.Model {
	if r == nil {
		return nil
	}
	return r.Response.GetModel()
}

type DeleteModelResult struct {
	GrpcResponse
	Response *modelpb.DeleteModelResponse
}

// GrpcClient wraps one open channel. It must be closed by its owner.
type GrpcClient struct {
	conn        ClientConnPtr
	service     modelpb.ModelServiceClient
	callTimeout time.Duration
	md          metadata.MD
}

// NewGrpcClient returns a client on conn. A callTimeout <= 0 leaves deadlines
// to the caller's context.
func NewGrpcClient(conn ClientConnPtr, service modelpb.ModelServiceClient, callTimeout time.Duration) *GrpcClient {
	return &GrpcClient{conn: conn, service: service, callTimeout: callTimeout}
}

// WithMetadata sends md with every call.
func (c *GrpcClient) WithMetadata(md metadata.MD) *GrpcClient {
	c.md = md
	return c
}

func (c *GrpcClient) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	for k, vs := range c.md {
		for _, v := range vs {
			ctx = metadata.AppendToOutgoingContext(ctx, k, v)
		}
	}
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.callTimeout)
}

// UpdateModel sends model with an update mask of paths.
func (c *GrpcClient) UpdateModel(ctx context.Context, model *modelpb.Model, paths ...string) *UpdateModelResult {
	ctx, cancel := c.callContext(ctx)
	defer cancel()
	resp, err := c.service.UpdateModel(ctx, &modelpb.UpdateModelRequest{
		Model:      model,
		UpdateMask: &field_mask.FieldMask{Paths: paths},
	})
	return &UpdateModelResult{GrpcResponse: newGrpcResponse(err), Response: resp}
}

func (c *GrpcClient) DeleteModel(ctx context.Context, name string) *DeleteModelResult {
	ctx, cancel := c.callContext(ctx)
	defer cancel()
	resp, err := c.service.DeleteModel(ctx, &modelpb.DeleteModelRequest{Name: name})
	return &DeleteModelResult{GrpcResponse: newGrpcResponse(err), Response: resp}
}

func (c *GrpcClient) Close() error {
	return c.conn.Close()
}
