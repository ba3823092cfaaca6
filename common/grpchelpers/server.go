package grpchelpers

import (
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// NewServer returns a new grpc server just like grpc.NewServer(), but
// which automatically implements the grpc server reflection protocol and
// logs every unary call at debug level.
// See https://github.com/grpc/grpc/blob/master/doc/server-reflection.md
func NewServer(opt ...grpc.ServerOption) *grpc.Server {
	opt = append([]grpc.ServerOption{grpc.UnaryInterceptor(LoggingUnaryInterceptor)}, opt...)
	s := grpc.NewServer(opt...)
	reflection.Register(s)
	return s
}

// LoggingUnaryInterceptor logs method, status code and duration of each call.
func LoggingUnaryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	log.WithFields(log.Fields{
		"method":   info.FullMethod,
		"code":     status.Code(err).String(),
		"duration": time.Since(start),
	}).Debug("grpc call")
	return resp, err
}
