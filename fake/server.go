package fake

import (
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"google.golang.org/grpc"

	"github.com/twitter/modelcheck/common/endpoints"
	"github.com/twitter/modelcheck/common/grpchelpers"
	"github.com/twitter/modelcheck/common/stats"
	"github.com/twitter/modelcheck/modelapi/modelpb"
)

// Server runs the fake REST and gRPC surfaces over one store.
type Server struct {
	Store *Store
	Stats stats.StatsReceiver

	grpcServer *grpc.Server
	rest       http.Handler
	admin      *endpoints.AdminServer

	mu        sync.Mutex
	listeners []net.Listener
	http      []*http.Server
}

func NewServer(stat stats.StatsReceiver) *Server {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	store := NewStore(stat)
	s := &Server{
		Store:      store,
		Stats:      stat,
		grpcServer: grpchelpers.NewServer(),
		rest:       NewRESTHandler(store, stat),
	}
	modelpb.RegisterModelServiceServer(s.grpcServer, NewModelService(store, stat))
	s.admin = endpoints.NewAdminServer("", stat)
	s.admin.Handle("/v1alpha/", s.rest)
	return s
}

// Handler routes gRPC requests (HTTP/2 with an application/grpc content type)
// to the gRPC server and everything else to REST and the admin endpoints.
// Cleartext HTTP/2 is accepted through h2c.
func (s *Server) Handler() http.Handler {
	mixed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ProtoMajor == 2 && strings.HasPrefix(r.Header.Get("Content-Type"), "application/grpc") {
			s.grpcServer.ServeHTTP(w, r)
			return
		}
		s.admin.ServeHTTP(w, r)
	})
	return h2c.NewHandler(mixed, &http2.Server{})
}

// ServeSinglePort serves both protocols on ln until Stop.
func (s *Server) ServeSinglePort(ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler()}
	s.track(ln, srv)
	log.Infof("fake model service serving REST and gRPC on %s", ln.Addr())
	return ignoreClosed(srv.Serve(ln))
}

// ServeREST serves REST and admin endpoints on ln until Stop.
func (s *Server) ServeREST(ln net.Listener) error {
	srv := &http.Server{Handler: s.admin}
	s.track(ln, srv)
	log.Infof("fake model service serving REST on %s", ln.Addr())
	return ignoreClosed(srv.Serve(ln))
}

// ServeGRPC serves gRPC on ln until Stop.
func (s *Server) ServeGRPC(ln net.Listener) error {
	s.track(ln, nil)
	log.Infof("fake model service serving gRPC on %s", ln.Addr())
	return ignoreClosed(s.grpcServer.Serve(ln))
}

func (s *Server) track(ln net.Listener, srv *http.Server) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, ln)
	if srv != nil {
		s.http = append(s.http, srv)
	}
}

func (s *Server) Stop() {
	s.grpcServer.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, srv := range s.http {
		srv.Close()
	}
	for _, ln := range s.listeners {
		ln.Close()
	}
}

func ignoreClosed(err error) error {
	if err == nil || err == http.ErrServerClosed || err == grpc.ErrServerStopped {
		return nil
	}
	if strings.Contains(err.Error(), "use of closed network connection") {
		return nil
	}
	return errors.Wrap(err, "fake model service")
}

// Local is a Server listening on loopback ports, REST and gRPC split.
type Local struct {
	*Server
	RESTURL  string
	GRPCAddr string
}

// StartLocal starts a Server on two ephemeral loopback ports.
func StartLocal(stat stats.StatsReceiver) (*Local, error) {
	restLn, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, errors.Wrap(err, "listening for REST")
	}
	grpcLn, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		restLn.Close()
		return nil, errors.Wrap(err, "listening for gRPC")
	}
	s := NewServer(stat)
	go func() {
		if err := s.ServeREST(restLn); err != nil {
			log.Errorf("REST: %v", err)
		}
	}()
	go func() {
		if err := s.ServeGRPC(grpcLn); err != nil {
			log.Errorf("gRPC: %v", err)
		}
	}()
	return &Local{Server: s, RESTURL: "http://" + restLn.Addr().String(), GRPCAddr: grpcLn.Addr().String()}, nil
}
