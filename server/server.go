package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/yext/hellod/common"
	"github.com/yext/hellod/worker"
)

// ErrDrainTimeout is returned by Serve when in-flight requests outlast the configured drain timeout.
var ErrDrainTimeout = errors.New("timed out waiting for in-flight requests to complete")

// Config defines how a Server binds and shuts down
type Config struct {
	// Address to bind, in host:port form
	Address string
	// Maximum time to wait for in-flight requests once shutdown begins.
	// Zero waits indefinitely.
	DrainTimeout time.Duration
}

// Server owns a listening socket and serves a handler on it until shut down.
type Server struct {
	config   Config
	logger   common.Logger
	http     *http.Server
	listener net.Listener

	mtx   sync.Mutex
	hooks []func() error
}

// New creates a Server for handler. No socket is bound until Listen is called.
func New(config Config, handler http.Handler, logger common.Logger) *Server {
	logger = common.MaskLogger(logger)
	httpServer := &http.Server{
		Handler: handler,
	}
	if l, ok := logger.(*log.Logger); ok {
		httpServer.ErrorLog = l
	}
	return &Server{
		config: config,
		logger: logger,
		http:   httpServer,
	}
}

// Listen binds the listening socket and returns the resolved local address.
func (s *Server) Listen() (net.Addr, error) {
	if s.listener != nil {
		return nil, errors.Errorf("already listening on %v", s.listener.Addr())
	}
	network, err := listenNetwork(s.config.Address)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	l, err := net.Listen(network, s.config.Address)
	if err != nil {
		return nil, errors.Wrapf(err, "could not bind %v", s.config.Address)
	}
	s.listener = l
	s.logger.Printf("bound %v (%v)\n", l.Addr(), network)
	return l.Addr(), nil
}

// Addr returns the bound address, or nil if the server is not listening.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// OnShutdown registers a hook to be run once in-flight requests have drained.
// Hooks run concurrently.
func (s *Server) OnShutdown(hook func() error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Serve accepts connections until shutdown is closed, then stops accepting,
// waits for in-flight requests and runs shutdown hooks before returning.
// A nil shutdown channel never fires.
func (s *Server) Serve(shutdown <-chan struct{}) error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}

	served := make(chan error, 1)
	go func() {
		served <- s.http.Serve(s.listener)
	}()

	select {
	case err := <-served:
		return errors.Wrap(err, "server stopped unexpectedly")
	case <-shutdown:
	}

	s.logger.Printf("shutdown requested, draining in-flight requests\n")
	drainErr := s.drain()
	if err := <-served; err != nil && err != http.ErrServerClosed && drainErr == nil {
		drainErr = errors.WithStack(err)
	}
	hookErr := s.runHooks()

	if drainErr != nil {
		return drainErr
	}
	if hookErr != nil {
		return hookErr
	}
	s.logger.Printf("shutdown complete\n")
	return nil
}

func (s *Server) drain() error {
	ctx := context.Background()
	if s.config.DrainTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.DrainTimeout)
		defer cancel()
	}

	err := s.http.Shutdown(ctx)
	if err == context.DeadlineExceeded {
		s.logger.Printf("drain timeout of %v exceeded, closing remaining connections\n", s.config.DrainTimeout)
		if closeErr := s.http.Close(); closeErr != nil {
			s.logger.Printf("error closing connections: %v\n", closeErr)
		}
		return errors.WithStack(ErrDrainTimeout)
	}
	return errors.Wrap(err, "draining")
}

func (s *Server) runHooks() error {
	s.mtx.Lock()
	hooks := append([]func() error(nil), s.hooks...)
	s.mtx.Unlock()
	if len(hooks) == 0 {
		return nil
	}

	pool := worker.NewPool(len(hooks))
	pool.Start()
	for _, hook := range hooks {
		if err := pool.Enqueue(hook); err != nil {
			s.logger.Printf("could not run shutdown hook: %v\n", err)
		}
	}
	pool.Stop()
	<-pool.Complete()

	errs := pool.Errors()
	for _, err := range errs {
		s.logger.Printf("shutdown hook failed: %v\n", err)
	}
	if len(errs) > 0 {
		return errors.Wrapf(errs[0], "%d shutdown hook(s) failed", len(errs))
	}
	return nil
}

// listenNetwork picks the network for address, so that an IPv4 literal such as
// 0.0.0.0 binds IPv4 only and reports itself as such.
func listenNetwork(address string) (string, error) {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return "", errors.Wrapf(err, "invalid address %q", address)
	}
	ip := net.ParseIP(host)
	switch {
	case ip == nil:
		return "tcp", nil
	case ip.To4() != nil:
		return "tcp4", nil
	default:
		return "tcp6", nil
	}
}
