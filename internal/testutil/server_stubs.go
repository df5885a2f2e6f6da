package testutil

import (
	"context"
	"net/http"
	"sync"

	"mlb-affiliates-service/internal/poller"
)

// StubPoller implements the server's Poller for tests.
type StubPoller struct {
	mu         sync.Mutex
	StartCalls int
	StopCalls  int
	StartErr   error
	Err        error
	StatusVal  poller.Status
}

func (p *StubPoller) Start(ctx context.Context) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StartCalls++
	return p.StartErr
}

func (p *StubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) Status() poller.Status {
	return p.StatusVal
}

// Counts returns the start and stop call counts.
func (p *StubPoller) Counts() (start, stop int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.StartCalls, p.StopCalls
}

// StubHTTPServer implements the server's httpServer for tests. ListenAndServe
// returns ListenErr, or blocks until Shutdown when Block is set.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Block       bool

	mu            sync.Mutex
	listenCalls   int
	shutdownCalls int
	closed        chan struct{}
	closeOnce     sync.Once
}

func (s *StubHTTPServer) init() {
	s.mu.Lock()
	if s.closed == nil {
		s.closed = make(chan struct{})
	}
	s.mu.Unlock()
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.init()
	s.mu.Lock()
	s.listenCalls++
	s.mu.Unlock()
	if s.Block {
		<-s.closed
		return http.ErrServerClosed
	}
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.init()
	s.mu.Lock()
	s.shutdownCalls++
	s.mu.Unlock()
	s.closeOnce.Do(func() { close(s.closed) })
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// Counts returns the listen and shutdown call counts.
func (s *StubHTTPServer) Counts() (listen, shutdown int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenCalls, s.shutdownCalls
}
