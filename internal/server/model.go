/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package server

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/nabbar/filestored/internal/filelock"
	"github.com/nabbar/filestored/internal/queue"
	"github.com/nabbar/filestored/internal/registry"
	"github.com/nabbar/filestored/internal/storage"
	"github.com/nabbar/filestored/logger"
)

type srv struct {
	cfg Config
	log logger.Logger

	users registry.Registry
	locks filelock.Registry
	store storage.Store

	tasks   queue.Queue
	results queue.Queue

	connSem   *semaphore.Weighted
	sessionID atomic.Uint64

	connWG  sync.WaitGroup
	connsMu sync.Mutex
	conns   map[net.Conn]struct{}

	reg *prometheus.Registry
	met *metrics

	ready chan struct{}
	addr  net.Addr
}

func newServer(cfg Config, log logger.Logger) *srv {
	readers := cfg.ReaderPoolSize
	if readers <= 0 {
		readers = 1
	}

	s := &srv{
		cfg:     cfg,
		log:     log,
		users:   registry.New(),
		locks:   filelock.New(),
		store:   storage.New(cfg.StorageDir, cfg.DirPerm, cfg.FilePerm),
		tasks:   queue.NewBounded(cfg.TaskQueueCap),
		results: queue.NewBounded(cfg.ResultQueueCap),
		connSem: semaphore.NewWeighted(readers),
		conns:   make(map[net.Conn]struct{}),
		ready:   make(chan struct{}),
		reg:     prometheus.NewRegistry(),
	}
	s.met = newMetrics(s.reg, s)
	return s
}

// Addr blocks until the listener is bound and returns its address. Useful
// for tests that bind to an ephemeral port.
func (s *srv) Addr() net.Addr {
	<-s.ready
	return s.addr
}

func (s *srv) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		close(s.ready)
		return ErrorListen.Error(err)
	}

	s.addr = ln.Addr()
	close(s.ready)

	s.log.Info("listening", logger.Fields{"addr": s.addr.String()})

	// Workers and senders run on a context of their own, not ctx: after
	// ctx is cancelled they keep draining their queues until the shutdown
	// sequence below shuts those queues down.
	workerGrp, wctx := errgroup.WithContext(context.Background())
	workers := s.cfg.WorkerPoolSize
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		workerGrp.Go(func() error {
			s.workerLoop(wctx)
			return nil
		})
	}

	senderGrp, sctx := errgroup.WithContext(context.Background())
	senders := s.cfg.SenderPoolSize
	if senders <= 0 {
		senders = 1
	}
	for i := 0; i < senders; i++ {
		senderGrp.Go(func() error {
			s.senderLoop(sctx)
			return nil
		})
	}

	go func() {
		if err := serveMetrics(ctx, s.cfg.MetricsAddr, s.reg); err != nil {
			s.log.Warn("metrics server stopped", logger.Fields{"error": err.Error()})
		}
	}()

	acceptDone := make(chan struct{})
	go func() {
		defer close(acceptDone)
		s.acceptLoop(ctx, ln)
	}()

	<-ctx.Done()
	_ = ln.Close()
	<-acceptDone

	s.waitConnsWithGrace()

	// No more connections are being read, so no more tasks will be
	// offered: draining the task queue now is safe.
	s.tasks.Shutdown()

	// Workers exit once they observe the task queue shut down and
	// drained; once every worker has returned no more results will be
	// produced, so the result queue can be shut down behind it.
	_ = workerGrp.Wait()
	s.results.Shutdown()
	_ = senderGrp.Wait()

	return nil
}

// waitConnsWithGrace waits for every handleConn goroutine to return. A
// client idling on an open connection with no pending command blocks
// conn.Read forever, so past ShutdownGrace the remaining connections are
// force-closed instead of left to hang Serve. A non-positive grace means
// wait with no bound.
func (s *srv) waitConnsWithGrace() {
	done := make(chan struct{})
	go func() {
		s.connWG.Wait()
		close(done)
	}()

	grace := s.cfg.ShutdownGrace.Time()
	if grace <= 0 {
		<-done
		return
	}

	select {
	case <-done:
	case <-time.After(grace):
		s.log.Warn("shutdown grace period elapsed, closing remaining connections", nil)
		s.closeOpenConns()
		<-done
	}
}

func (s *srv) trackConn(conn net.Conn) {
	s.connsMu.Lock()
	s.conns[conn] = struct{}{}
	s.connsMu.Unlock()
}

func (s *srv) untrackConn(conn net.Conn) {
	s.connsMu.Lock()
	delete(s.conns, conn)
	s.connsMu.Unlock()
}

// closeOpenConns force-closes every connection still being serviced,
// unblocking any handleConn goroutine parked in a conn.Read with no
// in-flight command.
func (s *srv) closeOpenConns() {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	for c := range s.conns {
		_ = c.Close()
	}
}

func (s *srv) acceptLoop(ctx context.Context, ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.log.Warn("accept failed", logger.Fields{"error": err.Error()})
			continue
		}

		if err := s.connSem.Acquire(ctx, 1); err != nil {
			_ = conn.Close()
			return
		}

		s.connWG.Add(1)
		id := s.sessionID.Add(1)
		s.met.connections.Inc()
		s.trackConn(conn)
		go func() {
			defer s.connWG.Done()
			defer s.connSem.Release(1)
			defer s.met.connections.Dec()
			defer s.untrackConn(conn)
			s.handleConn(ctx, id, conn)
		}()
	}
}
