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

// Package server wires the connection listener to the reader, worker and
// sender stages of the storage pipeline.
package server

import (
	"context"
	"net"

	"github.com/nabbar/filestored/duration"
	"github.com/nabbar/filestored/file/perm"
	"github.com/nabbar/filestored/internal/quota"
	"github.com/nabbar/filestored/logger"
)

// Config sizes every pool and bounds of the pipeline.
type Config struct {
	// ListenAddr is the TCP address to accept connections on, e.g. ":9000".
	ListenAddr string

	// MetricsAddr serves Prometheus metrics at /metrics when non-blank.
	MetricsAddr string

	// StorageDir roots every user's on-disk directory.
	StorageDir string
	DirPerm    perm.Perm
	FilePerm   perm.Perm

	// DefaultQuota is assigned to a user at SIGNUP.
	DefaultQuota quota.Size

	// ReaderPoolSize bounds how many connections are serviced concurrently.
	ReaderPoolSize int64
	WorkerPoolSize int
	SenderPoolSize int

	// TaskQueueCap/ResultQueueCap bound the queues between stages.
	TaskQueueCap   int64
	ResultQueueCap int64

	// ShutdownGrace bounds how long Serve waits, once cancelled, for open
	// connections to finish on their own before force-closing them. A
	// non-positive value waits with no bound.
	ShutdownGrace duration.Duration
}

// Server runs the listener and pipeline until its context is cancelled.
type Server interface {
	// Serve blocks accepting and servicing connections until ctx is
	// cancelled or the listener fails, then drains the pipeline in order
	// (stop accepting, drain task queue, drain result queue) before
	// returning.
	Serve(ctx context.Context) error

	// Addr blocks until the listener is bound and returns its address.
	Addr() net.Addr
}

// New builds a Server from cfg, logging through log.
func New(cfg Config, log logger.Logger) Server {
	return newServer(cfg, log)
}
