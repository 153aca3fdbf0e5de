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
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nabbar/filestored/internal/task"
)

type metrics struct {
	connections      prometheus.Gauge
	commandsByKind   *prometheus.CounterVec
	errorsByKind     *prometheus.CounterVec
	bytesUploaded    prometheus.Counter
	bytesSent        prometheus.Counter
	taskQueueDepth   prometheus.GaugeFunc
	resultQueueDepth prometheus.GaugeFunc
}

func newMetrics(reg prometheus.Registerer, s *srv) *metrics {
	f := promauto.With(reg)

	return &metrics{
		connections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "filestored",
			Name:      "connections_active",
			Help:      "Number of connections currently being serviced.",
		}),
		commandsByKind: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "filestored",
			Name:      "commands_total",
			Help:      "Commands processed, by kind.",
		}, []string{"kind"}),
		errorsByKind: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "filestored",
			Name:      "command_errors_total",
			Help:      "Commands that completed with an ERR response, by kind.",
		}, []string{"kind"}),
		bytesUploaded: f.NewCounter(prometheus.CounterOpts{
			Namespace: "filestored",
			Name:      "bytes_uploaded_total",
			Help:      "Bytes committed via UPLOAD.",
		}),
		bytesSent: f.NewCounter(prometheus.CounterOpts{
			Namespace: "filestored",
			Name:      "bytes_sent_total",
			Help:      "Bytes written in DOWNLOAD responses.",
		}),
		taskQueueDepth: f.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "filestored",
			Name:      "task_queue_depth",
			Help:      "Items currently queued for a worker.",
		}, func() float64 { return float64(s.tasks.Len()) }),
		resultQueueDepth: f.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "filestored",
			Name:      "result_queue_depth",
			Help:      "Items currently queued for a sender.",
		}, func() float64 { return float64(s.results.Len()) }),
	}
}

func (m *metrics) observeResult(t *task.Task) {
	kind := t.Kind.String()
	m.commandsByKind.WithLabelValues(kind).Inc()
	if t.Out == nil {
		m.errorsByKind.WithLabelValues(kind).Inc()
		return
	}
	switch t.Kind {
	case task.Upload:
		m.bytesUploaded.Add(float64(t.Size))
	case task.Download:
		m.bytesSent.Add(float64(len(t.Out)))
	}
}

// serveMetrics runs a dedicated /metrics endpoint until ctx is cancelled.
// A blank addr disables it.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	hs := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- hs.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return hs.Close()
	case err := <-errCh:
		return err
	}
}
