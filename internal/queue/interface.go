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

// Package queue provides the bounded FIFO work queue shared by the listener,
// the connection-reader pool, the request-worker pool and the sender pool.
// It supports a blocking Take, an Offer that blocks only on a bounded
// queue, and a one-shot Shutdown that wakes every waiter; items queued
// before Shutdown are still handed out by Take.
package queue

import "context"

// Queue is a thread-safe FIFO of opaque work items.
type Queue interface {
	// Offer appends item and wakes one waiter. On an unbounded queue it
	// never blocks; on a bounded queue (see NewBounded) it blocks until
	// a capacity slot is free. Items offered after Shutdown are dropped
	// and Offer returns false.
	Offer(item interface{}) bool

	// Take blocks until an item is available or the queue is shut down
	// and drained, in which case it returns (nil, false). ctx cancellation
	// also unblocks Take, returning (nil, false).
	Take(ctx context.Context) (interface{}, bool)

	// Shutdown sets the shutting-down flag and wakes every waiter. Items
	// offered before Shutdown are still delivered by Take; Offer called
	// after Shutdown drops its item.
	Shutdown()

	// Len reports the number of items currently queued, for metrics.
	Len() int
}

// New returns a Queue with no capacity limit beyond what the optional
// semaphore-backed capacity imposes (see NewBounded).
func New() Queue {
	return newQueue(0)
}

// NewBounded returns a Queue whose Offer blocks (via a weighted semaphore)
// once capacity in-flight items have been accepted and not yet Taken. A
// capacity of 0 means unbounded, matching New().
func NewBounded(capacity int64) Queue {
	return newQueue(capacity)
}
