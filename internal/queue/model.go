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

package queue

import (
	"container/list"
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

type fifo struct {
	mu       sync.Mutex
	cond     sync.Cond
	items    *list.List
	shutdown bool
	sem      *semaphore.Weighted
}

func newQueue(capacity int64) *fifo {
	q := &fifo{items: list.New()}
	q.cond = sync.Cond{L: &q.mu}
	if capacity > 0 {
		q.sem = semaphore.NewWeighted(capacity)
	}
	return q
}

func (q *fifo) Offer(item interface{}) bool {
	if q.sem != nil {
		if err := q.sem.Acquire(context.Background(), 1); err != nil {
			return false
		}
	}

	q.mu.Lock()
	if q.shutdown {
		q.mu.Unlock()
		if q.sem != nil {
			q.sem.Release(1)
		}
		return false
	}
	q.items.PushBack(item)
	q.mu.Unlock()

	q.cond.Signal()
	return true
}

func (q *fifo) Take(ctx context.Context) (interface{}, bool) {
	// unblock a Cond.Wait when ctx is cancelled by nudging every waiter;
	// the waiter re-checks ctx.Err() on wakeup.
	done := make(chan struct{})
	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				q.cond.Broadcast()
			case <-done:
			}
		}()
		defer close(done)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if e := q.items.Front(); e != nil {
			q.items.Remove(e)
			if q.sem != nil {
				q.sem.Release(1)
			}
			return e.Value, true
		}
		if q.shutdown {
			return nil, false
		}
		if ctx != nil && ctx.Err() != nil {
			return nil, false
		}
		q.cond.Wait()
	}
}

func (q *fifo) Shutdown() {
	q.mu.Lock()
	q.shutdown = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

func (q *fifo) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}
