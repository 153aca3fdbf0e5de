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

package filelock

import (
	"fmt"
	"sync"
)

type entry struct {
	lock sync.RWMutex
	refs int
}

type registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func newRegistry() *registry {
	return &registry{entries: make(map[string]*entry)}
}

func key(user, name string) string {
	return user + "/" + fmt.Sprintf("%q", name)
}

type handle struct {
	user  string
	name  string
	write bool
	e     *entry
}

func (h *handle) User() string { return h.user }
func (h *handle) Name() string { return h.name }

func (r *registry) Acquire(user, name string, write bool) Handle {
	k := key(user, name)

	r.mu.Lock()
	e, ok := r.entries[k]
	if !ok {
		e = &entry{}
		r.entries[k] = e
	}
	e.refs++
	r.mu.Unlock()

	if write {
		e.lock.Lock()
	} else {
		e.lock.RLock()
	}

	return &handle{user: user, name: name, write: write, e: e}
}

func (r *registry) Release(h Handle) {
	hh, ok := h.(*handle)
	if !ok {
		return
	}

	if hh.write {
		hh.e.lock.Unlock()
	} else {
		hh.e.lock.RUnlock()
	}

	k := key(hh.user, hh.name)

	r.mu.Lock()
	defer r.mu.Unlock()

	hh.e.refs--
	if hh.e.refs <= 0 {
		delete(r.entries, k)
	}
}

func (r *registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
