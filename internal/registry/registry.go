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

package registry

import (
	"sync/atomic"

	libatm "github.com/nabbar/filestored/atomic"
	"github.com/nabbar/filestored/internal/quota"
)

// users is a lock-free map, matching the "membership changes are rare"
// rationale (spec §4.2): signup is uncommon relative to per-user traffic,
// which is instead serialized by each user's own mutex.
type users struct {
	m     libatm.MapTyped[string, *user]
	count int64
}

func newRegistry() *users {
	return &users{m: libatm.NewMapTyped[string, *user]()}
}

func (r *users) Create(username string, q quota.Size) (User, bool) {
	u := &user{name: username, quota: q, catalog: make(map[string]quota.Size)}

	actual, loaded := r.m.LoadOrStore(username, u)
	if loaded {
		return actual, false
	}

	atomic.AddInt64(&r.count, 1)
	return u, true
}

func (r *users) Find(username string) (User, bool) {
	u, ok := r.m.Load(username)
	if !ok {
		return nil, false
	}
	return u, true
}

func (r *users) Len() int {
	return int(atomic.LoadInt64(&r.count))
}
