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

// Package filelock implements the reference-counted per-(user,filename)
// readers/writer lock registry: concurrent downloads of the same file are
// permitted, but an upload or delete serializes against all of them. Entries
// are created lazily on first Acquire and garbage-collected once their
// reference count returns to zero.
package filelock

// Registry hands out readers/writer locks keyed by user and filename.
type Registry interface {
	// Acquire finds or creates the entry for (user,name), increments its
	// reference count, locks it for writing (write) or reading, and returns
	// a handle on which the caller must later call Release exactly once.
	Acquire(user, name string, write bool) Handle

	// Release decrements the entry's reference count, unlocking it first;
	// if the count reaches zero the entry is removed from the registry.
	// Must be called exactly once per Acquire, regardless of outcome.
	Release(h Handle)

	// Len reports the number of live entries, for tests and metrics.
	Len() int
}

// Handle is the lock acquired for one (user,filename) pair. Acquire already
// locks it (read or write, per the write flag given to Acquire); Release
// unlocks and, if it was the last reference, frees the entry.
type Handle interface {
	User() string
	Name() string
}

// New returns an empty Registry.
func New() Registry {
	return newRegistry()
}
