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

// Package registry holds the process-wide mapping from username to user
// record: quota, used bytes, file catalog, and the per-user mutex guarding
// all three. Membership changes (signup) are rare compared to per-user
// operations, so registry-wide membership uses a lock-free map while every
// user carries its own mutex.
package registry

import "github.com/nabbar/filestored/internal/quota"

// File is one catalog entry: a filename and its size on disk.
type File struct {
	Name string
	Size quota.Size
}

// User is a single account's mutable state. Callers must hold the handle
// returned by Lock for the duration of any read or write to Quota, Used or
// Catalog.
type User interface {
	Name() string

	// Lock acquires the per-user mutex and returns an unlock func; callers
	// must call it exactly once. Used bytes, quota and the catalog may only
	// be read or mutated while held.
	Lock() (unlock func())

	Quota() quota.Size
	Used() quota.Size

	// Catalog returns a snapshot copy of the current file list. Safe to
	// call only while Lock is held.
	Catalog() []File

	// Find returns the catalog entry for name, if any. Safe to call only
	// while Lock is held.
	Find(name string) (File, bool)

	// Put inserts or replaces the catalog entry for f.Name and adjusts
	// Used accordingly. Safe to call only while Lock is held.
	Put(f File)

	// Remove deletes the catalog entry for name, if present, and adjusts
	// Used accordingly. Reports whether an entry was removed. Safe to call
	// only while Lock is held.
	Remove(name string) bool
}

// Registry is the process-wide username -> User mapping.
type Registry interface {
	// Create inserts a new user with the given quota if the username is
	// not already taken. ok is false if the user already existed.
	Create(username string, quota quota.Size) (u User, ok bool)

	// Find looks up an existing user.
	Find(username string) (u User, ok bool)

	// Len reports the number of registered users, for tests and metrics.
	Len() int
}

// New returns an empty Registry.
func New() Registry {
	return newRegistry()
}
