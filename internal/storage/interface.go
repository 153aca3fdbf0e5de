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

// Package storage lays out each user's directory under a root and performs
// the on-disk half of UPLOAD/DOWNLOAD/DELETE: crash-consistent temp-file
// staging with an atomic rename as the commit point (spec §4.5).
package storage

import (
	"io"

	"github.com/nabbar/filestored/file/perm"
)

// Store roots all per-user directories at one filesystem path.
type Store interface {
	// EnsureUser creates storage/<username>/ if missing. Best-effort: the
	// user record is created regardless of a filesystem error (spec §4.2).
	EnsureUser(username string) error

	// StageUpload creates a uniquely-named temporary file inside
	// storage/<username>/, writes exactly size bytes read from r into it,
	// and returns a handle the caller commits or discards. On a short read
	// or write error the temp file is unlinked and an error returned.
	StageUpload(username string, r io.Reader, size int64) (Staged, error)

	// Open opens storage/<username>/<name> for reading and reports its
	// size. The caller must Close the returned ReadCloser.
	Open(username, name string) (io.ReadCloser, int64, error)

	// Remove unlinks storage/<username>/<name>. A missing file is not an
	// error: the catalog is authoritative (spec §4.5 DELETE).
	Remove(username, name string) error
}

// Staged is a temp file written by StageUpload, pending Commit or Discard.
type Staged interface {
	// Commit renames the temp file to storage/<username>/<name>, the
	// atomicity boundary for UPLOAD (spec §4.5).
	Commit(name string) error
	// Discard unlinks the temp file without installing it.
	Discard() error
}

// New returns a Store rooted at dir, creating directories with dirPerm and
// files with filePerm.
func New(dir string, dirPerm, filePerm perm.Perm) Store {
	return newStore(dir, dirPerm, filePerm)
}
