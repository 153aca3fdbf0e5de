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
	"bytes"
	"context"
	"io"

	"github.com/nabbar/filestored/internal/protocol"
	"github.com/nabbar/filestored/internal/quota"
	"github.com/nabbar/filestored/internal/registry"
	"github.com/nabbar/filestored/internal/task"
	"github.com/nabbar/filestored/logger"
)

// workerLoop pulls tasks off the shared task queue until it is shut down
// and drained, dispatching each by kind and offering the result onward.
func (s *srv) workerLoop(ctx context.Context) {
	for {
		v, ok := s.tasks.Take(ctx)
		if !ok {
			return
		}

		t := v.(*task.Task)
		s.dispatch(t)
		s.met.observeResult(t)
		s.results.Offer(t)
	}
}

func (s *srv) dispatch(t *task.Task) {
	switch t.Kind {
	case task.Upload:
		s.handleUpload(t)
	case task.Download:
		s.handleDownload(t)
	case task.Delete:
		s.handleDelete(t)
	case task.List:
		s.handleList(t)
	}
}

// handleUpload writes the payload to a temp file before taking the
// per-user lock, and holds that lock only across the quota check, the
// commit rename and the catalog update - the same brief critical section
// the reference implementation uses - so one user's disk write never
// blocks another command against the same user.
func (s *srv) handleUpload(t *task.Task) {
	u, ok := s.users.Find(t.User)
	if !ok {
		t.Err = protocol.Err(protocol.ReasonUserNotFound)
		return
	}

	h := s.locks.Acquire(t.User, t.Name, true)
	defer s.locks.Release(h)

	staged, err := s.store.StageUpload(t.User, bytes.NewReader(t.Payload), t.Size)
	if err != nil {
		s.log.Error("stage upload failed", logger.Fields{"user": t.User, "name": t.Name, "error": err.Error()})
		t.Err = protocol.Err(protocol.ReasonCannotCreateTmp)
		return
	}

	size := quota.Size(t.Size)
	unlock := u.Lock()

	prev, existed := u.Find(t.Name)
	projected := u.Used() + size
	if existed {
		projected -= prev.Size
	}
	if projected > u.Quota() {
		unlock()
		_ = staged.Discard()
		t.Err = protocol.Err(protocol.ReasonQuotaExceeded)
		return
	}

	if err = staged.Commit(t.Name); err != nil {
		unlock()
		s.log.Error("commit upload failed", logger.Fields{"user": t.User, "name": t.Name, "error": err.Error()})
		t.Err = protocol.Err(protocol.ReasonRenameFailed)
		return
	}

	u.Put(registry.File{Name: t.Name, Size: size})
	unlock()

	t.Out = protocol.OK
}

func (s *srv) handleDownload(t *task.Task) {
	u, ok := s.users.Find(t.User)
	if !ok {
		t.Err = protocol.Err(protocol.ReasonUserNotFound)
		return
	}

	h := s.locks.Acquire(t.User, t.Name, false)
	defer s.locks.Release(h)

	unlock := u.Lock()
	_, found := u.Find(t.Name)
	unlock()

	if !found {
		t.Err = protocol.Err(protocol.ReasonNotFound)
		return
	}

	r, size, err := s.store.Open(t.User, t.Name)
	if err != nil {
		t.Err = protocol.Err(protocol.ReasonNotFound)
		return
	}
	defer func() { _ = r.Close() }()

	buf := make([]byte, 0, size+32)
	buf = append(buf, protocol.DownloadHeader(size)...)

	data := make([]byte, size)
	if _, err = io.ReadFull(r, data); err != nil {
		s.log.Error("download read failed", logger.Fields{"user": t.User, "name": t.Name, "error": err.Error()})
		t.Err = protocol.Err(protocol.ReasonIO)
		return
	}

	t.Out = append(buf, data...)
}

func (s *srv) handleDelete(t *task.Task) {
	u, ok := s.users.Find(t.User)
	if !ok {
		t.Err = protocol.Err(protocol.ReasonUserNotFound)
		return
	}

	h := s.locks.Acquire(t.User, t.Name, true)
	defer s.locks.Release(h)

	unlock := u.Lock()
	removed := u.Remove(t.Name)
	unlock()

	if !removed {
		t.Err = protocol.Err(protocol.ReasonNotFound)
		return
	}

	// The catalog entry is gone regardless of whether the on-disk file
	// can still be unlinked.
	if err := s.store.Remove(t.User, t.Name); err != nil {
		s.log.Warn("delete unlink failed", logger.Fields{"user": t.User, "name": t.Name, "error": err.Error()})
	}

	t.Out = protocol.OK
}

func (s *srv) handleList(t *task.Task) {
	u, ok := s.users.Find(t.User)
	if !ok {
		t.Err = protocol.Err(protocol.ReasonUserNotFound)
		return
	}

	unlock := u.Lock()
	files := u.Catalog()
	unlock()

	var buf []byte
	for _, f := range files {
		buf = append(buf, protocol.ListEntry(f.Name, f.Size.Uint64())...)
	}
	buf = append(buf, protocol.ListEnd...)

	t.Out = buf
}
