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

package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/nabbar/filestored/file/perm"
	"github.com/nabbar/filestored/ioutils"
)

type store struct {
	dir      string
	dirPerm  perm.Perm
	filePerm perm.Perm
}

func newStore(dir string, dirPerm, filePerm perm.Perm) *store {
	return &store{dir: dir, dirPerm: dirPerm, filePerm: filePerm}
}

func (s *store) userDir(username string) string {
	return filepath.Join(s.dir, username)
}

func (s *store) EnsureUser(username string) error {
	return ioutils.PathCheckCreate(false, s.userDir(username), os.FileMode(s.filePerm), os.FileMode(s.dirPerm))
}

// StageUpload writes size bytes from r into a temp file named
// .upload-<uuid>-<random suffix> inside the user's directory, never touching the final
// name until Commit renames it into place.
func (s *store) StageUpload(username string, r io.Reader, size int64) (Staged, error) {
	dir := s.userDir(username)

	f, err := os.CreateTemp(dir, ".upload-"+uuid.NewString()+"-*")
	if err != nil {
		return nil, ErrorTempCreate.Error(err)
	}

	path := f.Name()

	n, err := io.Copy(f, io.LimitReader(r, size))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n != size {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, ErrorShortWrite.Error(err)
	}

	if e := os.Chmod(path, os.FileMode(s.filePerm)); e != nil {
		_ = os.Remove(path)
		return nil, ErrorTempCreate.Error(e)
	}

	return &staged{dir: dir, tmpPath: path}, nil
}

func (s *store) Open(username, name string) (io.ReadCloser, int64, error) {
	path := filepath.Join(s.userDir(username), name)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrorNotFound.Error(err)
		}
		return nil, 0, ErrorOpen.Error(err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, ErrorOpen.Error(err)
	}

	return f, info.Size(), nil
}

func (s *store) Remove(username, name string) error {
	path := filepath.Join(s.userDir(username), name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return ErrorOpen.Error(err)
	}
	return nil
}

type staged struct {
	dir     string
	tmpPath string
}

func (st *staged) Commit(name string) error {
	if err := os.Rename(st.tmpPath, filepath.Join(st.dir, name)); err != nil {
		_ = os.Remove(st.tmpPath)
		return ErrorRename.Error(err)
	}
	return nil
}

func (st *staged) Discard() error {
	if err := os.Remove(st.tmpPath); err != nil && !os.IsNotExist(err) {
		return ErrorOpen.Error(err)
	}
	return nil
}
