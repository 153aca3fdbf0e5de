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
	"sync"

	"github.com/nabbar/filestored/internal/quota"
)

type user struct {
	name    string
	mu      sync.Mutex
	quota   quota.Size
	used    quota.Size
	catalog map[string]quota.Size
}

func (u *user) Name() string { return u.name }

func (u *user) Lock() (unlock func()) {
	u.mu.Lock()
	return u.mu.Unlock
}

func (u *user) Quota() quota.Size { return u.quota }
func (u *user) Used() quota.Size  { return u.used }

func (u *user) Catalog() []File {
	out := make([]File, 0, len(u.catalog))
	for name, size := range u.catalog {
		out = append(out, File{Name: name, Size: size})
	}
	return out
}

func (u *user) Find(name string) (File, bool) {
	size, ok := u.catalog[name]
	if !ok {
		return File{}, false
	}
	return File{Name: name, Size: size}, true
}

func (u *user) Put(f File) {
	if prev, ok := u.catalog[f.Name]; ok {
		u.used -= prev
	}
	u.catalog[f.Name] = f.Size
	u.used += f.Size
}

func (u *user) Remove(name string) bool {
	size, ok := u.catalog[name]
	if !ok {
		return false
	}
	delete(u.catalog, name)
	u.used -= size
	return true
}
