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

// Package task defines the unit of work moved between the task queue, a
// request worker, the result queue and a sender.
package task

import (
	"net"

	"github.com/nabbar/filestored/logger"
)

// Kind is the command a Task carries.
type Kind int

const (
	Upload Kind = iota
	Download
	Delete
	List
)

func (k Kind) String() string {
	switch k {
	case Upload:
		return "UPLOAD"
	case Download:
		return "DOWNLOAD"
	case Delete:
		return "DELETE"
	case List:
		return "LIST"
	default:
		return "UNKNOWN"
	}
}

// Task is self-describing: it carries everything a worker needs and
// everything a sender needs to reply, and nothing else. It is owned by
// exactly one component at a time (queue -> worker -> queue -> sender).
type Task struct {
	Conn      net.Conn
	SessionID uint64
	User      string
	Kind      Kind
	Name      string // filename, where applicable
	Size      int64  // declared upload size; UPLOAD only

	// Payload holds the bytes already read off the wire for an UPLOAD,
	// read by the connection reader before the task is enqueued so a
	// worker never blocks on socket I/O.
	Payload []byte

	// Out is the response buffer a worker attaches on success.
	Out []byte
	// Err is the response buffer a worker attaches on failure, already
	// formatted as "ERR <reason>\n".
	Err []byte

	Fields logger.Fields
}

// Response returns the bytes the sender should write: Out on success, Err
// otherwise.
func (t *Task) Response() []byte {
	if t.Out != nil {
		return t.Out
	}
	return t.Err
}
