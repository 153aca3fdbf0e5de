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
	"bufio"
	"context"
	"errors"
	"io"
	"net"

	"github.com/nabbar/filestored/internal/protocol"
	"github.com/nabbar/filestored/internal/task"
	"github.com/nabbar/filestored/logger"
)

var errLineTooLong = errors.New("line too long")

// handleConn owns one connection end to end: it parses command lines,
// answers SIGNUP/LOGIN itself, reads an UPLOAD payload inline (so a worker
// never blocks on socket I/O) and enqueues everything else for the worker
// pool. Responses for enqueued commands are written later by a sender, so
// ordering across different connections - and, under load, within one
// connection's queued replies - is not guaranteed.
func (s *srv) handleConn(ctx context.Context, sessionID uint64, conn net.Conn) {
	defer func() { _ = conn.Close() }()

	r := bufio.NewReaderSize(conn, protocol.MaxLineLength+2)
	fields := logger.Fields{"session": sessionID}

	for {
		line, err := readLine(r, protocol.MaxLineLength)
		if err != nil {
			if err != io.EOF && !errors.Is(err, net.ErrClosed) {
				if err == errLineTooLong {
					_, _ = conn.Write(protocol.Err(protocol.ReasonUnknownCommand))
				}
			}
			return
		}
		if line == "" {
			continue
		}

		cmd, ok := protocol.Parse(line)
		if !ok {
			_, _ = conn.Write(protocol.Err(protocol.SyntaxErrorReason(cmd.Verb)))
			continue
		}

		switch cmd.Verb {
		case protocol.Signup:
			s.handleSignup(conn, cmd.User)
		case protocol.Login:
			s.handleLogin(conn, cmd.User)
		case protocol.Upload:
			if !s.enqueueUpload(conn, sessionID, cmd, r, fields) {
				return
			}
		case protocol.Download:
			s.enqueue(&task.Task{Conn: conn, SessionID: sessionID, User: cmd.User, Kind: task.Download, Name: cmd.Name, Fields: fields})
		case protocol.Delete:
			s.enqueue(&task.Task{Conn: conn, SessionID: sessionID, User: cmd.User, Kind: task.Delete, Name: cmd.Name, Fields: fields})
		case protocol.List:
			s.enqueue(&task.Task{Conn: conn, SessionID: sessionID, User: cmd.User, Kind: task.List, Fields: fields})
		}
	}
}

func (s *srv) handleSignup(conn net.Conn, username string) {
	if !protocol.ValidUsername(username) {
		_, _ = conn.Write(protocol.Err(protocol.ReasonInvalidSignup))
		return
	}

	if _, ok := s.users.Create(username, s.cfg.DefaultQuota); !ok {
		_, _ = conn.Write(protocol.Err(protocol.ReasonUserExists))
		return
	}

	if err := s.store.EnsureUser(username); err != nil {
		s.log.Warn("ensure user directory failed", logger.Fields{"user": username, "error": err.Error()})
	}

	_, _ = conn.Write(protocol.OK)
}

func (s *srv) handleLogin(conn net.Conn, username string) {
	if _, ok := s.users.Find(username); !ok {
		_, _ = conn.Write(protocol.Err(protocol.ReasonNoSuchUser))
		return
	}
	_, _ = conn.Write(protocol.OK)
}

// enqueueUpload reads the declared payload size off the wire before
// dispatch, so a slow or truncated upload body cannot stall a worker. It
// returns false when the connection should be closed.
func (s *srv) enqueueUpload(conn net.Conn, sessionID uint64, cmd protocol.Command, r *bufio.Reader, fields logger.Fields) bool {
	payload := make([]byte, cmd.Size)
	if _, err := io.ReadFull(r, payload); err != nil {
		_, _ = conn.Write(protocol.Err(protocol.ReasonUploadRecvFailed))
		return false
	}

	s.enqueue(&task.Task{
		Conn:      conn,
		SessionID: sessionID,
		User:      cmd.User,
		Kind:      task.Upload,
		Name:      cmd.Name,
		Size:      cmd.Size,
		Payload:   payload,
		Fields:    fields,
	})
	return true
}

func (s *srv) enqueue(t *task.Task) {
	if !s.tasks.Offer(t) {
		_, _ = t.Conn.Write(protocol.Err(protocol.ReasonIO))
	}
}

func readLine(r *bufio.Reader, max int) (string, error) {
	var buf []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '\n' {
			break
		}
		buf = append(buf, b)
		if len(buf) > max {
			return "", errLineTooLong
		}
	}
	if n := len(buf); n > 0 && buf[n-1] == '\r' {
		buf = buf[:n-1]
	}
	return string(buf), nil
}
