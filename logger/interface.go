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

// Package logger wraps github.com/sirupsen/logrus with the small surface the
// storage service needs: leveled logging plus a Fields map that follows a
// request through the reader, worker and sender pools.
package logger

import "github.com/sirupsen/logrus"

// Fields carries correlation data (session, user, name, error, ...)
// through one client request.
type Fields map[string]interface{}

// WithField returns a copy of f with key set to val.
func (f Fields) WithField(key string, val interface{}) Fields {
	n := make(Fields, len(f)+1)
	for k, v := range f {
		n[k] = v
	}
	n[key] = val
	return n
}

// Logger is the leveled logging surface used across the service.
type Logger interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, fields Fields)

	// WithFields returns a Logger that merges fields into every call it
	// makes, leaving the receiver untouched.
	WithFields(fields Fields) Logger

	// SetLevel changes the minimum level emitted; safe for concurrent use.
	SetLevel(level string) error

	// SetFormatter switches between "text" and "json" output.
	SetFormatter(format string) error
}

// New returns a Logger writing to standard error (logrus's default output)
// at the given level ("debug", "info", "warn", "error") and format ("text"
// or "json"). An empty level defaults to "info", an empty format to "text".
func New(level string, format string) (Logger, error) {
	l := logrus.New()

	lg := &logger{entry: logrus.NewEntry(l)}

	if level == "" {
		level = "info"
	}
	if err := lg.SetLevel(level); err != nil {
		return nil, err
	}

	if format == "" {
		format = "text"
	}
	if err := lg.SetFormatter(format); err != nil {
		return nil, err
	}

	return lg, nil
}
