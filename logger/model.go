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

package logger

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type logger struct {
	entry *logrus.Entry
}

func (l *logger) fields(f Fields) logrus.Fields {
	if len(f) < 1 {
		return nil
	}
	out := make(logrus.Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func (l *logger) Debug(msg string, fields Fields) {
	l.entry.WithFields(l.fields(fields)).Debug(msg)
}

func (l *logger) Info(msg string, fields Fields) {
	l.entry.WithFields(l.fields(fields)).Info(msg)
}

func (l *logger) Warn(msg string, fields Fields) {
	l.entry.WithFields(l.fields(fields)).Warn(msg)
}

func (l *logger) Error(msg string, fields Fields) {
	l.entry.WithFields(l.fields(fields)).Error(msg)
}

func (l *logger) WithFields(fields Fields) Logger {
	return &logger{entry: l.entry.WithFields(l.fields(fields))}
}

func (l *logger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return ErrorLevelInvalid.Error(err)
	}
	l.entry.Logger.SetLevel(lvl)
	return nil
}

func (l *logger) SetFormatter(format string) error {
	switch format {
	case "json":
		l.entry.Logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	case "text":
		l.entry.Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return ErrorFormatterInvalid.Error(fmt.Errorf("unknown format %q", format))
	}
	return nil
}
