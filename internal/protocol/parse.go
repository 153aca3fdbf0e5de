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

package protocol

import (
	"strconv"
	"strings"
)

// MaxLineLength bounds a single command line (spec §4.4/§6).
const MaxLineLength = 1024

// Verb identifies the command named on a parsed line.
type Verb string

const (
	Signup   Verb = "SIGNUP"
	Login    Verb = "LOGIN"
	Upload   Verb = "UPLOAD"
	Download Verb = "DOWNLOAD"
	Delete   Verb = "DELETE"
	List     Verb = "LIST"
)

// Command is one parsed command line.
type Command struct {
	Verb Verb
	User string
	Name string // DOWNLOAD/DELETE/UPLOAD file name
	Size int64  // UPLOAD declared payload size
}

// Parse splits a whitespace-separated command line into a Command. line
// must already have its trailing CR/LF stripped. On failure the returned
// Command still carries Verb when the line named a recognized command, so
// a caller can report which command's syntax was bad rather than falling
// back to an unknown-command response.
func Parse(line string) (Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}

	verb := Verb(strings.ToUpper(fields[0]))
	args := fields[1:]

	switch verb {
	case Signup, Login:
		if len(args) != 1 {
			return Command{Verb: verb}, false
		}
		return Command{Verb: verb, User: args[0]}, true

	case List:
		if len(args) != 1 {
			return Command{Verb: verb}, false
		}
		return Command{Verb: verb, User: args[0]}, true

	case Download, Delete:
		if len(args) != 2 {
			return Command{Verb: verb}, false
		}
		return Command{Verb: verb, User: args[0], Name: args[1]}, true

	case Upload:
		if len(args) != 3 {
			return Command{Verb: verb}, false
		}
		size, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil || size < 0 {
			return Command{Verb: verb}, false
		}
		return Command{Verb: verb, User: args[0], Name: args[1], Size: size}, true

	default:
		return Command{}, false
	}
}

// SyntaxErrorReason maps the verb of a line that failed Parse to its
// specific ERR reason. An empty/unrecognized verb reports
// ReasonUnknownCommand.
func SyntaxErrorReason(verb Verb) string {
	switch verb {
	case Signup:
		return ReasonInvalidSignup
	case Login:
		return ReasonInvalidLogin
	case Upload:
		return ReasonBadUploadSyntax
	case Download:
		return ReasonBadDownloadSyntax
	case Delete:
		return ReasonBadDeleteSyntax
	case List:
		return ReasonBadListSyntax
	default:
		return ReasonUnknownCommand
	}
}

// ValidUsername reports whether s is an acceptable SIGNUP username: a
// non-empty token without whitespace (already guaranteed by Parse) or
// control characters.
func ValidUsername(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
