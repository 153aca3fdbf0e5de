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

import "fmt"

// OK is the bare success line for SIGNUP/LOGIN/DELETE.
var OK = []byte("OK\n")

// Err formats a wire-level error line: "ERR <reason>\n".
func Err(reason string) []byte {
	return []byte("ERR " + reason + "\n")
}

// DownloadHeader formats the "OK <size>\n" line DOWNLOAD prefixes its
// payload with.
func DownloadHeader(size int64) []byte {
	return []byte(fmt.Sprintf("OK %d\n", size))
}

// ListEntry formats one "<name> <size>\n" LIST line.
func ListEntry(name string, size uint64) []byte {
	return []byte(fmt.Sprintf("%s %d\n", name, size))
}

// ListEnd terminates a LIST response.
var ListEnd = []byte("END\n")
