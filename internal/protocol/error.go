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

// Package protocol implements the wire-level command line grammar
// (spec §6): parsing, response formatting and the ERR reason vocabulary.
package protocol

import "github.com/nabbar/filestored/errors"

// The Reason* constants are the wire-level ERR vocabulary (spec §6). Each is
// a fixed ASCII token sent after "ERR ".
const (
	ReasonUserExists        = "user_exists"
	ReasonNoSuchUser        = "no_such_user"
	ReasonUserNotFound      = "user_not_found"
	ReasonNotFound          = "not_found"
	ReasonQuotaExceeded     = "quota_exceeded"
	ReasonInvalidSignup     = "invalid_signup"
	ReasonInvalidLogin      = "invalid_login"
	ReasonBadUploadSyntax   = "bad_upload_syntax"
	ReasonBadDownloadSyntax = "bad_download_syntax"
	ReasonBadDeleteSyntax   = "bad_delete_syntax"
	ReasonBadListSyntax     = "bad_list_syntax"
	ReasonUnknownCommand    = "unknown_command"
	ReasonUploadRecvFailed  = "upload_recv_failed"
	ReasonCannotCreateTmp   = "cannot_create_tmp"
	ReasonRenameFailed      = "rename_failed"
	ReasonPathOverflow      = "path_overflow"
	ReasonLockFail          = "lock_fail"
	ReasonMem               = "mem"
	ReasonIO                = "io"
)

const (
	ErrorLineTooLong errors.CodeError = iota + errors.MinPkgProtocol
	ErrorMalformedCommand
)

func init() {
	errors.RegisterIdFctMessage(ErrorLineTooLong, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case ErrorLineTooLong:
		return "command line exceeds the maximum length"
	case ErrorMalformedCommand:
		return "malformed command line"
	}
	return ""
}
