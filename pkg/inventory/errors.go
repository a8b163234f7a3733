/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package inventory

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrRequest      = errors.New("invalid inventory request")
	ErrTransport    = errors.New("inventory API unreachable")
	ErrUnauthorized = errors.New("inventory API rejected the credentials")
	ErrNotFound     = errors.New("device not found")
	ErrServer       = errors.New("inventory API error")
	ErrDecode       = errors.New("malformed inventory API response")

	errEmptyDeviceID = errors.New("device id is required")
)

// Op names the logical inventory operation that failed.
type Op string

const (
	OpRegister Op = "register"
	OpList     Op = "list"
	OpDelete   Op = "delete"
)

// Kind classifies a failure.
type Kind string

const (
	KindRequest      Kind = "request"
	KindTransport    Kind = "transport"
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindServer       Kind = "server"
	KindDecode       Kind = "decode"
)

// Error carries the real cause of a failed inventory call. Presentation layers
// may collapse it into a fixed message; tests and logs can inspect it.
type Error struct {
	Op         Op
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("inventory %s: %s", e.Op, e.Kind)

	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}

	if e.Message != "" {
		msg += ": " + e.Message
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the package sentinels by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrRequest:
		return e.Kind == KindRequest
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrServer:
		return e.Kind == KindServer
	case ErrDecode:
		return e.Kind == KindDecode
	}

	return false
}

// KindOf reports the Kind of err, or "" when err is not an inventory error.
func KindOf(err error) Kind {
	var invErr *Error
	if errors.As(err, &invErr) {
		return invErr.Kind
	}

	return ""
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindServer
	}
}
