// SPDX-License-Identifier: EPL-2.0

package bridge

import "errors"

var (
	ErrInvalidConfig  = errors.New("invalid bridge configuration")
	ErrHostRejected   = errors.New("host rejected stream registration")
	ErrUnknownDir     = errors.New("unknown stream direction")
	ErrClosed         = errors.New("bridge closed")
	ErrAlreadyRunning = errors.New("bridge already running")
	ErrNotRunning     = errors.New("bridge not running")
	ErrNotStarted     = errors.New("bridge never started")
)
