// SPDX-License-Identifier: EPL-2.0

package stream

import "errors"

var (
	ErrNoCallback       = errors.New("no callback for the session direction")
	ErrUnexpectedInput  = errors.New("input callback on a session without input channels")
	ErrUnexpectedOutput = errors.New("output callback on a session without output channels")
)
