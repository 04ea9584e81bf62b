// SPDX-License-Identifier: EPL-2.0

package host

import "errors"

var (
	ErrAlreadyRegistered = errors.New("a stream is already registered")
	ErrNotRegistered     = errors.New("no stream registered")
	ErrUnsupported       = errors.New("stream configuration not supported by host")
)
