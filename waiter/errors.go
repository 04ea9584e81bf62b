// SPDX-License-Identifier: EPL-2.0

package waiter

import "errors"

var (
	ErrAbortUsed = errors.New("abort handle already used")
	ErrStopped   = errors.New("waiter stopped")
	ErrBusy      = errors.New("wait request already in flight")
)
