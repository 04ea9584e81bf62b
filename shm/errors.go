// SPDX-License-Identifier: EPL-2.0

package shm

import "errors"

var (
	ErrInvalidLayout = errors.New("invalid frame store layout")
)
