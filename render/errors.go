// SPDX-License-Identifier: EPL-2.0

package render

import "errors"

var (
	ErrUnknownPolicy = errors.New("unknown underrun policy")
)
