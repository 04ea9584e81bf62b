// SPDX-License-Identifier: EPL-2.0

package intpcm

import "errors"

var ErrBadFormat = errors.New("missing or invalid PCM format")
