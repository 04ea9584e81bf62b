// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"
	"strings"
)

// Policy selects what the host hears on an underrun.
type Policy int

const (
	RepeatLast Policy = iota
	Silence
)

func (p Policy) String() string {
	switch p {
	case RepeatLast:
		return "repeat"
	case Silence:
		return "silence"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy accepts "repeat" or "silence".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "repeat", "repeat-last", "":
		return RepeatLast, nil
	case "silence":
		return Silence, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}
