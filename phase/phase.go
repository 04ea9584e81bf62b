// SPDX-License-Identifier: EPL-2.0

package phase

import "strconv"

// Phase is the value held by the control word.
type Phase uint32

const (
	ReadWrite    Phase = iota // idle, the loop may claim
	Demand                    // loop owns the data words
	OutputReady               // render owns the data words
	InputPending              // captured input waits for the loop
	Done                      // session torn down
)

// Valid reports whether p is one of the defined phases.
func (p Phase) Valid() bool { return p <= Done }

func (p Phase) String() string {
	switch p {
	case ReadWrite:
		return "read-write"
	case Demand:
		return "demand"
	case OutputReady:
		return "output-ready"
	case InputPending:
		return "input-pending"
	case Done:
		return "done"
	default:
		return "phase(" + strconv.FormatUint(uint64(p), 10) + ")"
	}
}
