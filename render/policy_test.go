// SPDX-License-Identifier: EPL-2.0

package render

import (
	"errors"
	"testing"
)

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"repeat", RepeatLast, false},
		{"Repeat-Last", RepeatLast, false},
		{"", RepeatLast, false},
		{" silence ", Silence, false},
		{"loop", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPolicy) {
					t.Errorf("ParsePolicy(%q) error = %v, want ErrUnknownPolicy", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParsePolicy(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestPolicy_String(t *testing.T) {
	t.Parallel()

	if RepeatLast.String() != "repeat" || Silence.String() != "silence" {
		t.Errorf("String() = %q, %q", RepeatLast.String(), Silence.String())
	}
	if Policy(9).String() != "policy(9)" {
		t.Errorf("Policy(9).String() = %q", Policy(9).String())
	}
}
