// SPDX-License-Identifier: EPL-2.0

package host

import (
	"fmt"
	"time"
)

// StreamInfo describes the stream a bridge asks the host to run.
type StreamInfo struct {
	SampleRate     int
	Frames         int
	OutputChannels int
	InputChannels  int
}

// Period is the wall-clock length of one quantum.
func (i StreamInfo) Period() time.Duration {
	if i.SampleRate <= 0 {
		return 0
	}
	return time.Duration(i.Frames) * time.Second / time.Duration(i.SampleRate)
}

func (i StreamInfo) String() string {
	return fmt.Sprintf("%d Hz, %d frames, %d out, %d in",
		i.SampleRate, i.Frames, i.OutputChannels, i.InputChannels)
}

// ProcessFunc handles one quantum. in is nil when the stream has no input.
// It must not block or allocate.
type ProcessFunc func(in, out []float32)

// Host is the audio engine boundary. A host runs at most one stream.
type Host interface {
	// Register installs fn for a stream described by info. The stream
	// starts suspended. A host that cannot run info returns ErrUnsupported.
	Register(info StreamInfo, fn ProcessFunc) error
	// Unregister suspends and removes the stream.
	Unregister() error
	// Resume starts or restarts calling fn.
	Resume() error
	// Suspend stops calling fn. No call is in flight once it returns.
	Suspend() error
}
