// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"fmt"
	"os"

	"github.com/ik5/audbridge/formats/aiff"
)

func ExampleDecoder_Decode() {
	file, err := os.Open("tone.aiff")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer file.Close()

	source, err := aiff.Decoder{}.Decode(file)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer source.Close()

	fmt.Printf("%d Hz, %d channels\n", source.SampleRate(), source.Channels())
}
