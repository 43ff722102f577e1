// SPDX-License-Identifier: MIT
//go:build !windows

package audio

import (
	"fmt"
	"runtime"
)

// newSubsystem fails on every platform but Windows; endpoint enumeration is
// backed by Windows Core Audio only.
func newSubsystem() (subsystem, error) {
	return nil, fmt.Errorf("no audio endpoint backend for %s", runtime.GOOS)
}
