// SPDX-License-Identifier: MIT
package audio

import "errors"

var (
	// ErrSubsystemUnavailable is returned by NewEnumerator when the OS audio
	// device subsystem cannot be reached.
	ErrSubsystemUnavailable = errors.New("audio device subsystem unavailable")

	// ErrNotInitialized is returned when enumerating on an enumerator that
	// was never constructed or has been closed.
	ErrNotInitialized = errors.New("audio device enumerator not initialized")
)
