// SPDX-License-Identifier: MIT
package audio

// The interfaces below mirror the handles of the OS device enumeration API.
// Every handle is owned by exactly one caller and must be released by it.

// subsystem is the long-lived handle to the platform device enumerator.
type subsystem interface {
	// exec runs fn on the goroutine that owns the platform handle and
	// blocks until it returns.
	exec(fn func())
	// activeEndpoints returns the collection of active endpoints for flow.
	activeEndpoints(flow Flow) (collection, error)
	close() error
}

type collection interface {
	count() (int, error)
	item(i int) (device, error)
	release()
}

type device interface {
	id() (string, error)
	openPropertyStore() (propertyStore, error)
	release()
}

type propertyStore interface {
	// friendlyName returns the device friendly name. It fails if the stored
	// value is not a wide string.
	friendlyName() (string, error)
	release()
}

// openSubsystem acquires the platform subsystem. It is a variable so tests
// can substitute a fake platform.
var openSubsystem = newSubsystem
