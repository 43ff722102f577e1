// SPDX-License-Identifier: MIT
/*
Package audio enumerates the active audio endpoints of the host:
- Capture endpoints (microphones) first, then render endpoints (speakers)
- Per-device id and friendly-name lookup, tolerant of per-field failures
- Windows Core Audio backend; other platforms report the subsystem as unavailable

Resource Model:
- The platform enumerator handle is acquired once in NewEnumerator and released in Close
- Collection, device and property-store handles live for one iteration step only
*/
package audio

import (
	"fmt"
	"sync"

	applog "audioendpoints/internal/log"
)

// Enumerator lists the active audio endpoints of the host. It is safe for
// concurrent use; calls are serialised.
type Enumerator struct {
	mu  sync.Mutex
	sys subsystem
}

// NewEnumerator acquires the platform audio device subsystem. The returned
// error wraps ErrSubsystemUnavailable if the subsystem cannot be reached.
// Close must be called to release it.
func NewEnumerator() (*Enumerator, error) {
	sys, err := openSubsystem()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubsystemUnavailable, err)
	}
	return &Enumerator{sys: sys}, nil
}

// EnumerateEndpoints returns every active capture endpoint followed by every
// active render endpoint, in platform order within each direction.
//
// A direction whose collection cannot be retrieved is left out, and a device
// whose id or name cannot be read is returned without that field. The only
// error is ErrNotInitialized.
func (e *Enumerator) EnumerateEndpoints() ([]Endpoint, error) {
	if e == nil {
		return nil, ErrNotInitialized
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sys == nil {
		return nil, ErrNotInitialized
	}

	endpoints := make([]Endpoint, 0)
	e.sys.exec(func() {
		for _, flow := range flows {
			endpoints = appendFlow(e.sys, endpoints, flow)
		}
	})
	return endpoints, nil
}

// Close releases the platform subsystem. Further calls to EnumerateEndpoints
// return ErrNotInitialized. Close is idempotent.
func (e *Enumerator) Close() error {
	if e == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sys == nil {
		return nil
	}
	err := e.sys.close()
	e.sys = nil
	if err != nil {
		return fmt.Errorf("failed to release audio device subsystem: %w", err)
	}
	return nil
}

// appendFlow appends the active endpoints of one direction to dst.
func appendFlow(sys subsystem, dst []Endpoint, flow Flow) []Endpoint {
	coll, err := sys.activeEndpoints(flow)
	if err != nil {
		applog.Debugf("audio: skipping %s endpoints: %v", flow, err)
		return dst
	}
	defer coll.release()

	n, err := coll.count()
	if err != nil {
		applog.Debugf("audio: cannot count %s endpoints: %v", flow, err)
		return dst
	}

	for i := 0; i < n; i++ {
		ep, ok := readEndpoint(coll, i, flow)
		if !ok {
			continue
		}
		dst = append(dst, ep)
	}
	return dst
}

// readEndpoint builds the record for device i of coll. It returns false only
// if the device handle itself could not be obtained.
func readEndpoint(coll collection, i int, flow Flow) (Endpoint, bool) {
	dev, err := coll.item(i)
	if err != nil {
		applog.Debugf("audio: skipping %s device %d: %v", flow, i, err)
		return Endpoint{}, false
	}
	defer dev.release()

	ep := Endpoint{Flow: flow, State: StateActive}

	if id, err := dev.id(); err == nil {
		ep.ID = &id
	} else {
		applog.Debugf("audio: %s device %d has no id: %v", flow, i, err)
	}

	if name, err := readFriendlyName(dev); err == nil {
		ep.Name = &name
	} else {
		applog.Debugf("audio: %s device %d has no name: %v", flow, i, err)
	}

	return ep, true
}

func readFriendlyName(dev device) (string, error) {
	props, err := dev.openPropertyStore()
	if err != nil {
		return "", fmt.Errorf("failed to open property store: %w", err)
	}
	defer props.release()

	return props.friendlyName()
}
