// SPDX-License-Identifier: MIT
package transport

import "audioendpoints/internal/audio"

// Transport defines a generic interface for delivering endpoint lists to a
// consumer.
type Transport interface {
	Send(data any) error
	Close() error
}

// EndpointSource produces endpoint lists on demand. *audio.Enumerator
// satisfies it.
type EndpointSource interface {
	EnumerateEndpoints() ([]audio.Endpoint, error)
}

var _ EndpointSource = (*audio.Enumerator)(nil)
