// SPDX-License-Identifier: MIT
package utils

import (
	"fmt"
	"sync"

	"audioendpoints/internal/audio"
)

// MockTransport implements the Transport interface for testing.
type MockTransport struct {
	mu       sync.Mutex
	LastData any
	Sends    int
	Closed   bool
}

// Send stores the data for later inspection instead of transmitting.
// Endpoint lists are copied so later mutation by the caller is not observed.
func (m *MockTransport) Send(data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if endpoints, ok := data.([]audio.Endpoint); ok {
		data = append([]audio.Endpoint(nil), endpoints...)
	}
	m.LastData = data
	m.Sends++
	return nil
}

// Close marks the transport closed.
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// GenerateEndpoints builds a list of fully populated active endpoints:
// captures first, then renders, with ids and names derived from the index.
func GenerateEndpoints(captures, renders int) []audio.Endpoint {
	endpoints := make([]audio.Endpoint, 0, captures+renders)
	for i := 0; i < captures; i++ {
		endpoints = append(endpoints, newEndpoint(audio.FlowCapture, i, "Microphone"))
	}
	for i := 0; i < renders; i++ {
		endpoints = append(endpoints, newEndpoint(audio.FlowRender, i, "Speakers"))
	}
	return endpoints
}

func newEndpoint(flow audio.Flow, i int, kind string) audio.Endpoint {
	flowIndex := 0
	if flow == audio.FlowCapture {
		flowIndex = 1
	}
	id := fmt.Sprintf("{0.0.%d.00000000}.{%08x-0000-0000-0000-000000000000}", flowIndex, i)
	name := fmt.Sprintf("%s %d", kind, i+1)
	return audio.Endpoint{ID: &id, Name: &name, Flow: flow, State: audio.StateActive}
}

// FakeSource is an EndpointSource returning fixed results.
type FakeSource struct {
	Endpoints []audio.Endpoint
	Err       error

	mu    sync.Mutex
	calls int
}

// EnumerateEndpoints returns the configured endpoints or error.
func (f *FakeSource) EnumerateEndpoints() ([]audio.Endpoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]audio.Endpoint{}, f.Endpoints...), nil
}

// Calls returns how many times EnumerateEndpoints was called.
func (f *FakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
