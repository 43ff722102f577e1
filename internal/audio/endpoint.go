// SPDX-License-Identifier: MIT
package audio

// Flow is the data-flow direction of an audio endpoint.
type Flow string

const (
	FlowCapture Flow = "capture" // Microphones and other input endpoints.
	FlowRender  Flow = "render"  // Speakers and other output endpoints.
)

// flows is the fixed order in which directions are enumerated.
var flows = [...]Flow{FlowCapture, FlowRender}

// State is the device state of an endpoint. Only active endpoints are
// ever produced.
type State string

const StateActive State = "active"

// Endpoint describes a single audio endpoint as reported by the OS.
//
// ID and Name are nil when the platform could not supply them. A non-nil Name
// may still point to an empty string if the device has no friendly name.
type Endpoint struct {
	ID    *string `json:"id,omitempty"`
	Name  *string `json:"name,omitempty"`
	Flow  Flow    `json:"flow"`
	State State   `json:"state"`
}

// HasID reports whether the endpoint identifier is known.
func (e Endpoint) HasID() bool {
	return e.ID != nil
}

// IDOrEmpty returns the endpoint identifier, or "" when it is unknown.
func (e Endpoint) IDOrEmpty() string {
	if e.ID == nil {
		return ""
	}
	return *e.ID
}

// DisplayName returns the friendly name, falling back to a placeholder.
func (e Endpoint) DisplayName() string {
	if e.Name == nil || *e.Name == "" {
		return "(unnamed device)"
	}
	return *e.Name
}

// IsInput reports whether the endpoint captures audio.
func (e Endpoint) IsInput() bool {
	return e.Flow == FlowCapture
}
