// SPDX-License-Identifier: MIT
package audio

import (
	"encoding/json"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestEndpointJSON(t *testing.T) {
	tests := []struct {
		name string
		ep   Endpoint
		want string
	}{
		{
			"All fields",
			Endpoint{ID: strPtr("{0.0.1}.{abc}"), Name: strPtr("Microphone"), Flow: FlowCapture, State: StateActive},
			`{"id":"{0.0.1}.{abc}","name":"Microphone","flow":"capture","state":"active"}`,
		},
		{
			"Missing id",
			Endpoint{Name: strPtr("Speakers"), Flow: FlowRender, State: StateActive},
			`{"name":"Speakers","flow":"render","state":"active"}`,
		},
		{
			"Missing name",
			Endpoint{ID: strPtr("x"), Flow: FlowRender, State: StateActive},
			`{"id":"x","flow":"render","state":"active"}`,
		},
		{
			"Empty name is kept",
			Endpoint{ID: strPtr("x"), Name: strPtr(""), Flow: FlowRender, State: StateActive},
			`{"id":"x","name":"","flow":"render","state":"active"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.ep)
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("got %s, want %s", data, tt.want)
			}
		})
	}
}

func TestEndpointHelpers(t *testing.T) {
	ep := Endpoint{Flow: FlowCapture, State: StateActive}
	if ep.HasID() {
		t.Error("HasID should be false without an id")
	}
	if ep.IDOrEmpty() != "" {
		t.Errorf("IDOrEmpty = %q, want empty", ep.IDOrEmpty())
	}
	if ep.DisplayName() != "(unnamed device)" {
		t.Errorf("DisplayName = %q", ep.DisplayName())
	}
	if !ep.IsInput() {
		t.Error("capture endpoint should be an input")
	}

	ep.Name = strPtr("Line In")
	if ep.DisplayName() != "Line In" {
		t.Errorf("DisplayName = %q, want %q", ep.DisplayName(), "Line In")
	}

	ep.Flow = FlowRender
	if ep.IsInput() {
		t.Error("render endpoint should not be an input")
	}
}
