// SPDX-License-Identifier: MIT
package transport

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"audioendpoints/internal/audio"
	"audioendpoints/internal/config"
	"audioendpoints/pkg/utils"
)

func TestNewWriterTransport_Format(t *testing.T) {
	if _, err := NewWriterTransport(&bytes.Buffer{}, "yaml"); err == nil {
		t.Error("expected error for unsupported format")
	}
	for _, format := range []string{config.FormatText, config.FormatJSON} {
		if _, err := NewWriterTransport(&bytes.Buffer{}, format); err != nil {
			t.Errorf("format %q: unexpected error %v", format, err)
		}
	}
}

func TestWriterTransport_JSON(t *testing.T) {
	var buf bytes.Buffer
	wt, err := NewWriterTransport(&buf, config.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}

	endpoints := utils.GenerateEndpoints(1, 1)
	endpoints[1].ID = nil

	if err := wt.Send(endpoints); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d endpoints, want 2", len(decoded))
	}
	if decoded[0]["flow"] != "capture" || decoded[1]["flow"] != "render" {
		t.Errorf("unexpected flows: %v, %v", decoded[0]["flow"], decoded[1]["flow"])
	}
	if _, ok := decoded[1]["id"]; ok {
		t.Error("absent id must be omitted from JSON")
	}
	if decoded[0]["state"] != "active" {
		t.Errorf("state = %v, want active", decoded[0]["state"])
	}
}

func TestWriterTransport_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	wt, _ := NewWriterTransport(&buf, config.FormatJSON)

	if err := wt.Send([]audio.Endpoint(nil)); err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty list encoded as %q, want []", buf.String())
	}
}

func TestWriterTransport_Text(t *testing.T) {
	var buf bytes.Buffer
	wt, _ := NewWriterTransport(&buf, config.FormatText)

	endpoints := utils.GenerateEndpoints(1, 1)
	endpoints[1].ID = nil
	endpoints[1].Name = nil

	if err := wt.Send(endpoints); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Active Audio Endpoints",
		"[0] Microphone 1 (Capture)",
		"[1] (unnamed device) (Render)",
		"ID:    (unavailable)",
		"State: active",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "(Capture)") > strings.Index(out, "(Render)") {
		t.Error("capture endpoints must be printed before render endpoints")
	}
}

func TestWriterTransport_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	wt, _ := NewWriterTransport(&buf, config.FormatText)

	if err := wt.Send([]audio.Endpoint{}); err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if !strings.Contains(buf.String(), "No active audio endpoints found.") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestWriterTransport_SendSingleAndInvalid(t *testing.T) {
	var buf bytes.Buffer
	wt, _ := NewWriterTransport(&buf, config.FormatText)

	if err := wt.Send(utils.GenerateEndpoints(0, 1)[0]); err != nil {
		t.Errorf("Send(single endpoint) error: %v", err)
	}
	if err := wt.Send(42); err == nil {
		t.Error("expected error sending an unsupported type")
	}
	if err := wt.Close(); err != nil {
		t.Errorf("Close error: %v", err)
	}
}

func TestFlowLabel(t *testing.T) {
	tests := []struct {
		flow audio.Flow
		want string
	}{
		{audio.FlowCapture, "Capture"},
		{audio.FlowRender, "Render"},
		{audio.Flow("loopback"), "Unknown"},
	}
	for _, tt := range tests {
		if got := FlowLabel(tt.flow); got != tt.want {
			t.Errorf("FlowLabel(%q) = %q, want %q", tt.flow, got, tt.want)
		}
	}
}
