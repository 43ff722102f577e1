// SPDX-License-Identifier: MIT
package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"audioendpoints/internal/audio"
	"audioendpoints/internal/config"
	applog "audioendpoints/internal/log"
)

// WriterTransport implements the Transport interface by printing endpoint
// lists to a writer, as human-readable text or as a JSON array.
type WriterTransport struct {
	w      io.Writer
	format string
}

// NewWriterTransport creates a WriterTransport. format is config.FormatText
// or config.FormatJSON.
func NewWriterTransport(w io.Writer, format string) (*WriterTransport, error) {
	switch format {
	case config.FormatText, config.FormatJSON:
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	applog.Debugf("WriterTransport: using %s output", format)
	return &WriterTransport{w: w, format: format}, nil
}

// Send writes data, which must be an endpoint or a list of endpoints.
func (wt *WriterTransport) Send(data any) error {
	var endpoints []audio.Endpoint
	switch v := data.(type) {
	case []audio.Endpoint:
		endpoints = v
	case audio.Endpoint:
		endpoints = []audio.Endpoint{v}
	default:
		return fmt.Errorf("WriterTransport: cannot send %T", data)
	}

	if wt.format == config.FormatJSON {
		return wt.writeJSON(endpoints)
	}
	return wt.writeText(endpoints)
}

func (wt *WriterTransport) writeJSON(endpoints []audio.Endpoint) error {
	if endpoints == nil {
		endpoints = []audio.Endpoint{}
	}
	enc := json.NewEncoder(wt.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(endpoints); err != nil {
		return fmt.Errorf("failed to encode endpoints: %w", err)
	}
	return nil
}

// writeText prints one block per endpoint:
//
//	[0] Microphone (Capture)
//	    ID:    {0.0.1.00000000}.{...}
//	    State: active
func (wt *WriterTransport) writeText(endpoints []audio.Endpoint) error {
	var sb strings.Builder

	if len(endpoints) == 0 {
		sb.WriteString("No active audio endpoints found.\n")
	} else {
		sb.WriteString("\nActive Audio Endpoints\n\n")
		for i, ep := range endpoints {
			sb.WriteString(FormatEndpoint(i, ep))
			sb.WriteString("\n")
		}
	}

	_, err := io.WriteString(wt.w, sb.String())
	return err
}

// FormatEndpoint renders a single endpoint as a text block.
func FormatEndpoint(index int, ep audio.Endpoint) string {
	id := ep.IDOrEmpty()
	if !ep.HasID() {
		id = "(unavailable)"
	}
	return fmt.Sprintf("[%d] %s (%s)\n    ID:    %s\n    State: %s\n",
		index, ep.DisplayName(), FlowLabel(ep.Flow), id, ep.State)
}

// FlowLabel returns the display label for a flow.
func FlowLabel(flow audio.Flow) string {
	switch flow {
	case audio.FlowCapture:
		return "Capture"
	case audio.FlowRender:
		return "Render"
	default:
		return "Unknown"
	}
}

// Close is a no-op; the writer is owned by the caller.
func (wt *WriterTransport) Close() error {
	return nil
}

// Ensure WriterTransport satisfies the interface at compile time.
var _ Transport = (*WriterTransport)(nil)
