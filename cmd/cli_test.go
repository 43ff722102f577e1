// SPDX-License-Identifier: MIT
package cmd

import (
	"strings"
	"testing"

	"audioendpoints/internal/config"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Options
	}{
		{"No args lists", nil, Options{Command: CommandList}},
		{"List", []string{"list"}, Options{Command: CommandList}},
		{"TUI", []string{"tui"}, Options{Command: CommandTUI}},
		{"Serve with addr", []string{"serve", "--addr", "127.0.0.1:9000"}, Options{Command: CommandServe, Addr: "127.0.0.1:9000"}},
		{"Short flags", []string{"list", "-f", "json", "-v", "-c", "x.yaml"}, Options{Command: CommandList, Format: "json", Verbose: true, ConfigPath: "x.yaml"}},
		{"Persistent flag before command", []string{"--format", "json", "list"}, Options{Command: CommandList, Format: "json"}},
		{"Help only", []string{"--help"}, Options{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args)
			if err != nil {
				t.Fatalf("ParseArgs(%v) error: %v", tt.args, err)
			}
			if *got != tt.want {
				t.Errorf("ParseArgs(%v) = %+v, want %+v", tt.args, *got, tt.want)
			}
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		substr string
	}{
		{"Unknown flag", []string{"--nope"}, "unknown flag"},
		{"Unknown command", []string{"record"}, "unknown command"},
		{"Extra args", []string{"list", "extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error = %v, want substring %q", err, tt.substr)
			}
		})
	}
}

func TestOptionsApply(t *testing.T) {
	cfg := config.NewConfig()
	opts := &Options{Format: "json", Addr: "0.0.0.0:1234", Verbose: true}

	if err := opts.Apply(cfg); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if cfg.Output.Format != config.FormatJSON || cfg.Server.Addr != "0.0.0.0:1234" || !cfg.Debug {
		t.Errorf("options not applied: %+v", cfg)
	}

	cfg = config.NewConfig()
	if err := (&Options{Format: "csv"}).Apply(cfg); err == nil {
		t.Error("expected validation error for unsupported format")
	}

	cfg = config.NewConfig()
	if err := (&Options{}).Apply(cfg); err != nil {
		t.Fatalf("empty options: %v", err)
	}
	if cfg.Output.Format != config.DefaultFormat || cfg.Server.Addr != config.DefaultServerAddr {
		t.Errorf("empty options changed config: %+v", cfg)
	}
}
