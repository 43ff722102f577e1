// SPDX-License-Identifier: MIT
package cmd

import (
	"fmt"

	"audioendpoints/internal/config"
	"audioendpoints/pkg/build"

	"github.com/spf13/cobra"
)

// Commands selected on the command line.
const (
	CommandList  = "list"
	CommandTUI   = "tui"
	CommandServe = "serve"
)

// Options holds what was requested on the command line. Empty string fields
// leave the loaded configuration untouched.
type Options struct {
	Command    string
	ConfigPath string
	Format     string
	Addr       string
	Verbose    bool
}

// Apply overlays the command line options onto cfg and re-validates it.
func (o *Options) Apply(cfg *config.Config) error {
	if o.Format != "" {
		cfg.Output.Format = o.Format
	}
	if o.Addr != "" {
		cfg.Server.Addr = o.Addr
	}
	if o.Verbose {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid command line: %w", err)
	}
	return nil
}

// ParseArgs parses args (without the program name). Command is left empty
// when only help or version output was requested.
func ParseArgs(args []string) (*Options, error) {
	buildInfo := build.GetBuildFlags()
	options := &Options{}

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         buildInfo.Description,
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			options.Command = CommandList
			return nil
		},
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   CommandList,
			Short: "Print the active audio endpoints once (default)",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				options.Command = CommandList
			},
		},
		&cobra.Command{
			Use:   CommandTUI,
			Short: "Browse the active audio endpoints interactively",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				options.Command = CommandTUI
			},
		},
		&cobra.Command{
			Use:   CommandServe,
			Short: "Answer endpoint requests from host applications over WebSocket",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				options.Command = CommandServe
			},
		},
	)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&options.ConfigPath, "config", "c", "",
		"Path to a YAML config file. Default is ./config.yaml when present")
	flags.StringVarP(&options.Format, "format", "f", "",
		"Output format for list: text or json")
	flags.StringVarP(&options.Addr, "addr", "a", "",
		"Listen address for serve, host:port")
	flags.BoolVarP(&options.Verbose, "verbose", "v", false,
		"Show verbose output")

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	return options, nil
}
