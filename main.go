// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"audioendpoints/cmd"
	"audioendpoints/internal/config"
	applog "audioendpoints/internal/log"
	"audioendpoints/pkg/build"
)

// main is the entry point for the audio endpoint lister.
//
// 1. Startup:
//   - Load build information
//   - Parse command line arguments
//   - Load configuration and apply command line overrides
//
// 2. Run the selected command (list, tui or serve). serve blocks until
// SIGINT or SIGTERM.
//
// 3. Shutdown: the endpoint enumerator is released by the command.
func main() {
	// Development builds have no ldflags; report that once logging is set up.
	buildErr := build.Initialize()

	opts, err := cmd.ParseArgs(os.Args[1:])
	if err != nil {
		applog.Fatal(err)
	}

	// Help or version output only.
	if opts.Command == "" {
		return
	}

	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		applog.Fatal(err)
	}
	if err := opts.Apply(cfg); err != nil {
		applog.Fatal(err)
	}
	applog.SetLevel(cfg.Level())

	if buildErr != nil {
		applog.Debugf("build: using development build information: %v", buildErr)
	}
	applog.Debugf("build: %s", build.GetBuildFlags())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = cmd.Execute(ctx, opts, cfg, os.Stdout)
	stop()
	if err != nil {
		applog.Fatal(err)
	}
}
