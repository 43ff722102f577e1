// SPDX-License-Identifier: MIT
package cmd

import (
	"context"
	"fmt"
	"io"

	"audioendpoints/internal/audio"
	"audioendpoints/internal/config"
	applog "audioendpoints/internal/log"
	"audioendpoints/internal/transport"
	"audioendpoints/internal/tui"
)

// endpointSource is an EndpointSource that holds platform resources.
type endpointSource interface {
	transport.EndpointSource
	Close() error
}

// openSource acquires the endpoint enumerator. Tests replace it.
var openSource = func() (endpointSource, error) {
	return audio.NewEnumerator()
}

// newOutput creates the transport list prints through. Tests replace it.
var newOutput = func(w io.Writer, format string) (transport.Transport, error) {
	return transport.NewWriterTransport(w, format)
}

// startUI runs the interactive list. Tests replace it.
var startUI = tui.StartEndpointListUI

// Execute runs the command selected in opts. serve blocks until ctx is done.
func Execute(ctx context.Context, opts *Options, cfg *config.Config, stdout io.Writer) (err error) {
	switch opts.Command {
	case CommandList, CommandTUI, CommandServe:
	default:
		return fmt.Errorf("unknown command %q", opts.Command)
	}

	source, err := openSource()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := source.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	switch opts.Command {
	case CommandTUI:
		return startUI(source)
	case CommandServe:
		return serve(ctx, cfg.Server, source)
	default:
		return list(cfg.Output, source, stdout)
	}
}

func list(cfg config.OutputConfig, source transport.EndpointSource, stdout io.Writer) error {
	out, err := newOutput(stdout, cfg.Format)
	if err != nil {
		return err
	}
	defer out.Close()

	endpoints, err := source.EnumerateEndpoints()
	if err != nil {
		return err
	}
	applog.Debugf("list: %d active endpoints", len(endpoints))
	return out.Send(endpoints)
}

func serve(ctx context.Context, cfg config.ServerConfig, source transport.EndpointSource) error {
	server := transport.NewWebSocketServer(cfg, source)
	if err := server.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	applog.Infof("serve: shutting down")
	return server.Close()
}
