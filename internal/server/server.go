// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/sealed-chat/internal/config"
	"github.com/MKhiriev/sealed-chat/internal/handler"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"golang.org/x/sync/errgroup"
)

// errNoTransports is returned when neither an HTTP nor a gRPC address is
// configured.
var errNoTransports = errors.New("no transport configured: set the HTTP or the gRPC address")

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer

	// listening is closed once every transport is bound.
	listening    chan struct{}
	shutdownOnce sync.Once

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{listening: make(chan struct{}), logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoTransports
	}

	return servers, nil
}

// RunServer binds every transport first, so a busy port fails fast, and then
// serves until ctx is done or one of the transports stops with an error.
func (s *server) RunServer(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.listen(); err != nil {
			return err
		}
	}
	if s.gRPCServer != nil {
		if err := s.gRPCServer.listen(); err != nil {
			if s.httpServer != nil {
				_ = s.httpServer.listener.Close()
			}
			return err
		}
	}

	close(s.listening)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// a transport that stops for any reason takes the others down with it
	serve := func(run func() error) func() error {
		return func() error {
			defer cancel()
			return run()
		}
	}

	if s.httpServer != nil {
		s.logger.Info().Msg("launching HTTP server")
		g.Go(serve(s.httpServer.RunServer))
	}
	if s.gRPCServer != nil {
		s.logger.Info().Msg("launching gRPC server")
		g.Go(serve(s.gRPCServer.RunServer))
	}

	g.Go(func() error {
		<-ctx.Done()
		s.Shutdown()
		return nil
	})

	err := g.Wait()
	s.logger.Info().Msg("server shut down gracefully")

	return err
}

func (s *server) Shutdown() {
	s.shutdownOnce.Do(func() {
		if s.gRPCServer != nil {
			s.gRPCServer.Shutdown()
		}
		if s.httpServer != nil {
			s.httpServer.Shutdown()
		}
	})
}
