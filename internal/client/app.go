// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/sealed-chat/internal/adapter"
	"github.com/MKhiriev/sealed-chat/internal/config"
	"github.com/MKhiriev/sealed-chat/internal/crypto"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/service"
	"github.com/MKhiriev/sealed-chat/internal/store"
	"github.com/MKhiriev/sealed-chat/models"
)

// App runs client commands on top of the client services.
type App struct {
	services *service.ClientServices
	health   adapter.HealthChecker

	out io.Writer
	in  io.Reader

	logger *logger.Logger
}

// NewApp wires the client services from cfg. The gRPC health checker is
// optional; without a gRPC address the ping command reports an error.
func NewApp(cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	sessions, err := store.NewFileSessionStore(cfg.App.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("open session file: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	deriver, err := crypto.NewWrappingKeyDeriver(cfg.App.WrapDerivation)
	if err != nil {
		return nil, fmt.Errorf("create key deriver: %w", err)
	}

	health, err := adapter.NewGRPCHealthChecker(cfg.Adapter)
	if err != nil && !errors.Is(err, adapter.ErrNoHealthEndpoint) {
		return nil, fmt.Errorf("create health checker: %w", err)
	}

	services := service.NewClientServices(sessions, serverAdapter, crypto.NewChatCryptoService(deriver), *cfg, logger)

	return newApp(services, health, os.Stdout, os.Stdin, logger), nil
}

func newApp(services *service.ClientServices, health adapter.HealthChecker, out io.Writer, in io.Reader, logger *logger.Logger) *App {
	return &App{
		services: services,
		health:   health,
		out:      out,
		in:       in,
		logger:   logger,
	}
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetIn(a.in)

	return root.ExecuteContext(ctx)
}

// Close releases the connections held by the app.
func (a *App) Close() error {
	if a.health == nil {
		return nil
	}
	return a.health.Close()
}

// session restores the logged in user. Every command except register,
// login and ping needs one.
func (a *App) session(ctx context.Context) (models.Session, error) {
	session, err := a.services.AuthService.Restore(ctx)
	if err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			return models.Session{}, errors.New("not logged in, run `login` first")
		}
		return models.Session{}, err
	}
	return session, nil
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}
