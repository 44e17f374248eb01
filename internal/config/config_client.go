// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// WrapDerivation is the wrapping key derivation scheme.
	WrapDerivation string
	// SessionFile stores the token of the logged in user.
	SessionFile string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the HTTP endpoint address used by the client.
	HTTPAddress string
	// GRPCAddress is the gRPC endpoint used for health checks.
	GRPCAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientWorkers contains client concurrency settings.
type ClientWorkers struct {
	// UploadConcurrency bounds parallel chunk uploads.
	UploadConcurrency int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view.
//
// Command-line flags belong to the CLI, so only the environment and the JSON
// file named by CONFIG are consulted.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSON().
		merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}
	cfg.setDefaults()

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	sessionFile := cfg.App.SessionFile
	if sessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("error resolving home directory: %w", err)
		}
		sessionFile = filepath.Join(home, ".sealed-chat", "session.json")
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			WrapDerivation: cfg.App.WrapDerivation,
			SessionFile:    sessionFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			GRPCAddress:    cfg.Adapter.GRPCAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Workers: ClientWorkers{
			UploadConcurrency: cfg.Workers.UploadConcurrency,
		},
	}

	return clientCfg, clientCfg.validate()
}
