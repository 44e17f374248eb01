// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
	"time"
)

const (
	defaultTokenIssuer       = "sealed-chat"
	defaultTokenDuration     = 24 * time.Hour
	defaultWrapDerivation    = "hkdf"
	defaultHTTPAddress       = "localhost:8080"
	defaultGRPCAddress       = "localhost:9090"
	defaultRequestTimeout    = 30 * time.Second
	defaultChunkTTL          = 24 * time.Hour
	defaultSweepInterval     = 10 * time.Minute
	defaultUploadConcurrency = 4
)

var wrapDerivations = []string{"legacy", "hkdf", "argon2id"}

func (cfg *StructuredConfig) setDefaults() {
	setDefault(&cfg.App.TokenIssuer, defaultTokenIssuer)
	setDefault(&cfg.App.TokenDuration, defaultTokenDuration)
	setDefault(&cfg.App.WrapDerivation, defaultWrapDerivation)
	setDefault(&cfg.Storage.ChunkTTL, defaultChunkTTL)
	setDefault(&cfg.Server.HTTPAddress, defaultHTTPAddress)
	setDefault(&cfg.Server.GRPCAddress, defaultGRPCAddress)
	setDefault(&cfg.Server.RequestTimeout, defaultRequestTimeout)
	setDefault(&cfg.Adapter.HTTPAddress, defaultHTTPAddress)
	setDefault(&cfg.Adapter.GRPCAddress, defaultGRPCAddress)
	setDefault(&cfg.Adapter.RequestTimeout, defaultRequestTimeout)
	setDefault(&cfg.Workers.SweepInterval, defaultSweepInterval)
	setDefault(&cfg.Workers.UploadConcurrency, defaultUploadConcurrency)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

// validate checks that the final merged [StructuredConfig] can start the
// server.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.PasswordHashKey == "" || cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}
	if !slices.Contains(wrapDerivations, cfg.App.WrapDerivation) {
		return fmt.Errorf("%w: unknown wrap derivation %q", ErrInvalidAppConfigs, cfg.App.WrapDerivation)
	}

	hasDB := cfg.Storage.DB.DSN != ""
	hasFirestore := cfg.Storage.Firestore.ProjectID != ""
	if hasDB == hasFirestore {
		return fmt.Errorf("%w: exactly one of database DSN and firestore project must be set", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.ChunkTTL <= 0 {
		return fmt.Errorf("%w: chunk ttl must be positive", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.SweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.UploadConcurrency < 1 {
		return ErrInvalidWorkerConfigs
	}

	if !slices.Contains(wrapDerivations, cfg.App.WrapDerivation) || cfg.App.SessionFile == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
