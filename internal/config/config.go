// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// sealed-chat server and client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as secret keys, token
	// parameters and the wrapping key derivation scheme.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the persistence backends: a SQL
	// database or Firestore.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background workers and bounded
	// concurrency.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// PasswordHashKey is the secret key used when hashing user passwords
	// with HMAC-SHA256.
	// Env: APP_PASSWORD_HASH_KEY
	PasswordHashKey string `env:"PASSWORD_HASH_KEY"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the version string reported by GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// WrapDerivation selects how per-user wrapping keys are derived on the
	// client: "legacy", "hkdf" or "argon2id".
	// Env: APP_WRAP_DERIVATION
	WrapDerivation string `env:"WRAP_DERIVATION"`

	// SessionFile is where the client keeps the token of the logged in user
	// between invocations.
	// Env: APP_SESSION_FILE
	SessionFile string `env:"SESSION_FILE"`
}

// Storage groups the configuration for all storage backends. Exactly one of
// DB.DSN and Firestore.ProjectID is expected to be set on the server.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Firestore holds the document store settings.
	Firestore Firestore `envPrefix:"FIRESTORE_"`

	// ChunkTTL is how long an unreferenced chunk set is kept before the
	// sweeper deletes it.
	// Env: STORAGE_CHUNK_TTL
	ChunkTTL time.Duration `env:"CHUNK_TTL"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is a PostgreSQL URL ("postgres://...") or a SQLite file path
	// ("file:chat.db", "sqlite://chat.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Firestore holds connection settings for the Firestore backend.
type Firestore struct {
	// ProjectID is the Google Cloud project.
	// Env: STORAGE_FIRESTORE_PROJECT_ID
	ProjectID string `env:"PROJECT_ID"`

	// CredentialsFile is an optional service account key file. When empty
	// application default credentials (or FIRESTORE_EMULATOR_HOST) are used.
	// Env: STORAGE_FIRESTORE_CREDENTIALS_FILE
	CredentialsFile string `env:"CREDENTIALS_FILE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP server ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health server.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the address of the server the client talks to.
type Adapter struct {
	// HTTPAddress is the server HTTP address, with or without scheme.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the server gRPC address used for health checks.
	// Env: ADAPTER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background work.
type Workers struct {
	// SweepInterval is how often the orphan chunk sweeper runs.
	// Env: WORKERS_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`

	// UploadConcurrency bounds the number of chunk uploads in flight.
	// Env: WORKERS_UPLOAD_CONCURRENCY
	UploadConcurrency int `env:"UPLOAD_CONCURRENCY"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
