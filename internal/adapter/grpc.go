// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/sealed-chat/internal/config"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ErrNoHealthEndpoint is returned when no gRPC address is configured.
var ErrNoHealthEndpoint = errors.New("gRPC address is not configured")

// HealthChecker asks the server whether it is serving.
type HealthChecker interface {
	// Check returns the serving status of service; "" asks about the
	// server as a whole.
	Check(ctx context.Context, service string) (string, error)
	Close() error
}

type grpcHealthChecker struct {
	conn   *grpc.ClientConn
	client healthpb.HealthClient
}

// NewGRPCHealthChecker connects lazily to adapterCfg.GRPCAddress; no network
// traffic happens before the first Check.
func NewGRPCHealthChecker(adapterCfg config.ClientAdapter, opts ...grpc.DialOption) (HealthChecker, error) {
	if adapterCfg.GRPCAddress == "" {
		return nil, ErrNoHealthEndpoint
	}

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(adapterCfg.GRPCAddress, opts...)
	if err != nil {
		return nil, fmt.Errorf("gRPC client for %s: %w", adapterCfg.GRPCAddress, err)
	}

	return &grpcHealthChecker{
		conn:   conn,
		client: healthpb.NewHealthClient(conn),
	}, nil
}

func (g *grpcHealthChecker) Check(ctx context.Context, service string) (string, error) {
	resp, err := g.client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return "", fmt.Errorf("health check: %w", err)
	}
	return resp.GetStatus().String(), nil
}

func (g *grpcHealthChecker) Close() error {
	return g.conn.Close()
}
