// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net"
	"testing"

	"github.com/MKhiriev/sealed-chat/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func TestGRPCHealthChecker(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	hs := health.NewServer()
	hs.SetServingStatus("chat", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(server, hs)
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	checker, err := NewGRPCHealthChecker(
		config.ClientAdapter{GRPCAddress: "passthrough:///bufnet"},
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = checker.Close() })

	status, err := checker.Check(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "SERVING", status)

	status, err = checker.Check(context.Background(), "chat")
	require.NoError(t, err)
	assert.Equal(t, "NOT_SERVING", status)

	_, err = checker.Check(context.Background(), "unknown")
	assert.Error(t, err)
}

func TestNewGRPCHealthChecker_NoAddress(t *testing.T) {
	_, err := NewGRPCHealthChecker(config.ClientAdapter{})
	assert.ErrorIs(t, err, ErrNoHealthEndpoint)
}
