package main

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// arenaService is the health service name reported while matches are running.
const arenaService = "halite.Arena"

// healthServer exposes the standard gRPC health service so supervisors can tell a running
// arena from a stuck one. A nil *healthServer is valid and does nothing.
type healthServer struct {
	server *grpc.Server
	health *health.Server
	lis    net.Listener
}

func startHealthServer(addr string) (*healthServer, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}

	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			loggingInterceptor,
			recoveryInterceptor,
		),
		grpc.ChainStreamInterceptor(
			streamLoggingInterceptor,
			streamRecoveryInterceptor,
		),
	)

	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, hs)
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	hs.SetServingStatus(arenaService, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	reflection.Register(server)

	go func() {
		if err := server.Serve(lis); err != nil {
			log.Error().Err(err).Msg("Health endpoint stopped")
		}
	}()
	log.Info().Str("address", lis.Addr().String()).Msg("gRPC health endpoint listening")

	return &healthServer{server: server, health: hs, lis: lis}, nil
}

func (h *healthServer) Addr() string {
	if h == nil {
		return ""
	}
	return h.lis.Addr().String()
}

// SetServing reports whether matches are being played.
func (h *healthServer) SetServing(serving bool) {
	if h == nil {
		return
	}
	st := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		st = grpc_health_v1.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus(arenaService, st)
}

func (h *healthServer) Stop() {
	if h == nil {
		return
	}
	h.health.Shutdown()
	h.server.GracefulStop()
}

// loggingInterceptor logs all unary RPC calls
func loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	log.Debug().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("gRPC call")

	return resp, err
}

// recoveryInterceptor catches panics and returns proper gRPC errors
func recoveryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("method", info.FullMethod).
				Interface("panic", r).
				Msg("Recovered from panic in gRPC handler")
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()

	return handler(ctx, req)
}

// streamLoggingInterceptor logs streaming RPCs such as health Watch
func streamLoggingInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	err := handler(srv, ss)

	log.Debug().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("gRPC stream")

	return err
}

func streamRecoveryInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("method", info.FullMethod).
				Interface("panic", r).
				Msg("Recovered from panic in gRPC stream handler")
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()

	return handler(srv, ss)
}
