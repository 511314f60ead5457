package grpc

import (
	"net"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type App struct {
	srv    *grpc.Server
	health *health.Server
}

func NewGrpc() *App {
	server := &App{
		srv:    grpc.NewServer(),
		health: health.NewServer(),
	}

	grpc_health_v1.RegisterHealthServer(server.srv, server.health)
	server.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	if id := viper.GetString("id"); len(id) > 0 {
		server.health.SetServingStatus(id, grpc_health_v1.HealthCheckResponse_SERVING)
	}

	reflection.Register(server.srv)

	return server
}

func (v *App) Listen() error {
	listener, err := net.Listen("tcp", viper.GetString("grpc_bind"))
	if err != nil {
		return err
	}
	log.Info().Str("bind", listener.Addr().String()).Msg("gRPC server is listening...")
	return v.srv.Serve(listener)
}

// Stop flips every service to not serving before draining the connections.
func (v *App) Stop() {
	v.health.Shutdown()
	v.srv.GracefulStop()
}
