// health_server answers gRPC health checks, giving grpcsniff some
// traffic to look at:
//
//	go run ./example/health_server
//	sudo grpcsniff --input-raw="lo:35001" --output-stdout
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"runtime/debug"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

var address = flag.String("address", "127.0.0.1:35001", "listen address")

func main() {
	flag.Parse()

	server := grpc.NewServer(
		grpc_middleware.WithUnaryServerChain(
			RecoveryInterceptor,
			LoggingInterceptor,
		),
	)

	hs := health.NewServer()
	hs.SetServingStatus("grpcsniff.example", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, hs)

	lis, err := net.Listen("tcp", *address)
	if err != nil {
		log.Fatalf("net.Listen err: %v", err)
	}
	log.Printf("listening on %v", lis.Addr())
	if err := server.Serve(lis); err != nil {
		log.Fatalf("server.Serve err: %v", err)
	}
}

func LoggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	resp, err := handler(ctx, req)
	log.Printf("gRPC method: %s, req: %v, resp: %v, err: %v", info.FullMethod, req, resp, err)
	return resp, err
}

func RecoveryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if e := recover(); e != nil {
			debug.PrintStack()
			err = status.Errorf(codes.Internal, "Panic err: %v", e)
		}
	}()

	return handler(ctx, req)
}
