// health_client calls the health service of example/health_server in a loop.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
)

var (
	address  = flag.String("address", "127.0.0.1:35001", "server address")
	count    = flag.Int("count", 100, "number of calls")
	interval = flag.Duration("interval", time.Second, "pause between calls")
)

func main() {
	flag.Parse()

	conn, err := grpc.Dial(*address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("grpc.Dial err: %v", err)
	}
	defer conn.Close()

	md := metadata.New(map[string]string{
		"testkey1": "testvalue1",
	})
	ctx := metadata.NewOutgoingContext(context.Background(), md)

	client := healthpb.NewHealthClient(conn)
	for i := 0; i < *count; i++ {
		callCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		resp, err := client.Check(callCtx, &healthpb.HealthCheckRequest{Service: "grpcsniff.example"})
		cancel()
		if err != nil {
			log.Fatalf("client.Check err: %v", err)
		}
		log.Println("resp:", resp.GetStatus())
		time.Sleep(*interval)
	}
}
