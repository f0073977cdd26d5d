package main

import (
	"context"
	"log"

	"ai-study-assistant-be/internal/bootstrap"
	"ai-study-assistant-be/internal/config"
	"ai-study-assistant-be/internal/server"
	"ai-study-assistant-be/internal/tracer"
)

func main() {
	// 1. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
