package main

import (
	"context"
	"log"

	"trademini-be/internal/bootstrap"
	"trademini-be/internal/config"
	"trademini-be/internal/server"
	"trademini-be/internal/tracer"
	"trademini-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Broadcast Worker...")
		if err := container.BroadcastWorker.Consume(context.Background()); err != nil {
			log.Printf("Background Broadcast Worker Error: %v", err)
		}
	}()

	if err := container.EventTrail.Start(); err != nil {
		log.Printf("Background Event Trail Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
