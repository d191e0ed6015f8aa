package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ccaruso/gestion-ingresos/auth"
	"github.com/ccaruso/gestion-ingresos/internal/config"
	"github.com/ccaruso/gestion-ingresos/internal/db"
	"github.com/ccaruso/gestion-ingresos/internal/server"
	"github.com/joho/godotenv"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB migrations plus demo seed and exit")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	conn, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	if *migrateOnlyFlag || *seedOnlyFlag {
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
		if *seedOnlyFlag {
			if err := db.Seed(conn); err != nil {
				log.Fatalf("seed failed: %v", err)
			}
		}
		log.Println("done; exiting as requested")
		return
	}

	if cfg.Migrations {
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.Seed {
		if err := db.Seed(conn); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	google := auth.NewGoogleOAuth(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.BaseURL+"/auth/login/google/callback",
	)
	if !google.Configured() {
		log.Println("google oauth not configured; login will answer 503")
	}

	app := server.New(conn, google)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on %s env=%s", srv.Addr, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	log.Println("server stopped")
}
