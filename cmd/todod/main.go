package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nhle/todoist/internal/config"
	"github.com/nhle/todoist/internal/httpapi"
	"github.com/nhle/todoist/internal/store"
	"github.com/nhle/todoist/internal/todo"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	st, err := store.NewSQLiteStore(cfg.Server.DBPath)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer st.Close()

	svc := todo.NewService(st)
	requestTimeout := time.Duration(cfg.Server.RequestTimeoutSec) * time.Second
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.NewServer(svc, log.Default(), requestTimeout),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Root context cancelled on SIGINT/SIGTERM.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-rootCtx.Done()
	log.Printf("shutdown signal received")

	// Stop accepting new requests; wait for in-flight with timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
}
