package main

import (
	"context"
	"log"
	"net/http"
	"time"
	"trip-course-service/internal/api"
	"trip-course-service/internal/bootstrap"
	"trip-course-service/internal/config"
	"trip-course-service/internal/services"
)

// main is the application composition root.
// It wires the configured catalog and cache behind ports and starts the HTTP server.
func main() {
	if !config.LoadDotEnv() {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	catalog, err := bootstrap.OpenCatalog(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer catalog.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	tripCache, closeCache, err := bootstrap.OpenCache(ctx, cfg, catalog)
	cancel()
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	router := api.NewRouter(api.Deps{
		Planner:  services.NewPlanner(catalog),
		Catalog:  catalog,
		Cache:    tripCache,
		CacheTTL: cfg.CacheTTL,
	})

	log.Printf("Server listening addr=:%s catalog=%s cache=%s", cfg.Port, cfg.CatalogDriver, cfg.CacheBackend)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
