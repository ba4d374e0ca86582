package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"nemt-rides/internal/admin/api"
	"nemt-rides/internal/admin/app"
	"nemt-rides/internal/admin/repo"
	"nemt-rides/internal/shared/config"
	"nemt-rides/internal/shared/db"
	"nemt-rides/internal/shared/middleware"
	"nemt-rides/internal/shared/query"
	"nemt-rides/internal/shared/util"
)

func main() {
	log := util.New()

	log.Info("AdminService", "Starting service initialization...")

	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatal("Config", err)
	}
	log.OK("Config", "Configuration loaded successfully")

	dbConn, err := db.ConnectToDB(&cfg.Database)
	if err != nil {
		log.Fatal("Database", err)
	}
	defer dbConn.Close()
	log.OK("Database", "Connected successfully")

	pager := query.Pager{
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
	}

	repository := repo.NewAdminRepo(dbConn)
	service := app.NewAdminService(repository, pager)
	handler := api.NewHandler(service, cfg.Auth.JWTSecret)

	mux := handler.RegisterRoutes(dbConn)

	server := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: middleware.RequestID(mux),
	}

	go func() {
		log.OK("HTTP", "admin-service running on :"+cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("AdminService", "Shutting down admin-service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP", err)
	} else {
		log.OK("HTTP", "Server stopped gracefully")
	}

	log.Info("AdminService", "Shutdown complete")
}
