package main

import (
	"fmt"
	"os"

	"github.com/minsu/procure-budget/internal/auth"
	"github.com/minsu/procure-budget/internal/config"
	"github.com/minsu/procure-budget/internal/db"
	"github.com/minsu/procure-budget/internal/excel"
	httphandler "github.com/minsu/procure-budget/internal/http"
	"github.com/minsu/procure-budget/internal/http/middleware"
	"github.com/minsu/procure-budget/internal/logger"
	"github.com/minsu/procure-budget/internal/pdf"
	"github.com/minsu/procure-budget/internal/repository"
	"github.com/minsu/procure-budget/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	projectRepo := repository.NewProjectRepository(database)
	poRepo := repository.NewPORepository(database)

	projectService := service.NewProjectService(projectRepo, poRepo)
	poService := service.NewPOService(projectRepo, poRepo, pdf.NewGenerator())
	reportService := service.NewReportService(projectRepo, poRepo, excel.NewGenerator())

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(projectService, poService, reportService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting budget service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
