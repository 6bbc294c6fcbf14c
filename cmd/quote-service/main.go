package main

import (
	"fmt"
	"os"

	"github.com/casafacile/quote-service/internal/auth"
	"github.com/casafacile/quote-service/internal/config"
	"github.com/casafacile/quote-service/internal/db"
	"github.com/casafacile/quote-service/internal/excel"
	httphandler "github.com/casafacile/quote-service/internal/http"
	"github.com/casafacile/quote-service/internal/http/middleware"
	"github.com/casafacile/quote-service/internal/logger"
	"github.com/casafacile/quote-service/internal/pdf"
	"github.com/casafacile/quote-service/internal/repository"
	"github.com/casafacile/quote-service/internal/service"
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

	userRepo := repository.NewUserRepository(database)
	catalogRepo := repository.NewCatalogRepository(database)
	quoteRepo := repository.NewQuoteRepository(database)

	pdfGenerator, err := pdf.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}
	excelGenerator := excel.NewGenerator()

	issuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	authService := service.NewAuthService(userRepo, issuer)
	catalogService := service.NewCatalogService(catalogRepo)
	quoteService := service.NewQuoteService(catalogRepo, quoteRepo, userRepo, pdfGenerator, excelGenerator)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(authService, catalogService, quoteService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting quote service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
