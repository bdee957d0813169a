package main

import (
	"os"

	"app/internal/gateway"
	"app/internal/middleware"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "gateway").Logger()

	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "*"
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{origin},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	h := gateway.NewHandler(gateway.NewSeededStore())
	h.RegisterRoutes(e)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	logger.Info().Str("port", port).Msg("starting gateway")
	if err := e.Start(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("gateway stopped")
	}
}
