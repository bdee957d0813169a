package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/middleware"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// 全ハンドラをまとめてDIするための入れ物
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Inventory *handler.InventoryHandler
	Category  *handler.CategoryHandler
	Supplier  *handler.SupplierHandler
	Order     *handler.OrderHandler
	Dashboard *handler.DashboardHandler
	AdminUser *handler.AdminUserHandler
}

// echoを組み立ててルートを登録する
func New(cfg config.Config, logger zerolog.Logger, userRepo repository.UserRepository, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))

	registerRoutes(e, cfg, userRepo, h)

	return e
}
