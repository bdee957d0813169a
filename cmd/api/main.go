package main

import (
	"os"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	//.envはローカル開発用。無くても環境変数があれば動く
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "api").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}

	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.Supplier{},
		&model.SupplierProduct{},
		&model.InventoryItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.User{},
		&model.RefreshToken{},
		&model.AuditLog{},
	); err != nil {
		logger.Fatal().Err(err).Msg("auto migrate failed")
	}

	//Repository（GORM実装）生成
	itemRepo := infraRepo.NewInventoryItemGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	supplierRepo := infraRepo.NewSupplierGormRepository(gormDB)
	supplierProductRepo := infraRepo.NewSupplierProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authValidator := validator.NewAuthValidator(userRepo)
	inventoryUC := usecase.NewInventoryUsecase(itemRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	supplierUC := usecase.NewSupplierUsecase(supplierRepo, supplierProductRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo)
	dashboardUC := usecase.NewDashboardUsecase(itemRepo, orderRepo, supplierRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, auditRepo, authValidator)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, auditRepo, authValidator)

	//Handler生成
	handlers := server.Handlers{
		Health:    handler.NewHealthHandler(),
		Auth:      handler.NewAuthHandler(authUC, cfg),
		Inventory: handler.NewInventoryHandler(inventoryUC),
		Category:  handler.NewCategoryHandler(categoryUC),
		Supplier:  handler.NewSupplierHandler(supplierUC),
		Order:     handler.NewOrderHandler(orderUC),
		Dashboard: handler.NewDashboardHandler(dashboardUC),
		AdminUser: handler.NewAdminUserHandler(cfg, userRepo, adminUserUC),
	}

	e := server.New(cfg, logger, userRepo, handlers)

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
