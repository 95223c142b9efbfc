package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"b24relay/internal/bitrix"
	"b24relay/internal/config"
	"b24relay/internal/credentials"
	"b24relay/internal/handlers"
	"b24relay/internal/logger"
	"b24relay/internal/middleware"
	"b24relay/internal/models"
	"b24relay/internal/repositories"
	"b24relay/internal/routes"
	"b24relay/internal/services"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env, "instance", cfg.Instance.Name)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := autoMigrate(gormDB); err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address, "webhook_path", cfg.Bot.Path)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Dialog{},
		&models.User{},
		&models.DialogParticipant{},
		&models.Message{},
		&models.EventLog{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	gateway := repositories.NewGormGateway(gormDB)
	credStore := credentials.NewStore(cfg.Instance.Dir)
	client := bitrix.NewClient()
	state := services.NewBotState(cfg.Instance.Dir)

	webhookService := services.NewWebhookService(gateway, credStore, client, cfg.Bot.Code, cfg.Bot.Name)
	dialogService := services.NewDialogService(gateway)

	appHandlers := &handlers.AppHandlers{
		Webhook: handlers.NewWebhookHandler(webhookService, state, cfg.Bot.Path),
		Dialog:  handlers.NewDialogHandler(dialogService),
		User:    handlers.NewUserHandler(dialogService),
		Admin:   handlers.NewAdminHandler(webhookService, state, cfg.Instance.Name, cfg.Bot.Code),
	}

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery(), middleware.RequestIDMiddleware(), middleware.LoggingMiddleware())

	routes.RegisterRoutes(ginRouter, appHandlers, cfg.API.SecretToken)
	return ginRouter
}
