package services

import (
	"github.com/mailfold/mailfold/config"
	"github.com/mailfold/mailfold/interfaces"
	"github.com/mailfold/mailfold/internal/logger"
	"github.com/mailfold/mailfold/services/ai"
	"github.com/mailfold/mailfold/services/imap"
	"github.com/mailfold/mailfold/services/router"
)

type Services struct {
	IMAPService   interfaces.IMAPService
	AIService     interfaces.AIService
	RouterService interfaces.RouterService
}

func InitServices(cfg *config.Config, log logger.Logger) *Services {
	aiService := ai.NewAIService(cfg.AIConfig, log)

	return &Services{
		IMAPService:   imap.NewIMAPService(log),
		AIService:     aiService,
		RouterService: router.NewRouterService(cfg.RouterConfig, cfg.AppConfig.APIKey, aiService, log),
	}
}
