package main

import (
	"context"
	"log"

	"eshika-chat/config"
	"eshika-chat/internal/gateway"
	"eshika-chat/internal/handler"
	"eshika-chat/internal/repository"
	"eshika-chat/internal/server"
	"eshika-chat/internal/services"
	"eshika-chat/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.AppMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	ctx := context.Background()

	userRepo, err := repository.New(ctx, cfg, l)
	if err != nil {
		log.Fatalf("Failed to open user store (%s): %v", cfg.StoreDriver, err)
	}
	defer userRepo.Close()

	verifier, err := services.NewCredentialVerifier(cfg.PasswordScheme)
	if err != nil {
		log.Fatalf("Invalid password scheme: %v", err)
	}

	var gen gateway.Generator
	if cfg.GeminiAPIKey != "" {
		genaiGen, err := gateway.NewGenAIGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiBaseURL)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		gen = genaiGen
	} else {
		l.Warnf("GEMINI_API_KEY is not set; chat replies will report a configuration error")
	}

	system := gateway.DefaultSystemConfig()
	system.BotName = cfg.BotName
	system.DefaultLanguage = cfg.DefaultLanguage
	gw := gateway.New(gen, gateway.Config{
		System:       system,
		DefaultModel: cfg.GeminiModel,
		Timeout:      cfg.GeminiTimeout,
	}, l)

	authService := services.NewAuthService(userRepo, verifier, l)
	chatService := services.NewChatService(userRepo, gw, l)
	historyService := services.NewHistoryService(userRepo)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		History: handler.NewHistoryHandler(historyService, chatService),
		Chat:    handler.NewChatHandler(chatService),
	}, userRepo)

	l.Infof("%s is active (store=%s, model=%s)", cfg.BotName, cfg.StoreDriver, cfg.GeminiModel)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
