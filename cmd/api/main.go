package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"

	"github.com/grupovitalis/connect-api/internal/core/audit"
	"github.com/grupovitalis/connect-api/internal/core/call"
	"github.com/grupovitalis/connect-api/internal/core/channel"
	"github.com/grupovitalis/connect-api/internal/core/llm"
	"github.com/grupovitalis/connect-api/internal/core/maintenance"
	"github.com/grupovitalis/connect-api/internal/core/sync"
	"github.com/grupovitalis/connect-api/internal/core/upload"
	"github.com/grupovitalis/connect-api/internal/modules/connect/handlers"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
	"github.com/grupovitalis/connect-api/internal/modules/connect/services"
	"github.com/grupovitalis/connect-api/internal/shared/config"
	"github.com/grupovitalis/connect-api/internal/shared/database"
	"github.com/grupovitalis/connect-api/internal/shared/utils"

	_ "github.com/grupovitalis/connect-api/cmd/api/docs"
)

// @title Connect API
// @version 1.0
// @description API de atendimento e funil de vendas do Grupo Vitalis
// @contact.name Suporte
// @contact.email suporte@grupovitalis.com.br
// @host localhost:8080
// @BasePath /api
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Printf("🚀 Starting connect-api on port %s", cfg.Port)

	// Init database
	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	// Init repositories (use GORM instance; API keys run raw SQL)
	patientRepo := repositories.NewPatientRepo(db.GORM)
	conversationRepo := repositories.NewConversationRepo(db.GORM)
	messageRepo := repositories.NewMessageRepo(db.GORM)
	callRepo := repositories.NewCallRepo(db.GORM)
	leadRepo := repositories.NewLeadRepo(db.GORM)
	favoriteRepo := repositories.NewFavoriteRepo(db.GORM)
	webhookRepo := repositories.NewWebhookRepo(db.GORM)
	attendantRepo := repositories.NewAttendantRepo(db.GORM)
	sectorRepo := repositories.NewSectorRepo(db.GORM)
	unitRepo := repositories.NewUnitRepo(db.GORM)
	profileRepo := repositories.NewAccessProfileRepo(db.GORM)
	apiKeyRepo := repositories.NewAPIKeyRepo(db.DB)

	// Init core services
	auditService := audit.NewService(db.GORM)
	llmService := llm.NewService()
	uploadService := upload.NewService()
	channelService := channel.NewService(cfg.ChannelStoreURL)
	hub := sync.NewHub()

	log.Printf("📱 Using channel provider: %s", channelService.GetProviderName())
	log.Printf("🤖 Using LLM provider: %s", llmService.GetProviderName())

	// In-memory call sessions: one slot per attendant, synthesized ringback
	// since the server has no audio device
	callSessions := call.NewRegistry(&call.RingerFactory{
		Fallback: func() call.Ringer { return call.NewTwoToneRinger(call.DiscardToneOutput{}) },
	})
	defer callSessions.Close()

	// Init domain services
	dispatcher := services.NewWebhookDispatcher(webhookRepo)
	conversationService := services.NewConversationService(conversationRepo, messageRepo, patientRepo, hub, dispatcher, channelService)
	callService := services.NewCallService(callRepo, conversationRepo, dispatcher, callSessions)
	leadService := services.NewLeadService(leadRepo, dispatcher, auditService)
	favoritesService := services.NewFavoritesService(favoriteRepo, messageRepo)
	aiService := services.NewAIService(llmService, messageRepo, leadRepo, conversationRepo, uploadService)
	apiKeyService := services.NewAPIKeyService(apiKeyRepo)

	// Connect the messaging channel and route inbound messages into the inbox
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := channelService.Connect(); err != nil {
		log.Printf("⚠️ Channel not connected: %v", err)
	} else {
		channelService.StartKeepAlive(ctx)
	}
	defer channelService.Disconnect()

	if cfg.ChannelTenantID != "" {
		channelTenant, err := uuid.Parse(cfg.ChannelTenantID)
		if err != nil {
			log.Fatalf("❌ Invalid CHANNEL_TENANT_ID: %v", err)
		}
		if err := channelService.SetMessageHandler(func(msg channel.InboundMessage) {
			if err := conversationService.HandleInbound(channelTenant, msg); err != nil {
				log.Printf("⚠️ Failed to handle inbound message from %s: %v", msg.Phone, err)
			}
		}); err != nil {
			log.Printf("⚠️ Failed to register inbound handler: %v", err)
		}
	} else {
		log.Println("⚠️ CHANNEL_TENANT_ID not set, inbound channel messages will be dropped")
	}

	// Init maintenance cron (delivery purge, stale call sweep, audit retention)
	scheduler := maintenance.NewScheduler(callRepo, webhookRepo, auditService)
	scheduler.Start()
	defer scheduler.Stop()

	// Init handlers
	healthHandler := handlers.NewHealthHandler(channelService)
	conversationHandler := handlers.NewConversationHandler(conversationService)
	callHandler := handlers.NewCallHandler(callService)
	leadHandler := handlers.NewLeadHandler(leadService)
	aiHandler := handlers.NewAIHandler(aiService)
	favoritesHandler := handlers.NewFavoritesHandler(favoritesService)
	channelHandler := handlers.NewChannelHandler(channelService)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	patientHandler := handlers.NewPatientHandler(patientRepo)
	attendantHandler := handlers.NewAttendantHandler(attendantRepo)
	adminHandler := handlers.NewAdminHandler(sectorRepo, unitRepo, profileRepo)
	webhookHandler := handlers.NewWebhookHandler(webhookRepo)
	apiKeyHandler := handlers.NewAPIKeyHandler(apiKeyService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Connect API",
	})

	// Middleware
	app.Use(cors.New())
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		utils.LogRequest(c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Everything else requires a tenant API key
	api := app.Group("/api", handlers.APIKeyAuth(apiKeyService))

	// Conversation routes
	api.Post("/conversations", conversationHandler.Open)
	api.Get("/conversations/:id", conversationHandler.Get)
	api.Get("/conversations/:id/mensagens", conversationHandler.ListMessages)
	api.Get("/conversations/:id/mensagens/sync", conversationHandler.SyncMessages)
	api.Post("/conversations/:id/mensagens", conversationHandler.SendMessage)
	api.Put("/conversations/:id/atendente", conversationHandler.AssignAttendant)

	// Call routes
	api.Post("/calls", callHandler.Start)
	api.Get("/calls/:id", callHandler.Get)
	api.Put("/calls/:id/status", callHandler.UpdateStatus)

	// Lead funnel routes
	api.Post("/leads", leadHandler.Open)
	api.Get("/leads", leadHandler.List)
	api.Get("/leads/:id", leadHandler.Get)
	api.Post("/leads/:id/ganho", leadHandler.Win)
	api.Post("/leads/:id/perdido", leadHandler.Lose)
	api.Post("/leads/:id/reabrir", leadHandler.Reopen)

	// AI assist routes
	api.Post("/ai/intencao", aiHandler.AnalyzeIntent)
	api.Post("/ai/sugestoes", aiHandler.SuggestReplies)
	api.Post("/ai/previsao", aiHandler.ForecastLead)
	api.Post("/ai/imagem", aiHandler.GenerateImage)

	// Favorite message routes
	api.Post("/favoritos", favoritesHandler.Favorite)
	api.Delete("/favoritos/:attendantId/:messageId", favoritesHandler.Unfavorite)
	api.Get("/favoritos/:attendantId", favoritesHandler.List)

	// Channel routes
	api.Get("/channel/qr", channelHandler.QR)
	api.Get("/channel/status", channelHandler.Status)
	api.Post("/channel/session/start", channelHandler.StartSession)
	api.Post("/channel/session/stop", channelHandler.StopSession)

	// Upload routes
	api.Post("/uploads", uploadHandler.Upload)
	api.Delete("/uploads/*", uploadHandler.Delete)

	// Patient routes
	api.Post("/patients", patientHandler.Create)
	api.Get("/patients", patientHandler.List)
	api.Get("/patients/:id", patientHandler.Get)
	api.Put("/patients/:id", patientHandler.Update)
	api.Post("/patients/:id/notas", patientHandler.AddNote)
	api.Get("/patients/:id/notas", patientHandler.ListNotes)
	api.Post("/patients/:id/etiquetas", patientHandler.AddTag)
	api.Get("/patients/:id/etiquetas", patientHandler.ListTags)
	api.Delete("/patients/:id/etiquetas/:tagId", patientHandler.RemoveTag)

	// Attendant routes
	api.Post("/attendants", attendantHandler.Create)
	api.Get("/attendants", attendantHandler.List)
	api.Get("/attendants/:id", attendantHandler.Get)
	api.Put("/attendants/:id", attendantHandler.Update)
	api.Delete("/attendants/:id", attendantHandler.Deactivate)

	// Organization routes
	api.Post("/sectors", adminHandler.CreateSector)
	api.Get("/sectors", adminHandler.ListSectors)
	api.Put("/sectors/:id", adminHandler.UpdateSector)
	api.Delete("/sectors/:id", adminHandler.DeleteSector)
	api.Post("/units", adminHandler.CreateUnit)
	api.Get("/units", adminHandler.ListUnits)
	api.Put("/units/:id", adminHandler.UpdateUnit)
	api.Delete("/units/:id", adminHandler.DeleteUnit)
	api.Post("/access-profiles", adminHandler.CreateAccessProfile)
	api.Get("/access-profiles", adminHandler.ListAccessProfiles)
	api.Put("/access-profiles/:id", adminHandler.UpdateAccessProfile)
	api.Delete("/access-profiles/:id", adminHandler.DeleteAccessProfile)

	// Webhook subscription routes
	api.Post("/webhooks", webhookHandler.Create)
	api.Get("/webhooks", webhookHandler.List)
	api.Put("/webhooks/:id", webhookHandler.Update)
	api.Delete("/webhooks/:id", webhookHandler.Delete)

	// API key routes
	api.Post("/api-keys", apiKeyHandler.Generate)
	api.Get("/api-keys", apiKeyHandler.List)
	api.Delete("/api-keys/:id", apiKeyHandler.Revoke)

	// Audit routes
	api.Get("/audit-logs", auditHandler.List)
	api.Get("/audit-logs/:entity/:entityId", auditHandler.EntityHistory)

	// Graceful shutdown: stop accepting requests, then let in-flight
	// webhook deliveries finish.
	go func() {
		<-ctx.Done()
		log.Println("🛑 Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Shutdown error: %v", err)
		}
	}()

	log.Printf("✅ connect-api running at :%s", cfg.Port)
	log.Printf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}

	dispatcher.Wait()
	log.Println("👋 connect-api stopped")
}
