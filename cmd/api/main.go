package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leadpilot/leadpilot/internal/infra/ai"
	"github.com/leadpilot/leadpilot/internal/infra/database"
	"github.com/leadpilot/leadpilot/internal/infra/http/handlers"
	"github.com/leadpilot/leadpilot/internal/infra/http/middleware"
	"github.com/leadpilot/leadpilot/internal/infra/integration/apollo"
	"github.com/leadpilot/leadpilot/internal/infra/integration/paystack"
	"github.com/leadpilot/leadpilot/internal/infra/mail"
	"github.com/leadpilot/leadpilot/internal/infra/queue"
	"github.com/leadpilot/leadpilot/internal/infra/worker"
	"github.com/leadpilot/leadpilot/internal/retry"
	"github.com/leadpilot/leadpilot/internal/usecase"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		env("RABBITMQ_USER", "guest"),
		env("RABBITMQ_PASS", "guest"),
		env("RABBITMQ_HOST", "localhost"),
		env("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	userRepo := database.NewUserRepository(db)
	leadRepo := database.NewLeadRepository(db)
	campaignRepo := database.NewCampaignRepository(db)
	emailCampaignRepo := database.NewEmailCampaignRepository(db)
	outreachLogRepo := database.NewOutreachLogRepository(db)
	emailLogRepo := database.NewEmailLogRepository(db)
	notificationRepo := database.NewNotificationRepository(db)
	followUpRepo := database.NewFollowUpRepository(db)

	// Gateways and adapters
	apolloClient := apollo.NewClient(os.Getenv("APOLLO_URL"))
	paystackClient := paystack.NewClient(os.Getenv("PAYSTACK_SECRET_KEY"), os.Getenv("PAYSTACK_URL"))
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"), os.Getenv("MAIL_FROM"),
	)
	var drafter usecase.MessageDrafter
	if generator, err := ai.NewGenerator(os.Getenv("OPENAI_API_KEY")); err != nil {
		log.Printf("[AI] drafting disabled: %v", err)
	} else {
		drafter = generator
	}

	// Workers
	notificationWorker := queue.NewWorker(rabbitMQ.Ch, notificationRepo, userRepo, mailSender)
	go notificationWorker.Start(queue.QueueName)

	followUpWorker := worker.NewFollowUpWorker(db, followUpRepo, apolloClient, producer)
	go followUpWorker.Start(context.Background())

	// Use cases
	uploadUC := usecase.NewUploadLeadsUseCase(campaignRepo, leadRepo)
	enrichUC := usecase.NewEnrichLeadUseCase(leadRepo, apolloClient, producer, usecase.NewEnrichmentCache(), retry.DefaultEnrichment())
	assignUC := usecase.NewAssignLeadsUseCase(campaignRepo, leadRepo, producer)
	updateLeadUC := usecase.NewUpdateLeadUseCase(leadRepo, producer)
	sendUC := usecase.NewSendEmailCampaignUseCase(emailCampaignRepo, leadRepo, emailLogRepo, followUpRepo, apolloClient, producer, retry.DefaultDispatch())
	updateCampaignUC := usecase.NewUpdateCampaignUseCase(campaignRepo)
	deleteCampaignUC := usecase.NewDeleteCampaignUseCase(campaignRepo)
	updateEmailCampaignUC := usecase.NewUpdateEmailCampaignUseCase(emailCampaignRepo)
	deleteEmailCampaignUC := usecase.NewDeleteEmailCampaignUseCase(emailCampaignRepo)
	usageUC := usecase.NewUsageUseCase(leadRepo, notificationRepo, producer)
	applySubUC := usecase.NewApplySubscriptionUseCase(userRepo, producer)
	generateUC := usecase.NewGenerateMessageUseCase(drafter)

	// Handlers
	leadHandler := handlers.NewLeadHandler(leadRepo, uploadUC, enrichUC, assignUC, updateLeadUC)
	campaignHandler := handlers.NewCampaignHandler(campaignRepo, leadRepo, updateCampaignUC, deleteCampaignUC)
	emailCampaignHandler := handlers.NewEmailCampaignHandler(
		emailCampaignRepo, emailLogRepo, leadRepo, followUpRepo,
		sendUC, updateEmailCampaignUC, deleteEmailCampaignUC,
	)
	subscriptionHandler := handlers.NewSubscriptionHandler(userRepo, paystackClient, usageUC)
	webhookHandler := handlers.NewWebhookHandler(paystackClient, applySubUC)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	activityHandler := handlers.NewActivityHandler(outreachLogRepo, leadRepo)
	aiHandler := handlers.NewAIHandler(generateUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{env("CORS_ORIGIN", "*")},
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/webhooks/paystack", webhookHandler.HandlePaystack)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(userRepo))

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", leadHandler.List)
			r.Get("/export", leadHandler.Export)
			r.Post("/{leadID}/enrich-email", leadHandler.Enrich)
			r.Patch("/{leadID}", leadHandler.Update)
			r.Delete("/{leadID}", leadHandler.Delete)
			r.Post("/{leadID}/logs", activityHandler.CreateLog)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", campaignHandler.Create)
			r.Get("/", campaignHandler.List)
			r.Get("/{campaignID}", campaignHandler.Get)
			r.Patch("/{campaignID}", campaignHandler.Update)
			r.Delete("/{campaignID}", campaignHandler.Delete)
			r.Get("/{campaignID}/performance", campaignHandler.Performance)
			r.Post("/{campaignID}/leads/upload", leadHandler.Upload)
			r.Post("/{campaignID}/leads/assign", leadHandler.Assign)
		})

		r.Route("/email-campaigns", func(r chi.Router) {
			r.Post("/", emailCampaignHandler.Create)
			r.Get("/", emailCampaignHandler.List)
			r.Get("/{campaignID}", emailCampaignHandler.Get)
			r.Patch("/{campaignID}", emailCampaignHandler.Update)
			r.Delete("/{campaignID}", emailCampaignHandler.Delete)
			r.Post("/{campaignID}/send", emailCampaignHandler.Send)
			r.Get("/{campaignID}/logs", emailCampaignHandler.Logs)
			r.Get("/{campaignID}/performance", emailCampaignHandler.Performance)
			r.Post("/{campaignID}/follow-ups", emailCampaignHandler.CreateFollowUp)
			r.Get("/{campaignID}/follow-ups", emailCampaignHandler.ListFollowUps)
		})

		r.Route("/subscription", func(r chi.Router) {
			r.Get("/plans", subscriptionHandler.Plans)
			r.Get("/", subscriptionHandler.Current)
			r.Get("/usage", subscriptionHandler.Usage)
			r.Post("/checkout", subscriptionHandler.Checkout)
			r.Post("/cancel", subscriptionHandler.Cancel)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notificationHandler.List)
			r.Patch("/{notificationID}/read", notificationHandler.MarkRead)
			r.Delete("/{notificationID}", notificationHandler.Delete)
		})

		r.Get("/activity", activityHandler.Feed)
		r.Post("/ai/generate-message", aiHandler.Generate)
	})

	port := ":" + env("PORT", "8080")
	log.Printf("LeadPilot API listening on %s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		log.Fatal(err)
	}
}
