package main

import (
	"log"
	"os"

	"cashback-service/internal/database"
	"cashback-service/internal/handlers"
	"cashback-service/internal/routes"
	"cashback-service/internal/rules"
	"cashback-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	helperService := services.NewHelperService(db, asynqClient)
	engine := rules.NewEngine(rules.LoadConfig())

	catalogService := services.NewCatalogService(db)
	walletService := services.NewWalletService(db, helperService)
	cashbackService := services.NewCashbackService(db, engine, walletService, helperService)
	clickService := services.NewClickService(db, catalogService, cashbackService, helperService)
	webhookService := services.NewWebhookService(db, catalogService, cashbackService, walletService, helperService)
	referralService := services.NewReferralService(db, walletService, helperService)
	adminService := services.NewAdminService(db, walletService, referralService, helperService)

	// Initialize Gin
	r := gin.Default()

	routes.Register(r, routes.Handlers{
		Webhooks:  handlers.NewWebhookHandler(webhookService),
		Wallet:    handlers.NewWalletHandler(walletService),
		Clicks:    handlers.NewClickHandler(clickService),
		Referrals: handlers.NewReferralHandler(referralService),
		Admin:     handlers.NewAdminHandler(adminService),
	})

	// Start Cron Schedulers
	reconciliationService := services.NewReconciliationService(db, helperService)
	reconciliationService.StartScheduler()

	archiveService := services.NewArchiveService(db)
	archiveService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
