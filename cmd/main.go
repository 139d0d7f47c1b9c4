package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"crimewatch/backend/internal/api/handler"
	"crimewatch/backend/internal/chat"
	"crimewatch/backend/internal/classifier"
	"crimewatch/backend/internal/config"
	"crimewatch/backend/internal/livefeed"
	"crimewatch/backend/internal/models"
	"crimewatch/backend/internal/notify"
	"crimewatch/backend/internal/report"
	"crimewatch/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.App) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	// TranslateError is required: the chat-room idempotence check relies
	// on gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// Перевірка з'єднання Redis
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Міграції (Створення таблиць)
	err = db.AutoMigrate(
		&models.User{},
		&models.Authority{},
		&models.CrimeReport{},
		&models.ComplaintAssignment{},
		&models.ChatRoom{},
		&models.ChatParticipant{},
		&models.ChatMessage{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting CrimeWatch Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.FromEnv()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET не встановлено!")
	}
	if cfg.ClassifierURL == "" {
		log.Fatal("CLASSIFIER_URL не встановлено!")
	}

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	// 2. Classifier with Redis-cached judgments
	var nlp classifier.Client = classifier.NewHTTPClient(cfg.ClassifierURL)
	nlp = classifier.NewCachedClient(nlp, rdb, config.JudgmentCacheTTL)

	settings := config.NewSeverityStore()

	// 3. Optional Telegram ops alerts
	var notifier report.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		chatID, err := parseChatID(cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_ALERT_CHAT_ID: %v", err)
		}
		tg, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, chatID)
		if err != nil {
			log.Fatalf("Не вдалося запустити Telegram-бота: %v", err)
		}
		notifier = tg
	}

	// 4. Core services + livefeed hub
	reports := report.NewService(s, nlp, settings, notifier)
	chatSvc := chat.NewService(s, &chat.FirstRegisteredPicker{Storage: s})
	hub := livefeed.NewManagerService(s)
	go hub.Run() // Головний диспетчер

	// 5. Налаштування Gin та роутингу
	r := gin.Default()
	h := handler.NewHandler(s, reports, chatSvc, hub, settings, []byte(cfg.JWTSecret))
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}

func parseChatID(raw string) (int64, error) {
	var id int64
	_, err := fmt.Sscanf(raw, "%d", &id)
	return id, err
}
