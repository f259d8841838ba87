package main

// @title           FinCoach API
// @version         1.0
// @description     Finance chatbot backend. Questions about personal finance, expense management and Islamic finance are grounded in reference documents and answered by a hosted language model.

// @contact.name   FinCoach maintainers
// @contact.url    https://github.com/custodia-labs/fincoach/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api
// @schemes   http https

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/custodia-labs/fincoach/docs"
	"github.com/custodia-labs/fincoach/internal/adapters/driven/ai"
	"github.com/custodia-labs/fincoach/internal/adapters/driven/documents"
	"github.com/custodia-labs/fincoach/internal/adapters/driven/memory"
	"github.com/custodia-labs/fincoach/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/fincoach/internal/adapters/driven/redis"
	"github.com/custodia-labs/fincoach/internal/adapters/driving/http"
	"github.com/custodia-labs/fincoach/internal/core/domain"
	"github.com/custodia-labs/fincoach/internal/core/ports/driven"
	"github.com/custodia-labs/fincoach/internal/core/services"
)

var version = "dev"

func main() {
	logger := newLogger(getEnv("LOG_LEVEL", "info"), getEnv("LOG_FORMAT", "json"))
	slog.SetDefault(logger)

	log.Printf("fincoach %s starting", version)

	// Configuration from environment
	port := getEnvInt("PORT", 8080)
	host := getEnv("HOST", "0.0.0.0")
	apiKey := getEnv("OPENROUTER_API_KEY", getEnv("NEXT_PUBLIC_OPENROUTER_API_KEY", getEnv("LLM_API_KEY", "")))
	databaseURL := getEnv("DATABASE_URL", "")
	redisURL := getEnv("REDIS_URL", "")
	documentsSource := getEnv("DOCUMENTS_SOURCE", "")
	documentsPath := getEnv("DOCUMENTS_PATH", "")
	conversationTTL := time.Duration(getEnvInt("CONVERSATION_TTL_HOURS", 720)) * time.Hour
	allowedOrigins := splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	if apiKey == "" {
		log.Fatalf("OPENROUTER_API_KEY is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// ===== Initialize PostgreSQL (optional) =====
	var db *postgres.DB
	if databaseURL != "" {
		log.Println("Connecting to PostgreSQL...")
		dbConfig := postgres.Config{
			URL:             databaseURL,
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300)) * time.Second,
			ConnMaxIdleTime: time.Duration(getEnvInt("DB_CONN_MAX_IDLE_SEC", 60)) * time.Second,
		}
		var err error
		db, err = postgres.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		log.Println("PostgreSQL connected and schema initialized")
	}

	// ===== Initialize Redis (optional) =====
	var redisClient *redis.Client
	if redisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	// ===== Reference documents =====
	source, err := selectDocumentSource(documentsSource, documentsPath, db)
	if err != nil {
		log.Fatalf("Invalid document configuration: %v", err)
	}
	documentStore, err := documents.Load(ctx, source)
	if err != nil {
		log.Fatalf("Failed to load documents: %v", err)
	}
	log.Printf("Loaded %d reference documents", documentStore.Len())

	// ===== Completion client =====
	llmSettings := domain.LLMSettings{
		Provider: domain.AIProvider(getEnv("LLM_PROVIDER", string(domain.AIProviderOpenRouter))),
		APIKey:   apiKey,
		BaseURL:  getEnv("LLM_BASE_URL", ""),
		Model:    getEnv("LLM_MODEL", ""),
		Referer:  getEnv("LLM_REFERER", ""),
		Title:    getEnv("LLM_TITLE", ""),
	}
	completion, err := ai.NewFactory().CreateCompletionService(&llmSettings)
	if err != nil {
		log.Fatalf("Failed to create completion client: %v", err)
	}
	defer completion.Close()
	log.Printf("Completion client ready (provider: %s, model: %s)", llmSettings.Provider, completion.Model())

	// ===== Core services =====
	chatService := services.NewChatService(services.ChatServiceConfig{
		Filter:     services.NewTopicFilter(nil),
		Retriever:  services.NewRetriever(documentStore),
		Composer:   services.NewPromptComposer(""),
		Completion: completion,
		Logger:     logger,
	})

	// ===== Conversation storage =====
	var (
		conversationStore driven.ConversationStore
		conversationLock  driven.DistributedLock
		dbPinger          http.Pinger
		redisPinger       http.Pinger
	)
	switch {
	case redisClient != nil:
		store := redisadapter.NewConversationStore(redisClient, conversationTTL)
		conversationStore = store
		conversationLock = redisadapter.NewLock(redisClient)
		redisPinger = store
		log.Println("Conversations stored in Redis")
	case db != nil:
		conversationStore = postgres.NewConversationStore(db)
		conversationLock = memory.NewLock()
		log.Println("Conversations stored in PostgreSQL")
	default:
		conversationStore = memory.NewConversationStore()
		conversationLock = memory.NewLock()
		log.Println("Conversations stored in memory (lost on restart)")
	}
	if db != nil {
		dbPinger = db
	}
	conversationService := services.NewConversationService(conversationStore, conversationLock)

	// ===== HTTP server =====
	serverCfg := http.Config{
		Host:           host,
		Port:           port,
		Version:        version,
		AllowedOrigins: allowedOrigins,
		Logger:         logger,
	}
	server := http.NewServer(serverCfg, chatService, conversationService, documentStore, dbPinger, redisPinger)

	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// selectDocumentSource picks where reference documents come from.
// With no explicit source a DOCUMENTS_PATH selects the file, otherwise the embedded set is used.
func selectDocumentSource(kind, path string, db *postgres.DB) (driven.DocumentSource, error) {
	if kind == "" {
		kind = "embedded"
		if path != "" {
			kind = "file"
		}
	}

	switch kind {
	case "embedded":
		return documents.NewEmbeddedSource(), nil
	case "file":
		if path == "" {
			return nil, fmt.Errorf("DOCUMENTS_PATH is required when DOCUMENTS_SOURCE=file")
		}
		return documents.NewFileSource(path), nil
	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("DATABASE_URL is required when DOCUMENTS_SOURCE=postgres")
		}
		return postgres.NewDocumentSource(db), nil
	default:
		return nil, fmt.Errorf("unknown DOCUMENTS_SOURCE %q", kind)
	}
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.ToLower(format) == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
