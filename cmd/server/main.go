package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"conversa/internal/capabilities"
	"conversa/internal/config"
	"conversa/internal/handler"
	"conversa/internal/logging"
	"conversa/internal/middleware"
	"conversa/internal/repository"
	"conversa/internal/service"
	serviceLLM "conversa/internal/service/llm"
)

func main() {
	os.Exit(run())
}

// run returns the exit code so deferred cleanup runs before the process exits
func run() int {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Configuration problems stop the process before anything is opened
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	logger, closeLog, err := logging.New(logging.Options{
		Environment: cfg.Environment,
		Name:        "server",
		LogDir:      cfg.LogDir,
		MaxFiles:    cfg.LogMaxFiles,
	})
	if err != nil {
		log.Printf("Failed to setup logging: %v", err)
		return 1
	}
	defer closeLog()

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"table_prefix", cfg.TablePrefix,
		"model", cfg.DefaultModel,
		"debug", cfg.Debug,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the configured store
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("store close failed", "error", err)
		}
	}()

	// Initialize capability registry
	capabilityRegistry, err := capabilities.NewRegistry()
	if err != nil {
		logger.Error("failed to initialize capability registry", "error", err)
		return 1
	}

	// Create the model provider for DEFAULT_MODEL
	providerFactory := serviceLLM.NewProviderFactory(cfg, capabilityRegistry, logger)
	provider, err := providerFactory.CreateDefault(ctx)
	if err != nil {
		logger.Error("failed to create model provider", "error", err)
		return 1
	}
	if closer, ok := provider.(io.Closer); ok {
		defer closer.Close()
	}

	// Create services
	structureService := service.NewStructureService(store.Structure, logger)
	historyService := service.NewHistoryService(store.Messages, logger)
	chatService := service.NewChatService(historyService, provider, service.ChatConfig{
		HistoryLimit:  cfg.HistoryLimit,
		FallbackReply: cfg.FallbackReply,
	}, logger)

	// Create handlers
	healthHandler := handler.NewHealthHandler(store.Health, logger)
	structureHandler := handler.NewStructureHandler(structureService, logger, cfg.Debug)
	historyHandler := handler.NewHistoryHandler(historyService, logger, cfg.Debug)
	chatHandler := handler.NewChatHandler(chatService, logger, cfg.Debug)
	modelsHandler := handler.NewModelsHandler(capabilityRegistry, provider, logger, cfg.Debug)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /{$}", healthHandler.Health)

	// Sidebar structure
	mux.HandleFunc("GET /estrutura", structureHandler.GetStructure)
	mux.HandleFunc("POST /estrutura", structureHandler.SaveStructure)

	// Conversations
	mux.HandleFunc("GET /historico/{projeto}/{pasta}/{chat_id}", historyHandler.GetHistory)
	mux.HandleFunc("POST /enviar_mensagem", chatHandler.SendMessage)

	// Model catalog
	mux.HandleFunc("GET /modelos", modelsHandler.ListModels)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestLogger → Recovery → Routes
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	// Any origin, method and header is accepted
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodOptions, http.MethodHead,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
		return 1
	}
	logger.Info("server stopped")
	return 0
}
