package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"innova-chat/api/router"
	"innova-chat/config"
	"innova-chat/db"
	_ "innova-chat/docs" // swag will generate this package
	"innova-chat/llm"
	"innova-chat/logger"
	"innova-chat/repositories"
	"innova-chat/services"
	"innova-chat/taskqueue"
)

// @title           InnovaChat API
// @version         1.0
// @description     Conversation backend: multi-turn chat sessions with Gemini-generated replies and background session titling
// @BasePath        /api
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		log.Fatal("failed to initialize MongoDB:", err)
	}

	gen, err := llm.NewClient(ctx, cfg.GeminiApiKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal("failed to initialize Gemini client:", err)
	}

	sessionRepo := repositories.NewSessionRepository(db.Database())
	messageRepo := repositories.NewMessageRepository(db.Database())

	genTimeout := time.Duration(cfg.Chat.GenerationTimeoutSeconds) * time.Second

	queue := taskqueue.New(cfg.TitleQueue.Workers, cfg.TitleQueue.QueueSize)

	titleSvc := services.NewTitleService(sessionRepo, messageRepo, gen, cfg.TitleQueue.TailLimit, genTimeout)
	titleScheduler := services.NewQueueTitleScheduler(queue, titleSvc)

	chatSvc := services.NewChatService(
		sessionRepo,
		messageRepo,
		gen,
		titleScheduler,
		genTimeout,
		cfg.TitleQueue.TurnThreshold,
	)
	sessionSvc := services.NewSessionService(sessionRepo, messageRepo, titleScheduler)

	r := router.New(router.Services{
		Chat:     chatSvc,
		Sessions: sessionSvc,
		Titles:   titleScheduler,
	})

	corsOptions := cors.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
	}
	handler := cors.New(corsOptions).Handler(r)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: handler}
	go func() {
		logger.Log.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// On SIGINT/SIGTERM, stop accepting requests, then drain the title queue
	// so in-flight background work finishes before exit.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("server shutdown: %v", err)
	}
	queue.Close()
}
