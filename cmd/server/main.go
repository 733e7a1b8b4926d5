package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/feichai0017/document-qa/api/handlers"
	"github.com/feichai0017/document-qa/api/routes"
	"github.com/feichai0017/document-qa/config"
	"github.com/feichai0017/document-qa/internal/agent/llm"
	"github.com/feichai0017/document-qa/internal/service/document"
	"github.com/feichai0017/document-qa/internal/service/qa"
	"github.com/feichai0017/document-qa/pkg/history"
	"github.com/feichai0017/document-qa/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// init logger
	log, err := logger.NewLogger(
		logger.WithLevel(cfg.Log.Level),
		logger.WithEncoding(cfg.Log.Encoding),
		logger.WithOutputPaths(cfg.Log.Outputs),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// init model backend
	model, err := llm.New(context.Background(), cfg.LLM.Model(), log.Named("llm"))
	if err != nil {
		log.Fatal("Failed to initialize model backend", logger.Error(err))
	}
	defer model.Close()

	// init services
	docService := document.GetService(log.Named("document"))
	qaService := qa.NewService(model, history.NewMemoryStore(), log.Named("qa"), cfg.LLM.Timeout)

	// init handlers
	h := handlers.NewHandlers(docService, qaService, log)
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	routes.SetupRoutes(r, h, log)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	// start server
	go func() {
		log.Info("Server starting",
			logger.String("addr", srv.Addr),
			logger.String("model", model.Name()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", logger.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", logger.Error(err))
	}
}
