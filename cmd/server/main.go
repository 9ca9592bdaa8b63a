package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "party-cards/internal/api/http"
	"party-cards/internal/api/ws"
	"party-cards/internal/cards"
	"party-cards/internal/config"
	"party-cards/internal/logger"
	"party-cards/internal/room"
	"party-cards/internal/store"

	// swagger docs
	_ "party-cards/docs"

	"github.com/gin-gonic/gin"
)

// @title Party Cards API
// @version 1.0
// @description Room orchestration and game state API for the party card game server (Go + Gin)
// @contact.name Backend Team
// @BasePath /
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogPretty)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	pool, err := cards.Load(cfg.CardsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.CardsFile).Msg("load cards")
	}
	log.Info().Int("prompts", len(pool.Prompts)).Int("answers", len(pool.Answers)).Msg("card pool loaded")

	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg, pool, log)
	hub := ws.NewHub(rm, cfg, log)
	rm.SetBroadcaster(hub)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go rm.Run(ctx)

	router := httpapi.NewRouter(rm, hub.HandleWS, cfg, log)
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	rm.Shutdown()
}
