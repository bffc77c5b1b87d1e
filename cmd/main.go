package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
	elog "github.com/labstack/gommon/log"
	"github.com/openai/openai-go/v3/option"

	"cameo/pkg/character"
	"cameo/pkg/config"
	"cameo/pkg/inference"
	"cameo/pkg/server"
	"cameo/pkg/utils"
	"cameo/pkg/wiki"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	inf, err := newInferencer(ctx, cfg)
	if err != nil {
		log.Fatal("failed to create inferencer", "provider", cfg.Provider, "error", err)
	}

	opts := []character.Option{character.WithStrictArguments(cfg.StrictProfiles)}
	if cfg.LogLevel == "debug" {
		log.SetLevel(log.DebugLevel)
		opts = append(opts, character.WithTokenCounter(utils.NumTokens))
	}

	chars, err := character.NewService(inf, opts...)
	if err != nil {
		log.Fatal("failed to create character service", "error", err)
	}

	srv := server.NewServer(ctx, chars, wiki.NewClient(), server.Options{
		AllowOrigins: cfg.AllowOrigin,
		PortraitTTL:  cfg.PortraitCacheTTL,
	})
	if cfg.LogLevel == "debug" {
		srv.Echo.Logger.SetLevel(elog.DEBUG)
	}

	log.Info("starting", "provider", cfg.Provider, "model", cfg.Model, "strict", cfg.StrictProfiles)

	finishedShutDown := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
		close(finishedShutDown)
	}()

	if err := srv.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		done()
		os.Exit(1)
	}
	<-finishedShutDown
	done()
}

func newInferencer(ctx context.Context, cfg config.Config) (inference.Inferencer, error) {
	timeout := option.WithRequestTimeout(cfg.UpstreamTimeout)
	switch cfg.Provider {
	case config.ProviderGrok:
		return inference.NewGrokInferencer(cfg.APIKey, cfg.Model, timeout), nil
	case config.ProviderMoonshot:
		return inference.NewMoonshotInferencer(cfg.APIKey, cfg.Model, timeout), nil
	case config.ProviderGemini:
		gemini, err := inference.NewGeminiInferencer(ctx, cfg.APIKey, cfg.Model, "", cfg.UpstreamTimeout)
		if err != nil {
			return nil, err
		}
		return gemini, nil
	default:
		openAI := inference.NewOpenAIInferencer(cfg.APIKey, cfg.Model, timeout)
		if cfg.BaseURL != "" {
			openAI.ChangeBaseURL(cfg.BaseURL)
		}
		return openAI, nil
	}
}
