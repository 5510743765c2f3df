package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/marianmykola/quiz-bot/internal/bot"
	"github.com/marianmykola/quiz-bot/internal/client"
	"github.com/marianmykola/quiz-bot/internal/config"
	"github.com/marianmykola/quiz-bot/internal/leaderboard"
	"github.com/marianmykola/quiz-bot/internal/leaderboard/postgres"
	"github.com/marianmykola/quiz-bot/internal/lib/slogcustom"
	"github.com/marianmykola/quiz-bot/internal/quiz"
	"github.com/marianmykola/quiz-bot/internal/storage"
)

func main() {
	log := setupLogger()
	slog.SetDefault(log)
	slog.Info("starting quiz bot...")

	flagQuestions := pflag.String("questions", "", "path to the question bank (overrides QUESTIONS_FILE)")
	flagPoll := pflag.Bool("poll", false, "force long polling even if WEBHOOK_URL is set")
	pflag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("cannot load config", "err", err)
		os.Exit(1)
	}

	if *flagQuestions != "" {
		cfg.QuestionsFile = *flagQuestions
	}

	// Банк обязателен: без валидного банка бот не обслуживает трафик.
	bank, err := quiz.LoadBank(cfg.QuestionsFile)
	if err != nil {
		slog.Error("cannot load question bank", "err", err)
		os.Exit(1)
	}
	slog.Info("question bank loaded", "questions", bank.Size())

	store := storage.NewMemory()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine := quiz.NewEngine(bank, store, rng)

	var board leaderboard.Service = leaderboard.NewMemory()
	if cfg.DatabaseURL != "" {
		pg, err := postgres.NewStorage(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("cannot connect to postgres", "err", err)
			os.Exit(1)
		}
		defer pg.Close()

		board = pg
		slog.Info("leaderboard backed by postgres")
	}

	tg := client.NewHTTPClient(cfg.BotToken)
	quizBot := bot.New(tg, engine, board)

	if cfg.WebhookURL != "" && !*flagPoll {
		if err = runWebhook(ctx, cfg, tg, quizBot); err != nil {
			slog.Error("webhook server error", "err", err)
			os.Exit(1)
		}

		return
	}

	if err = tg.DeleteWebhook(); err != nil {
		slog.Warn("cannot delete webhook", "err", err)
	}

	slog.Info("running in long polling mode")
	if err = quizBot.Run(ctx); err != nil {
		slog.Error("bot stopped with error", "err", err)
		os.Exit(1)
	}
}

func runWebhook(ctx context.Context, cfg *config.Config, tg *client.HTTPClient, quizBot *bot.Bot) error {
	if err := tg.SetWebhook(cfg.WebhookURL + "/webhook"); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           quizBot.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("webhook server listening", "addr", cfg.ListenAddr, "url", cfg.WebhookURL)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)

		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	}
}

func setupLogger() *slog.Logger {
	return slog.New(slogcustom.NewCustomHandler(os.Stdout, slog.LevelDebug))
}
