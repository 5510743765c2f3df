package bot

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/marianmykola/quiz-bot/internal/client"
)

// Router возвращает HTTP-роутер webhook-режима: Telegram доставляет по одному
// обновлению на запрос в POST /webhook.
func (b *Bot) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/webhook", b.handleWebhook)

	return r
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update client.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)

		return
	}

	// Всегда отвечаем 200: иначе Telegram будет ретраить обновление,
	// а ошибки одного пользователя не должны задерживать очередь.
	if err := b.HandleUpdate(r.Context(), update); err != nil {
		slog.Error("cannot handle update", "update_id", update.UpdateID, "err", err)
	}

	w.WriteHeader(http.StatusOK)
}
