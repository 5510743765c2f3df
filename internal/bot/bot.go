package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/marianmykola/quiz-bot/internal/client"
	"github.com/marianmykola/quiz-bot/internal/leaderboard"
	"github.com/marianmykola/quiz-bot/internal/quiz"
)

const (
	pollTimeoutSeconds = 30
	topLimit           = 10

	callbackRestart = "restart"
)

// Bot реализует Telegram бота для викторины: принимает обновления,
// передаёт их движку и доставляет инструкции отрисовки в чат.
type Bot struct {
	client client.Client
	engine *quiz.Engine
	board  leaderboard.Service
}

// New создаёт нового бота.
func New(client client.Client, engine *quiz.Engine, board leaderboard.Service) *Bot {
	return &Bot{
		client: client,
		engine: engine,
		board:  board,
	}
}

// Run запускает бота (long polling). Используется, когда webhook не настроен.
func (b *Bot) Run(ctx context.Context) error {
	offset := 0

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		updates, err := b.client.GetUpdates(ctx, offset, pollTimeoutSeconds)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			slog.Error("cannot get updates", "err", err)
			time.Sleep(time.Second)

			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}

			if err = b.HandleUpdate(ctx, update); err != nil {
				slog.Error("cannot handle update", "update_id", update.UpdateID, "err", err)
			}
		}
	}
}

// HandleUpdate обрабатывает одно обновление.
func (b *Bot) HandleUpdate(ctx context.Context, update client.Update) error {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		return b.handleCallback(ctx, update.CallbackQuery)
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, message *client.Message) error {
	userID := message.From.ID
	chatID := message.Chat.ID

	command, _, _ := strings.Cut(message.Text, " ")
	switch command {
	case "/start":
		instructions, err := b.engine.StartSession(ctx, userID)
		if err != nil {
			return err
		}

		slog.Info("session started", "user_id", userID)

		return b.render(chatID, 0, instructions)
	case "/top":
		return b.sendTop(ctx, chatID)
	default:
		_, err := b.client.SendMessage(chatID, msgPromptToStart, nil)

		return err
	}
}

func (b *Bot) handleCallback(ctx context.Context, callback *client.CallbackQuery) error {
	if callback.From == nil || callback.Message == nil || callback.Message.Chat == nil {
		return nil
	}

	userID := callback.From.ID
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID

	if callback.Data == callbackRestart {
		if err := b.client.AnswerCallback(callback.ID, ""); err != nil {
			slog.Error("cannot answer callback", "err", err)
		}

		instructions, err := b.engine.RestartSession(ctx, userID)
		if err != nil {
			return err
		}

		slog.Info("session restarted", "user_id", userID)

		return b.render(chatID, messageID, instructions)
	}

	selectedIndex, err := strconv.Atoi(callback.Data)
	if err != nil {
		// Неизвестный callback, молча подтверждаем.
		return b.client.AnswerCallback(callback.ID, "")
	}

	instructions, err := b.engine.SubmitAnswer(ctx, userID, selectedIndex)
	if errors.Is(err, quiz.ErrInvalidSelection) {
		// Устаревший или битый индекс: состояние не тронуто, событие игнорируется.
		slog.Warn("invalid selection", "user_id", userID, "index", selectedIndex)

		return b.client.AnswerCallback(callback.ID, "")
	}
	if err != nil {
		return err
	}

	toast := b.recordResult(ctx, callback.From, instructions)
	if err = b.client.AnswerCallback(callback.ID, toast); err != nil {
		slog.Error("cannot answer callback", "err", err)
	}

	return b.render(chatID, messageID, instructions)
}

// recordResult заносит завершённую викторину в таблицу лидеров.
// Возвращает текст уведомления для пользователя, если результат стал рекордом.
// Ошибки таблицы лидеров не доходят до пользователя.
func (b *Bot) recordResult(
	ctx context.Context,
	user *client.User,
	instructions []quiz.Instruction,
) string {
	for _, instruction := range instructions {
		if instruction.Type != quiz.InstructionQuizResultAndComplete {
			continue
		}

		entry := leaderboard.Entry{
			UserID:     user.ID,
			Username:   user.Username,
			FirstName:  user.FirstName,
			Score:      instruction.Score,
			Total:      instruction.Total,
			Percentage: instruction.Score * 100 / instruction.Total,
			PlayedAt:   time.Now(),
		}

		isNewBest, err := b.board.Add(ctx, entry)
		if err != nil {
			slog.Error("cannot record result", "user_id", user.ID, "err", err)

			return ""
		}

		slog.Info(
			"quiz finished",
			"user_id", user.ID,
			"score", instruction.Score,
			"total", instruction.Total,
			"new_best", isNewBest,
		)

		if isNewBest {
			return msgNewBest
		}
	}

	return ""
}
