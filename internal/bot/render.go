package bot

import (
	"context"
	"fmt"
	"html"
	"strconv"

	"github.com/marianmykola/quiz-bot/internal/client"
	"github.com/marianmykola/quiz-bot/internal/quiz"
)

// render доставляет инструкции движка в чат по порядку.
// В контексте callback первая инструкция редактирует нажатое сообщение
// (так ведёт себя исходный бот), остальные отправляются новыми сообщениями.
func (b *Bot) render(chatID int64, editMessageID int, instructions []quiz.Instruction) error {
	for _, instruction := range instructions {
		text, opts := composeInstruction(instruction)

		if editMessageID != 0 {
			err := b.client.EditMessage(chatID, editMessageID, text, opts)
			if err != nil {
				return fmt.Errorf("cannot edit message %d: %w", editMessageID, err)
			}

			editMessageID = 0

			continue
		}

		if _, err := b.client.SendMessage(chatID, text, opts); err != nil {
			return fmt.Errorf("cannot send message: %w", err)
		}
	}

	return nil
}

// composeInstruction собирает текст и клавиатуру для одной инструкции.
func composeInstruction(instruction quiz.Instruction) (string, *client.SendOptions) {
	switch instruction.Type {
	case quiz.InstructionShowQuestion:
		text := fmt.Sprintf(
			msgQuestion,
			instruction.Number,
			instruction.Total,
			html.EscapeString(instruction.Text),
		)

		return text, &client.SendOptions{
			ParseMode:   "HTML",
			ReplyMarkup: optionsKeyboard(instruction.Options),
		}
	case quiz.InstructionAnswerFeedback:
		return feedbackText(instruction), &client.SendOptions{ParseMode: "HTML"}
	case quiz.InstructionQuizComplete:
		text := fmt.Sprintf(msgFinished, instruction.Score, instruction.Total)

		return text, nil
	case quiz.InstructionQuizResultAndComplete:
		text := feedbackText(instruction) +
			"\n\n" +
			fmt.Sprintf(msgFinished, instruction.Score, instruction.Total)

		opts := &client.SendOptions{ParseMode: "HTML"}
		if instruction.OfferRestart {
			opts.ReplyMarkup = restartKeyboard()
		}

		return text, opts
	case quiz.InstructionRestarted:
		return msgRestarted, nil
	case quiz.InstructionPromptToStart:
		return msgPromptToStart, nil
	}

	return msgPromptToStart, nil
}

func feedbackText(instruction quiz.Instruction) string {
	if instruction.Correct {
		return msgCorrect
	}

	return fmt.Sprintf(msgIncorrect, html.EscapeString(instruction.CorrectAnswer))
}

// optionsKeyboard строит клавиатуру вариантов: одна кнопка в строке,
// callback data — индекс выбора в перемешанном порядке.
func optionsKeyboard(options []quiz.Option) *client.InlineKeyboardMarkup {
	rows := make([][]client.InlineKeyboardButton, 0, len(options))
	for _, option := range options {
		rows = append(rows, []client.InlineKeyboardButton{{
			Text:         fmt.Sprintf(btnOption, option.Label),
			CallbackData: strconv.Itoa(option.Index),
		}})
	}

	return &client.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func restartKeyboard() *client.InlineKeyboardMarkup {
	return &client.InlineKeyboardMarkup{
		InlineKeyboard: [][]client.InlineKeyboardButton{{
			{Text: btnPlayAgain, CallbackData: callbackRestart},
		}},
	}
}

// sendTop отправляет таблицу лидеров в чат.
func (b *Bot) sendTop(ctx context.Context, chatID int64) error {
	top, err := b.board.Top(ctx, topLimit)
	if err != nil {
		return fmt.Errorf("cannot get leaderboard: %w", err)
	}

	if len(top) == 0 {
		_, err = b.client.SendMessage(chatID, msgTopEmpty, nil)

		return err
	}

	text := fmt.Sprintf(msgTopHeader, topLimit)
	for i, entry := range top {
		name := entry.FirstName
		if entry.Username != "" {
			name = "@" + entry.Username
		}

		medal := "🔸"
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}

		text += fmt.Sprintf(
			"%s %d. %s — %d%% (%d из %d)\n",
			medal,
			i+1,
			html.EscapeString(name),
			entry.Percentage,
			entry.Score,
			entry.Total,
		)
	}

	_, err = b.client.SendMessage(chatID, text, &client.SendOptions{ParseMode: "HTML"})

	return err
}
