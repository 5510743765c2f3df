package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ошибки движка.
var (
	// ErrInsufficientQuestions возвращается, когда в банке меньше вопросов,
	// чем разыгрывается за сессию. Ошибка конфигурации, фатальна при старте.
	ErrInsufficientQuestions = errors.New("question bank is smaller than one session draw")

	// ErrInvalidSelection возвращается при индексе ответа вне диапазона
	// вариантов текущего вопроса. Состояние сессии при этом не меняется.
	ErrInvalidSelection = errors.New("selected answer index is out of range")
)

// Engine реализует машину состояний сессии викторины:
// NotStarted -> InProgress(0..9) -> Complete, с повторным входом через рестарт.
type Engine struct {
	bank  *Bank
	store SessionStore
	rng   *rand.Rand
	mu    sync.Mutex // *rand.Rand не потокобезопасен
}

// NewEngine создаёт движок поверх банка вопросов и хранилища сессий.
// Генератор случайных чисел внедряется снаружи, чтобы тесты могли
// получать детерминированные розыгрыши.
func NewEngine(bank *Bank, store SessionStore, rng *rand.Rand) *Engine {
	return &Engine{
		bank:  bank,
		store: store,
		rng:   rng,
	}
}

// StartSession создаёт новую сессию пользователя, безусловно перезаписывая
// прежнюю, и возвращает инструкции показа первого вопроса.
func (e *Engine) StartSession(ctx context.Context, userID int64) ([]Instruction, error) {
	session, err := e.newSession(userID)
	if err != nil {
		return nil, err
	}

	if err = e.store.Put(ctx, userID, session); err != nil {
		return nil, fmt.Errorf("cannot store session for user %d: %w", userID, err)
	}

	return e.RenderCurrentQuestion(ctx, userID)
}

// RestartSession перезапускает викторину: то же, что StartSession,
// но с подтверждением рестарта перед первым вопросом.
func (e *Engine) RestartSession(ctx context.Context, userID int64) ([]Instruction, error) {
	instructions, err := e.StartSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	return append([]Instruction{{Type: InstructionRestarted}}, instructions...), nil
}

// RenderCurrentQuestion возвращает инструкцию показа текущего вопроса.
// Порядок вариантов перемешивается при первом показе вопроса и сохраняется
// в сессии: повторное перемешивание обесценило бы индекс выбора пользователя.
func (e *Engine) RenderCurrentQuestion(ctx context.Context, userID int64) ([]Instruction, error) {
	session, ok, err := e.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cannot get session for user %d: %w", userID, err)
	}

	if !ok {
		return []Instruction{{Type: InstructionPromptToStart}}, nil
	}

	if session.Complete() {
		return []Instruction{completeInstruction(session)}, nil
	}

	question := session.Questions[session.CurrentIndex]

	if session.DisplayOrder[session.CurrentIndex] == nil {
		session.DisplayOrder[session.CurrentIndex] = e.shuffleOptions(question.Options)

		if err = e.store.Put(ctx, userID, session); err != nil {
			return nil, fmt.Errorf("cannot store session for user %d: %w", userID, err)
		}
	}

	order := session.DisplayOrder[session.CurrentIndex]
	options := make([]Option, len(order))
	for i, label := range order {
		options[i] = Option{Index: i, Label: label}
	}

	return []Instruction{{
		Type:    InstructionShowQuestion,
		Text:    question.Text,
		Number:  session.CurrentIndex + 1,
		Total:   len(session.Questions),
		Options: options,
	}}, nil
}

// SubmitAnswer засчитывает выбор пользователя и продвигает сессию.
// Выбор сравнивается с правильным ответом строго по строковому равенству,
// без нормализации. Курсор продвигается независимо от правильности ответа.
func (e *Engine) SubmitAnswer(
	ctx context.Context,
	userID int64,
	selectedIndex int,
) ([]Instruction, error) {
	session, ok, err := e.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cannot get session for user %d: %w", userID, err)
	}

	if !ok {
		return []Instruction{{Type: InstructionPromptToStart}}, nil
	}

	// Поздний или повторный callback после завершения викторины.
	if session.Complete() {
		return []Instruction{completeInstruction(session)}, nil
	}

	order := session.DisplayOrder[session.CurrentIndex]
	if selectedIndex < 0 || selectedIndex >= len(order) {
		return nil, ErrInvalidSelection
	}

	question := session.Questions[session.CurrentIndex]
	correct := order[selectedIndex] == question.Answer

	if correct {
		session.Score++
	}
	session.CurrentIndex++

	if err = e.store.Put(ctx, userID, session); err != nil {
		return nil, fmt.Errorf("cannot store session for user %d: %w", userID, err)
	}

	if session.Complete() {
		result := completeInstruction(session)
		result.Type = InstructionQuizResultAndComplete
		result.Correct = correct
		result.OfferRestart = true
		if !correct {
			result.CorrectAnswer = question.Answer
		}

		return []Instruction{result}, nil
	}

	feedback := Instruction{
		Type:    InstructionAnswerFeedback,
		Correct: correct,
	}
	if !correct {
		feedback.CorrectAnswer = question.Answer
	}

	next, err := e.RenderCurrentQuestion(ctx, userID)
	if err != nil {
		return nil, err
	}

	return append([]Instruction{feedback}, next...), nil
}

// newSession разыгрывает вопросы и создаёт сессию со счётом 0.
func (e *Engine) newSession(userID int64) (*Session, error) {
	questions, err := e.drawQuestions()
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		Questions:    questions,
		DisplayOrder: make([][]string, len(questions)),
		StartedAt:    time.Now(),
	}, nil
}

// drawQuestions выбирает QuestionsPerSession различных вопросов равновероятно
// и без возвращения: перемешивает копию банка и берёт префикс.
func (e *Engine) drawQuestions() ([]Question, error) {
	questions := e.bank.Questions()
	if len(questions) < QuestionsPerSession {
		return nil, ErrInsufficientQuestions
	}

	e.mu.Lock()
	e.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	e.mu.Unlock()

	return questions[:QuestionsPerSession], nil
}

// shuffleOptions возвращает перемешанную копию вариантов ответа.
func (e *Engine) shuffleOptions(options []string) []string {
	shuffled := make([]string, len(options))
	copy(shuffled, options)

	e.mu.Lock()
	e.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	e.mu.Unlock()

	return shuffled
}

func completeInstruction(session *Session) Instruction {
	return Instruction{
		Type:  InstructionQuizComplete,
		Score: session.Score,
		Total: len(session.Questions),
	}
}
