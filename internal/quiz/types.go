package quiz

import (
	"context"
	"time"
)

// QuestionsPerSession — количество вопросов, которые разыгрываются за одну сессию.
const QuestionsPerSession = 10

// Question представляет один вопрос викторины.
type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

// Session представляет состояние викторины одного пользователя.
// Жизненный цикл: создаётся при /start или рестарте (перезаписывая прежнюю сессию),
// мутируется только при ответе и показе вопроса, явно не удаляется.
type Session struct {
	ID           string // для корреляции логов
	UserID       int64
	Score        int
	CurrentIndex int
	Questions    []Question // разыгранные вопросы, фиксируются на всю сессию
	DisplayOrder [][]string // перемешанные варианты по каждому вопросу; nil до первого показа
	StartedAt    time.Time
}

// Complete сообщает, завершена ли сессия.
func (s *Session) Complete() bool {
	return s.CurrentIndex >= len(s.Questions)
}

// SessionStore определяет интерфейс хранилища сессий.
// Put заменяет существующую запись целиком; удаления нет — сессия
// вытесняется только новой сессией того же пользователя.
type SessionStore interface {
	// Get возвращает сессию пользователя. Второе значение — false, если сессии нет.
	Get(ctx context.Context, userID int64) (*Session, bool, error)

	// Put сохраняет сессию пользователя, перезаписывая прежнюю.
	Put(ctx context.Context, userID int64, session *Session) error
}

// InstructionType — тип инструкции отрисовки.
type InstructionType string

const (
	InstructionPromptToStart         InstructionType = "prompt_to_start"
	InstructionShowQuestion          InstructionType = "show_question"
	InstructionAnswerFeedback        InstructionType = "answer_feedback"
	InstructionQuizComplete          InstructionType = "quiz_complete"
	InstructionQuizResultAndComplete InstructionType = "quiz_result_and_complete"
	InstructionRestarted             InstructionType = "restarted"
)

// Option — вариант ответа вместе с индексом выбора в перемешанном порядке.
type Option struct {
	Index int
	Label string
}

// Instruction — инструкция отрисовки для транспортного слоя.
// Движок возвращает упорядоченный список инструкций на каждый входящий запрос;
// транспорт доставляет их в том же порядке.
type Instruction struct {
	Type InstructionType

	// InstructionShowQuestion
	Text    string
	Number  int // 1-based номер вопроса
	Total   int
	Options []Option

	// InstructionAnswerFeedback и InstructionQuizResultAndComplete
	Correct       bool
	CorrectAnswer string // текст правильного ответа, заполняется при неверном ответе

	// InstructionQuizComplete и InstructionQuizResultAndComplete
	Score        int
	OfferRestart bool
}
