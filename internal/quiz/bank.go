package quiz

import (
	"encoding/json"
	"fmt"
	"os"
)

// Bank — неизменяемый банк вопросов, загружается один раз при старте процесса.
type Bank struct {
	questions []Question
}

// bankFile описывает формат файла банка: записи обёрнуты в массив "quiz".
type bankFile struct {
	Quiz []Question `json:"quiz"`
}

// LoadBank читает и валидирует банк вопросов из JSON-файла.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read question bank %s: %w", path, err)
	}

	bank, err := ParseBank(data)
	if err != nil {
		return nil, fmt.Errorf("cannot load question bank %s: %w", path, err)
	}

	return bank, nil
}

// NewBank создаёт банк из готового списка вопросов без валидации размера.
func NewBank(questions []Question) *Bank {
	return &Bank{questions: questions}
}

// ParseBank парсит JSON и создаёт банк вопросов.
func ParseBank(data []byte) (*Bank, error) {
	var file bankFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	if err := isCorrectBank(file.Quiz); err != nil {
		return nil, err
	}

	return &Bank{questions: file.Quiz}, nil
}

func isCorrectBank(questions []Question) error {
	if len(questions) < QuestionsPerSession {
		return fmt.Errorf(
			"need at least %d questions, got %d",
			QuestionsPerSession,
			len(questions),
		)
	}

	for i, question := range questions {
		if question.Text == "" {
			return fmt.Errorf("missing field question of %d question", i)
		}

		if len(question.Options) < 2 {
			return fmt.Errorf("amount of options must be at least two in %d question", i)
		}

		seen := make(map[string]struct{}, len(question.Options))
		for _, option := range question.Options {
			if _, ok := seen[option]; ok {
				return fmt.Errorf("duplicate option %q in %d question", option, i)
			}
			seen[option] = struct{}{}
		}

		if _, ok := seen[question.Answer]; !ok {
			return fmt.Errorf("answer %q is not among options of %d question", question.Answer, i)
		}
	}

	return nil
}

// Size возвращает количество вопросов в банке.
func (b *Bank) Size() int {
	return len(b.questions)
}

// Questions возвращает копию вопросов банка.
func (b *Bank) Questions() []Question {
	questions := make([]Question, len(b.questions))
	copy(questions, b.questions)

	return questions
}
