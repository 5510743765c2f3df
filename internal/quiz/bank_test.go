package quiz_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianmykola/quiz-bot/internal/quiz"
)

// bankJSON собирает валидный банк из n вопросов с четырьмя вариантами.
func bankJSON(n int) []byte {
	records := make([]string, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, fmt.Sprintf(`{
			"question": "Вопрос %d?",
			"options": ["Вариант %d-1", "Вариант %d-2", "Вариант %d-3", "Вариант %d-4"],
			"answer": "Вариант %d-3"
		}`, i, i, i, i, i, i))
	}

	return []byte(`{"quiz": [` + strings.Join(records, ",") + `]}`)
}

func TestParseBank_Valid(t *testing.T) {
	bank, err := quiz.ParseBank(bankJSON(12))
	require.NoError(t, err)
	require.NotNil(t, bank)

	assert.Equal(t, 12, bank.Size())

	questions := bank.Questions()
	assert.Equal(t, "Вопрос 0?", questions[0].Text)
	assert.Len(t, questions[0].Options, 4)
	assert.Equal(t, "Вариант 0-3", questions[0].Answer)
}

func TestParseBank_InvalidJSON(t *testing.T) {
	bank, err := quiz.ParseBank([]byte(`{invalid json}`))
	assert.Error(t, err)
	assert.Nil(t, bank)
}

func TestParseBank_TooFewQuestions(t *testing.T) {
	bank, err := quiz.ParseBank(bankJSON(9))
	assert.Error(t, err)
	assert.Nil(t, bank)
}

func TestParseBank_InvalidQuestions(t *testing.T) {
	valid := func() []string {
		records := make([]string, 0, quiz.QuestionsPerSession)
		for i := 0; i < quiz.QuestionsPerSession; i++ {
			records = append(records, fmt.Sprintf(
				`{"question": "Вопрос %d?", "options": ["Да", "Нет"], "answer": "Да"}`,
				i,
			))
		}
		return records
	}

	testCases := []struct {
		name   string
		broken string
	}{
		{
			name:   "missing question text",
			broken: `{"question": "", "options": ["Да", "Нет"], "answer": "Да"}`,
		},
		{
			name:   "too few options",
			broken: `{"question": "Вопрос?", "options": ["Да"], "answer": "Да"}`,
		},
		{
			name:   "duplicate options",
			broken: `{"question": "Вопрос?", "options": ["Да", "Да"], "answer": "Да"}`,
		},
		{
			name:   "answer not among options",
			broken: `{"question": "Вопрос?", "options": ["Да", "Нет"], "answer": "Возможно"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records := append(valid(), tc.broken)
			data := []byte(`{"quiz": [` + strings.Join(records, ",") + `]}`)

			bank, err := quiz.ParseBank(data)
			assert.Error(t, err)
			assert.Nil(t, bank)
		})
	}
}

func TestLoadBank_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(path, bankJSON(10), 0o644))

	bank, err := quiz.LoadBank(path)
	require.NoError(t, err)
	assert.Equal(t, 10, bank.Size())
}

func TestLoadBank_MissingFile(t *testing.T) {
	bank, err := quiz.LoadBank(filepath.Join(t.TempDir(), "nonexistent.json"))
	assert.Error(t, err)
	assert.Nil(t, bank)
}
