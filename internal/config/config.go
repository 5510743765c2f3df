package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию бота, читается из окружения (и .env файла).
type Config struct {
	BotToken      string // BOT_TOKEN, обязателен
	WebhookURL    string // WEBHOOK_URL; пусто — long polling
	ListenAddr    string // адрес webhook-сервера, из PORT
	QuestionsFile string // QUESTIONS_FILE, путь к банку вопросов
	DatabaseURL   string // DATABASE_URL; пусто — таблица лидеров в памяти
}

// Load читает конфигурацию. Файл .env подхватывается, если существует.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, errors.New("BOT_TOKEN environment variable is required")
	}

	return &Config{
		BotToken:      token,
		WebhookURL:    os.Getenv("WEBHOOK_URL"),
		ListenAddr:    ":" + getenvDefault("PORT", "8080"),
		QuestionsFile: getenvDefault("QUESTIONS_FILE", "russian_trivia_150_questions.json"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
	}, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
