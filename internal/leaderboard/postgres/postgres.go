package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/marianmykola/quiz-bot/internal/leaderboard"
)

// Storage реализует leaderboard.Service поверх PostgreSQL.
type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage подключается к базе по dsn и готовит таблицу лидеров.
func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	query := `
	CREATE TABLE IF NOT EXISTS leaderboard (
		user_id    BIGINT PRIMARY KEY,
		username   TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		score      INT NOT NULL,
		total      INT NOT NULL,
		percentage INT NOT NULL,
		played_at  TIMESTAMPTZ NOT NULL
	)
	`

	if _, err = pool.Exec(ctx, query); err != nil {
		pool.Close()
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() {
	s.pool.Close()
}

// Add сохраняет результат пользователя, если он лучше прежнего.
func (s *Storage) Add(ctx context.Context, entry leaderboard.Entry) (bool, error) {
	query := `
	INSERT INTO leaderboard (user_id, username, first_name, score, total, percentage, played_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (user_id) DO UPDATE
	SET username = excluded.username,
	    first_name = excluded.first_name,
	    score = excluded.score,
	    total = excluded.total,
	    percentage = excluded.percentage,
	    played_at = excluded.played_at
	WHERE (excluded.percentage, excluded.score) > (leaderboard.percentage, leaderboard.score)
	RETURNING true
	`

	var isNewBest bool
	err := s.pool.QueryRow(
		ctx,
		query,
		entry.UserID,
		entry.Username,
		entry.FirstName,
		entry.Score,
		entry.Total,
		entry.Percentage,
		entry.PlayedAt,
	).Scan(&isNewBest)
	if errors.Is(err, pgx.ErrNoRows) {
		// Конфликт без обновления: прежний результат был не хуже.
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return isNewBest, nil
}

// Top возвращает до limit лучших записей.
func (s *Storage) Top(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	query := `
	SELECT user_id, username, first_name, score, total, percentage, played_at
	FROM leaderboard
	ORDER BY percentage DESC, score DESC
	LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []leaderboard.Entry
	for rows.Next() {
		var entry leaderboard.Entry
		err = rows.Scan(
			&entry.UserID,
			&entry.Username,
			&entry.FirstName,
			&entry.Score,
			&entry.Total,
			&entry.Percentage,
			&entry.PlayedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
