package leaderboard

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Entry — запись в таблице лидеров: лучший результат одного пользователя.
type Entry struct {
	UserID     int64
	Username   string
	FirstName  string
	Score      int
	Total      int
	Percentage int
	PlayedAt   time.Time
}

// Service определяет интерфейс таблицы лидеров.
type Service interface {
	// Add сохраняет результат пользователя, если он лучше прежнего.
	// Возвращает true, если результат стал новым личным рекордом.
	Add(ctx context.Context, entry Entry) (bool, error)

	// Top возвращает до limit лучших записей, по убыванию процента и счёта.
	Top(ctx context.Context, limit int) ([]Entry, error)
}

// Memory реализует Service в памяти.
type Memory struct {
	mu      sync.RWMutex
	entries map[int64]Entry
}

// NewMemory создаёт новую таблицу лидеров в памяти.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[int64]Entry),
	}
}

// Add сохраняет результат пользователя, если он лучше прежнего.
func (m *Memory) Add(_ context.Context, entry Entry) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	previous, ok := m.entries[entry.UserID]
	if ok && !better(entry, previous) {
		return false, nil
	}

	m.entries[entry.UserID] = entry

	return true, nil
}

// Top возвращает до limit лучших записей.
func (m *Memory) Top(_ context.Context, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sorted := make([]Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		sorted = append(sorted, entry)
	}

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Percentage != sorted[j].Percentage {
			return sorted[i].Percentage > sorted[j].Percentage
		}

		return sorted[i].Score > sorted[j].Score
	})

	if limit > len(sorted) {
		limit = len(sorted)
	}

	return sorted[:limit], nil
}

func better(candidate, current Entry) bool {
	if candidate.Percentage != current.Percentage {
		return candidate.Percentage > current.Percentage
	}

	return candidate.Score > current.Score
}
