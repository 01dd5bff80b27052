// Package triggers — service.go содержит бизнес-логику обсиралок и
// снапшот-кэш. Кэш нужен двухшаговому дополнению: между вводом номера и
// вводом слова проходит два сообщения, и набор обсиралок должен оставаться
// адресуемым без похода в базу на каждом шаге. Кэш обновляется синхронно
// перед входом в такой диалог и между обновлениями может устареть — это
// принятое поведение, а не баг.
package triggers

import (
	"context"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"balabol/internal/common"
)

// Repo — операции с хранилищем обсиралок, нужные сервису.
type Repo interface {
	Create(ctx context.Context, phrase string, authorTgID int64) (*TriggerGroup, error)
	List(ctx context.Context) ([]*TriggerGroup, error)
	GetByPhrase(ctx context.Context, phrase string) (*TriggerGroup, error)
	AppendWord(ctx context.Context, id int64, word string) error
}

// Service управляет обсиралками.
type Service struct {
	repo Repo
	// intn выбирает случайный индекс; подменяется в тестах
	intn func(n int) int

	mu    sync.RWMutex
	cache map[int64]*TriggerGroup
}

// NewService создаёт новый сервис обсиралок.
// intn — источник случайности для выбора слова-ответа (обычно rand.Intn).
func NewService(repo Repo, intn func(n int) int) *Service {
	return &Service{
		repo:  repo,
		intn:  intn,
		cache: make(map[int64]*TriggerGroup),
	}
}

// RefreshCache перечитывает все обсиралки из базы в снапшот-кэш.
func (s *Service) RefreshCache(ctx context.Context) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	fresh := make(map[int64]*TriggerGroup, len(list))
	for _, g := range list {
		fresh[g.ID] = g
	}

	s.mu.Lock()
	s.cache = fresh
	s.mu.Unlock()

	log.WithField("count", len(fresh)).Debug("Кэш обсиралок обновлён")
	return nil
}

// Cached возвращает обсиралку из снапшота по номеру.
// Снапшот может отставать от базы — это осознанно.
func (s *Service) Cached(id int64) (*TriggerGroup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.cache[id]
	return g, ok
}

// CacheSize возвращает размер снапшота.
func (s *Service) CacheSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

// Create создаёт обсиралку с данной фразой и пустым списком слов.
func (s *Service) Create(ctx context.Context, authorTgID int64, phrase string) (*TriggerGroup, error) {
	g, err := s.repo.Create(ctx, strings.TrimSpace(phrase), authorTgID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"trigger_id":   g.ID,
		"author_tg_id": authorTgID,
	}).Info("Обсиралка создана")

	return g, nil
}

// Append дописывает слово в обсиралку.
func (s *Service) Append(ctx context.Context, id int64, word string) error {
	if err := s.repo.AppendWord(ctx, id, word); err != nil {
		return err
	}
	log.WithField("trigger_id", id).Info("Обсиралка дополнена")
	return nil
}

// List возвращает все обсиралки из базы (не из кэша).
func (s *Service) List(ctx context.Context) ([]*TriggerGroup, error) {
	return s.repo.List(ctx)
}

// MatchPhrase ищет обсиралку по точному совпадению текста сообщения.
// Если совпадения нет — common.ErrTriggerNotFound.
func (s *Service) MatchPhrase(ctx context.Context, text string) (*TriggerGroup, error) {
	return s.repo.GetByPhrase(ctx, text)
}

// RandomWordOf выбирает равномерно случайное слово обсиралки.
// Если слов нет — common.ErrNoTriggerWords.
func (s *Service) RandomWordOf(g *TriggerGroup) (string, error) {
	if len(g.Words) == 0 {
		return "", common.ErrNoTriggerWords
	}
	return g.Words[s.intn(len(g.Words))], nil
}
