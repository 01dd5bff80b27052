// Package testutil — моки репозиториев и фейковый Telegram API для тестов.
package testutil

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"

	"balabol/internal/features/triggers"
	"balabol/internal/features/users"
	"balabol/internal/features/words"
)

// MockUserRepo — мок users.Repo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, userTgID int64, fullName, username string) (*users.User, error) {
	args := m.Called(ctx, userTgID, fullName, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepo) GetByTgID(ctx context.Context, userTgID int64) (*users.User, error) {
	args := m.Called(ctx, userTgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepo) UpdateName(ctx context.Context, userTgID int64, fullName string) error {
	args := m.Called(ctx, userTgID, fullName)
	return args.Error(0)
}

func (m *MockUserRepo) UpdateRole(ctx context.Context, userTgID int64, role users.Role) error {
	args := m.Called(ctx, userTgID, role)
	return args.Error(0)
}

// MockWordRepo — мок words.Repo
type MockWordRepo struct {
	mock.Mock
}

func (m *MockWordRepo) Create(ctx context.Context, text string, authorTgID int64) (*words.Word, error) {
	args := m.Called(ctx, text, authorTgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*words.Word), args.Error(1)
}

func (m *MockWordRepo) GetByID(ctx context.Context, id int64) (*words.Word, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*words.Word), args.Error(1)
}

func (m *MockWordRepo) GetByText(ctx context.Context, text string) (*words.Word, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*words.Word), args.Error(1)
}

func (m *MockWordRepo) List(ctx context.Context) ([]*words.Word, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*words.Word), args.Error(1)
}

func (m *MockWordRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWordRepo) Random(ctx context.Context) (*words.Word, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*words.Word), args.Error(1)
}

// MockTriggerRepo — мок triggers.Repo
type MockTriggerRepo struct {
	mock.Mock
}

func (m *MockTriggerRepo) Create(ctx context.Context, phrase string, authorTgID int64) (*triggers.TriggerGroup, error) {
	args := m.Called(ctx, phrase, authorTgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*triggers.TriggerGroup), args.Error(1)
}

func (m *MockTriggerRepo) List(ctx context.Context) ([]*triggers.TriggerGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*triggers.TriggerGroup), args.Error(1)
}

func (m *MockTriggerRepo) GetByPhrase(ctx context.Context, phrase string) (*triggers.TriggerGroup, error) {
	args := m.Called(ctx, phrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*triggers.TriggerGroup), args.Error(1)
}

func (m *MockTriggerRepo) AppendWord(ctx context.Context, id int64, word string) error {
	args := m.Called(ctx, id, word)
	return args.Error(0)
}

// FakeAPI — фейковый Telegram API, запоминает все отправленные сообщения.
// Реализует и Sender обработчиков, и bot.API.
type FakeAPI struct {
	Sent    []tgbotapi.MessageConfig
	SendErr error
}

func (f *FakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.Sent = append(f.Sent, msg)
	}
	return tgbotapi.Message{}, f.SendErr
}

func (f *FakeAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	ch := make(chan tgbotapi.Update)
	close(ch)
	return ch
}

func (f *FakeAPI) StopReceivingUpdates() {}

// LastText возвращает текст последнего отправленного сообщения.
func (f *FakeAPI) LastText() string {
	if len(f.Sent) == 0 {
		return ""
	}
	return f.Sent[len(f.Sent)-1].Text
}

// Reset забывает отправленные сообщения.
func (f *FakeAPI) Reset() {
	f.Sent = nil
}
