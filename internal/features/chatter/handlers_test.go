package chatter_test

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"balabol/internal/common"
	"balabol/internal/features/chatter"
	"balabol/internal/features/triggers"
	"balabol/internal/features/words"
	"balabol/internal/testutil"
)

func plainMsg(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 10,
		From:      &tgbotapi.User{ID: 42},
		Chat:      &tgbotapi.Chat{ID: 77, Type: "group"},
		Text:      text,
	}
}

// newHandler собирает обработчик с настоящими сервисами поверх моков.
func newHandler(triggerRepo *testutil.MockTriggerRepo, wordRepo *testutil.MockWordRepo, probability, roll float64, api *testutil.FakeAPI) *chatter.Handler {
	triggerSvc := triggers.NewService(triggerRepo, func(n int) int { return 0 })
	wordSvc := words.NewService(wordRepo, true)
	svc := chatter.NewService(probability, func() float64 { return roll })
	return chatter.NewHandler(svc, triggerSvc, wordSvc, api)
}

func TestHandler_TriggerMatchRepliesThreaded(t *testing.T) {
	triggerRepo := new(testutil.MockTriggerRepo)
	wordRepo := new(testutil.MockWordRepo)
	api := &testutil.FakeAPI{}
	triggerRepo.On("GetByPhrase", mock.Anything, "привет").
		Return(testutil.NewTestGroup(1, "привет", "лох"), nil)

	h := newHandler(triggerRepo, wordRepo, 0, 0.5, api)
	err := h.HandlePlainText(context.Background(), plainMsg("привет"), false)

	assert.NoError(t, err)
	assert.Len(t, api.Sent, 1)
	assert.Equal(t, "лох", api.LastText())
	assert.Equal(t, 10, api.Sent[0].ReplyToMessageID, "ответ тредится к исходному сообщению")
	// совпадение триггера не трогает общий словарь
	wordRepo.AssertNotCalled(t, "Random", mock.Anything)
}

func TestHandler_TriggerMatchEmptyGroup(t *testing.T) {
	// Пустая обсиралка — уведомление, а не выбор
	triggerRepo := new(testutil.MockTriggerRepo)
	api := &testutil.FakeAPI{}
	triggerRepo.On("GetByPhrase", mock.Anything, "привет").
		Return(testutil.NewTestGroup(1, "привет"), nil)

	h := newHandler(triggerRepo, new(testutil.MockWordRepo), 1, 0, api)
	err := h.HandlePlainText(context.Background(), plainMsg("привет"), false)

	assert.NoError(t, err)
	assert.Len(t, api.Sent, 1)
	assert.Contains(t, api.LastText(), "пока нет слов")
}

func TestHandler_ReplyToBotInjects(t *testing.T) {
	triggerRepo := new(testutil.MockTriggerRepo)
	wordRepo := new(testutil.MockWordRepo)
	api := &testutil.FakeAPI{}
	triggerRepo.On("GetByPhrase", mock.Anything, mock.Anything).Return(nil, common.ErrTriggerNotFound)
	wordRepo.On("Random", mock.Anything).Return(testutil.NewTestWord(1, "банан", 7), nil)

	h := newHandler(triggerRepo, wordRepo, 0, 0.99, api)
	err := h.HandlePlainText(context.Background(), plainMsg("как дела"), true)

	assert.NoError(t, err)
	assert.Equal(t, "банан", api.LastText())
	assert.Equal(t, 10, api.Sent[0].ReplyToMessageID)
}

func TestHandler_NoMatchNoRoll_Silent(t *testing.T) {
	triggerRepo := new(testutil.MockTriggerRepo)
	wordRepo := new(testutil.MockWordRepo)
	api := &testutil.FakeAPI{}
	triggerRepo.On("GetByPhrase", mock.Anything, mock.Anything).Return(nil, common.ErrTriggerNotFound)

	h := newHandler(triggerRepo, wordRepo, 0.05, 0.9, api)
	err := h.HandlePlainText(context.Background(), plainMsg("как дела"), false)

	assert.NoError(t, err)
	assert.Empty(t, api.Sent)
	wordRepo.AssertNotCalled(t, "Random", mock.Anything)
}

func TestHandler_EmptyCorpus_Silent(t *testing.T) {
	// Словарь пуст — молчим, это не ошибка
	triggerRepo := new(testutil.MockTriggerRepo)
	wordRepo := new(testutil.MockWordRepo)
	api := &testutil.FakeAPI{}
	triggerRepo.On("GetByPhrase", mock.Anything, mock.Anything).Return(nil, common.ErrTriggerNotFound)
	wordRepo.On("Random", mock.Anything).Return(nil, common.ErrNoWords)

	h := newHandler(triggerRepo, wordRepo, 1, 0, api)
	err := h.HandlePlainText(context.Background(), plainMsg("как дела"), false)

	assert.NoError(t, err)
	assert.Empty(t, api.Sent)
}
