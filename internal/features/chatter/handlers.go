// Package chatter — handlers.go обрабатывает обычные сообщения, которые
// не команда и не захваченный ввод. Порядок строгий: сначала точное
// совпадение с фразой-триггером, потом случайный вброс. Ответы всегда
// тредятся к исходному сообщению.
package chatter

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"balabol/internal/common"
	"balabol/internal/features/triggers"
	"balabol/internal/features/words"
)

// Sender — минимум Telegram API, который нужен обработчику.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TriggerSource — поиск обсиралки по фразе и выбор слова из неё.
type TriggerSource interface {
	MatchPhrase(ctx context.Context, text string) (*triggers.TriggerGroup, error)
	RandomWordOf(g *triggers.TriggerGroup) (string, error)
}

// WordSource — случайное слово всего словаря.
type WordSource interface {
	Random(ctx context.Context) (*words.Word, error)
}

// Handler обрабатывает пассивные ответы.
type Handler struct {
	service      *Service
	triggerWords TriggerSource
	corpus       WordSource
	api          Sender
}

// NewHandler создаёт обработчик пассивных ответов.
func NewHandler(service *Service, triggerWords TriggerSource, corpus WordSource, api Sender) *Handler {
	return &Handler{service: service, triggerWords: triggerWords, corpus: corpus, api: api}
}

// HandlePlainText обрабатывает обычное сообщение.
//
// Политика по порядку:
//  1. точное совпадение с фразой обсиралки → случайное слово из неё
//     (пустая обсиралка → уведомление вместо выбора);
//  2. реплай на сообщение бота или выпавшая вероятность → случайное слово
//     всего словаря (пустой словарь → молчим);
//  3. иначе — ничего.
func (h *Handler) HandlePlainText(ctx context.Context, msg *tgbotapi.Message, isReplyToBot bool) error {
	g, err := h.triggerWords.MatchPhrase(ctx, msg.Text)
	switch {
	case err == nil:
		word, err := h.triggerWords.RandomWordOf(g)
		if errors.Is(err, common.ErrNoTriggerWords) {
			h.replyThreaded(msg, "В этой обсиралке пока нет слов. Наполни её: !дополнить обсиралку")
			return nil
		}
		if err != nil {
			return err
		}
		h.replyThreaded(msg, word)
		return nil
	case !errors.Is(err, common.ErrTriggerNotFound):
		return err
	}

	if !h.service.ShouldInject(isReplyToBot) {
		return nil
	}

	w, err := h.corpus.Random(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNoWords) {
			return nil
		}
		return err
	}
	h.replyThreaded(msg, w.Word)
	return nil
}

// replyThreaded отвечает тредом на исходное сообщение.
func (h *Handler) replyThreaded(orig *tgbotapi.Message, text string) {
	reply := tgbotapi.NewMessage(orig.Chat.ID, text)
	reply.ReplyToMessageID = orig.MessageID
	if _, err := h.api.Send(reply); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
