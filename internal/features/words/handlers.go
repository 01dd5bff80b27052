// Package words — handlers.go обрабатывает команды словаря.
// Добавление и удаление идут через захват следующего сообщения:
// команда переводит пользователя в режим ожидания, а сам текст
// приходит отдельным сообщением.
package words

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"balabol/internal/capture"
	"balabol/internal/common"
)

// Sender — минимум Telegram API, который нужен обработчику.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Curator отвечает, есть ли у пользователя права вести контент.
// Реализуется сервисом пользователей.
type Curator interface {
	CanCurate(ctx context.Context, userTgID int64) (bool, error)
}

// Handler обрабатывает команды словаря.
type Handler struct {
	service  *Service
	curator  Curator
	captures *capture.Store
	api      Sender
}

// NewHandler создаёт новый обработчик словаря.
func NewHandler(service *Service, curator Curator, captures *capture.Store, api Sender) *Handler {
	return &Handler{service: service, curator: curator, captures: captures, api: api}
}

// HandleAddRequest начинает добавление слова: проверяет права и ставит
// пользователю ожидание AwaitingNewWord. Без прав состояние не меняется.
func (h *Handler) HandleAddRequest(ctx context.Context, chatID, userTgID int64) error {
	ok, err := h.checkRights(ctx, chatID, userTgID, "У вас нет прав для добавления новых слов.")
	if err != nil || !ok {
		return err
	}
	h.captures.Set(userTgID, capture.State{Kind: capture.AwaitingNewWord})
	h.reply(chatID, "Введите слово:")
	return nil
}

// CompleteAdd завершает добавление захваченным сообщением.
// Дубликат (в строгом режиме) отклоняется, и ожидание сбрасывается —
// слово пропадает, бот не предлагает повторить.
func (h *Handler) CompleteAdd(ctx context.Context, chatID, userTgID int64, text string) error {
	w, err := h.service.Add(ctx, userTgID, text)
	switch {
	case err == nil:
		h.captures.Reset(userTgID)
		h.reply(chatID, "Слово успешно добавлено: "+w.Word)
		return nil
	case errors.Is(err, common.ErrWordExists):
		h.captures.Reset(userTgID)
		h.reply(chatID, "Такое слово уже добавлено.")
		return nil
	case errors.Is(err, common.ErrWordEmpty):
		h.captures.Reset(userTgID)
		h.reply(chatID, "Пустое слово добавлять не буду.")
		return nil
	default:
		return err
	}
}

// HandleDeleteRequest начинает удаление: ставит ожидание номера слова.
func (h *Handler) HandleDeleteRequest(ctx context.Context, chatID, userTgID int64) error {
	ok, err := h.checkRights(ctx, chatID, userTgID, "У вас нет прав для удаления слов.")
	if err != nil || !ok {
		return err
	}
	h.captures.Set(userTgID, capture.State{Kind: capture.AwaitingWordDeleteIndex})
	h.reply(chatID, "Введите номер слова (посмотреть номера: !слова):")
	return nil
}

// CompleteDelete завершает удаление захваченным сообщением.
// Не число и несуществующий номер НЕ сбрасывают ожидание — пользователь
// остаётся в режиме удаления и может попробовать ещё раз.
func (h *Handler) CompleteDelete(ctx context.Context, chatID, userTgID int64, text string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		h.reply(chatID, "Нужен номер слова, а не текст. Попробуйте ещё раз:")
		return nil
	}

	w, err := h.service.Delete(ctx, id)
	switch {
	case err == nil:
		h.captures.Reset(userTgID)
		h.reply(chatID, "Слово №"+strconv.FormatInt(id, 10)+" («"+w.Word+"») удалено.")
		return nil
	case errors.Is(err, common.ErrWordNotFound):
		h.reply(chatID, "Слова с таким номером нет. Попробуйте другой:")
		return nil
	default:
		return err
	}
}

// HandleList показывает весь словарь с номерами.
func (h *Handler) HandleList(ctx context.Context, chatID int64) error {
	list, err := h.service.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		h.reply(chatID, "В базе пока нет слов.")
		return nil
	}

	var b strings.Builder
	b.WriteString("Всего " + strconv.Itoa(len(list)) + " " + common.PluralizeWords(len(list)) + ":\n")
	for _, w := range list {
		b.WriteString(strconv.FormatInt(w.ID, 10) + ". " + w.Word + "\n")
	}
	h.reply(chatID, b.String())
	return nil
}

// checkRights проверяет права и при отказе отвечает пользователю.
func (h *Handler) checkRights(ctx context.Context, chatID, userTgID int64, denyText string) (bool, error) {
	ok, err := h.curator.CanCurate(ctx, userTgID)
	if err != nil {
		if errors.Is(err, common.ErrNotRegistered) {
			h.reply(chatID, "Сначала напиши мне /start.")
			return false, nil
		}
		return false, err
	}
	if !ok {
		h.reply(chatID, denyText)
		return false, nil
	}
	return true, nil
}

func (h *Handler) reply(chatID int64, text string) {
	if _, err := h.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
