// Package triggers — handlers.go обрабатывает команды обсиралок.
// Создание — один захват (фраза). Дополнение — цепочка из двух захватов:
// сначала номер обсиралки, потом слово. Между шагами набор обсиралок
// резолвится по снапшот-кэшу.
package triggers

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
type Curator interface {
	CanCurate(ctx context.Context, userTgID int64) (bool, error)
}

// Handler обрабатывает команды обсиралок.
type Handler struct {
	service  *Service
	curator  Curator
	captures *capture.Store
	api      Sender
}

// NewHandler создаёт новый обработчик обсиралок.
func NewHandler(service *Service, curator Curator, captures *capture.Store, api Sender) *Handler {
	return &Handler{service: service, curator: curator, captures: captures, api: api}
}

// HandleCreateRequest начинает создание обсиралки: обновляет кэш и ставит
// ожидание фразы-триггера.
func (h *Handler) HandleCreateRequest(ctx context.Context, chatID, userTgID int64) error {
	ok, err := h.checkRights(ctx, chatID, userTgID)
	if err != nil || !ok {
		return err
	}
	if err := h.service.RefreshCache(ctx); err != nil {
		return err
	}
	h.captures.Set(userTgID, capture.State{Kind: capture.AwaitingTriggerPhrase})
	h.reply(chatID, "Введите фразу-триггер:")
	return nil
}

// CompleteCreate завершает создание: захваченное сообщение становится
// фразой-триггером, список слов пока пуст.
func (h *Handler) CompleteCreate(ctx context.Context, chatID, userTgID int64, text string) error {
	g, err := h.service.Create(ctx, userTgID, text)
	if err != nil {
		return err
	}
	h.captures.Reset(userTgID)
	h.reply(chatID, "Обсиралка №"+strconv.FormatInt(g.ID, 10)+" создана. Наполни её: !дополнить обсиралку")
	return nil
}

// HandleAppendRequest начинает дополнение: обновляет кэш, показывает номера
// и ставит ожидание номера обсиралки.
func (h *Handler) HandleAppendRequest(ctx context.Context, chatID, userTgID int64) error {
	ok, err := h.checkRights(ctx, chatID, userTgID)
	if err != nil || !ok {
		return err
	}
	if err := h.service.RefreshCache(ctx); err != nil {
		return err
	}
	if h.service.CacheSize() == 0 {
		h.reply(chatID, "Обсиралок пока нет. Создай первую: !создать обсиралку")
		return nil
	}
	h.captures.Set(userTgID, capture.State{Kind: capture.AwaitingTriggerTargetID})
	h.reply(chatID, "Введите номер обсиралки (посмотреть номера: !обсиралки):")
	return nil
}

// CompleteTargetID обрабатывает захваченный номер обсиралки.
// Не число — ожидание сбрасывается целиком, диалог придётся начинать
// заново. Номер, которого нет в снапшоте, — ожидание остаётся, можно
// ввести другой.
func (h *Handler) CompleteTargetID(ctx context.Context, chatID, userTgID int64, text string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		h.captures.Reset(userTgID)
		h.reply(chatID, "Нужен номер обсиралки, а не текст. Начните заново: !дополнить обсиралку")
		return nil
	}

	g, ok := h.service.Cached(id)
	if !ok {
		h.reply(chatID, "Обсиралки с таким номером нет. Попробуйте другой:")
		return nil
	}

	h.captures.Set(userTgID, capture.State{Kind: capture.AwaitingTriggerWord, GroupID: g.ID})
	h.reply(chatID, "Введите слово для обсиралки «"+g.Phrase+"»:")
	return nil
}

// CompleteAppendWord обрабатывает захваченное слово для выбранной обсиралки.
// Номер резолвится по кэшу повторно: если обсиралка из снапшота исчезла,
// диалог сбрасывается.
func (h *Handler) CompleteAppendWord(ctx context.Context, chatID, userTgID, groupID int64, text string) error {
	g, ok := h.service.Cached(groupID)
	if !ok {
		h.captures.Reset(userTgID)
		h.reply(chatID, "Обсиралки с таким номером нет.")
		return nil
	}

	word := strings.TrimSpace(text)
	if err := h.service.Append(ctx, g.ID, word); err != nil {
		return err
	}

	h.captures.Reset(userTgID)
	h.reply(chatID, "Слово добавлено в обсиралку «"+g.Phrase+"»: "+word)
	return nil
}

// HandleList показывает все обсиралки с номерами и размерами.
func (h *Handler) HandleList(ctx context.Context, chatID int64) error {
	list, err := h.service.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		h.reply(chatID, "Обсиралок пока нет. Создай первую: !создать обсиралку")
		return nil
	}

	var b strings.Builder
	b.WriteString("Обсиралки:\n")
	for _, g := range list {
		b.WriteString(strconv.FormatInt(g.ID, 10) + ". «" + g.Phrase + "» — " +
			strconv.Itoa(len(g.Words)) + " " + common.PluralizeWords(len(g.Words)) + "\n")
	}
	h.reply(chatID, b.String())
	return nil
}

func (h *Handler) checkRights(ctx context.Context, chatID, userTgID int64) (bool, error) {
	ok, err := h.curator.CanCurate(ctx, userTgID)
	if err != nil {
		if errors.Is(err, common.ErrNotRegistered) {
			h.reply(chatID, "Сначала напиши мне /start.")
			return false, nil
		}
		return false, err
	}
	if !ok {
		h.reply(chatID, "У вас нет прав для работы с обсиралками.")
		return false, nil
	}
	return true, nil
}

func (h *Handler) reply(chatID int64, text string) {
	if _, err := h.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
