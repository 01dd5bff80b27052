// Package users — handlers.go обрабатывает команды, связанные с пользователями:
// /start, смену имени через захват следующего сообщения и повышение/понижение
// по реплаю от суперюзера.
package users

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"balabol/internal/capture"
	"balabol/internal/common"
)

// Sender — минимум Telegram API, который нужен обработчику.
// *tgbotapi.BotAPI его реализует; в тестах подставляется фейк.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Handler обрабатывает пользовательские команды.
type Handler struct {
	service  *Service
	captures *capture.Store
	api      Sender
}

// NewHandler создаёт новый обработчик пользователей.
func NewHandler(service *Service, captures *capture.Store, api Sender) *Handler {
	return &Handler{service: service, captures: captures, api: api}
}

// HandleStart регистрирует пользователя при первом /start.
// Без @username в профиле регистрация невозможна — нам нечего записать.
func (h *Handler) HandleStart(ctx context.Context, chatID int64, isPrivate bool, from *tgbotapi.User) error {
	fullName := from.FirstName
	if from.LastName != "" {
		fullName += " " + from.LastName
	}

	if from.UserName == "" {
		h.reply(chatID, "Произошла ошибка при получении данных о пользователе!\nВозможно у вас неуказан юзернейм в профиле.")
		return nil
	}

	u, alreadyExisted, err := h.service.Register(ctx, from.ID, fullName, from.UserName)
	if err != nil {
		return err
	}

	text := "Салам! " + u.FullName + "👏\nДобавь меня в группу и веселись🎉"
	if alreadyExisted {
		text = "С возвращением " + u.FullName + "👏\nДобавь меня в группу и веселись🎉"
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if isPrivate {
		// В личке подсказываем команды кнопками
		msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton("!изменить имя"),
				tgbotapi.NewKeyboardButton("!слова"),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton("!добавить слово"),
				tgbotapi.NewKeyboardButton("!обсиралки"),
			),
		)
	}
	h.send(msg)
	return nil
}

// HandleRenameRequest начинает смену имени: следующее сообщение
// пользователя будет принято как новое имя. Права не нужны.
func (h *Handler) HandleRenameRequest(ctx context.Context, chatID, userTgID int64) error {
	h.captures.Set(userTgID, capture.State{Kind: capture.AwaitingNewName})
	h.reply(chatID, "Введите новое имя:")
	return nil
}

// CompleteRename завершает смену имени захваченным сообщением.
// Имя берётся как есть, без обрезки.
func (h *Handler) CompleteRename(ctx context.Context, chatID, userTgID int64, text string) error {
	if err := h.service.Rename(ctx, userTgID, text); err != nil {
		return err
	}
	h.captures.Reset(userTgID)
	h.reply(chatID, "Имя успешно изменено на "+text)
	return nil
}

// HandleEscalation обрабатывает «!повысить»/«!понизить» по реплаю.
// Команда одношаговая, захват не используется. Выполнять её может только
// суперюзер; цель должна быть уже зарегистрирована, повторное назначение
// той же роли — отказ без изменений.
func (h *Handler) HandleEscalation(ctx context.Context, chatID, actorTgID int64, target *tgbotapi.User, promote bool) error {
	if !h.service.IsSuperuser(actorTgID) {
		h.reply(chatID, "Чепушила, ты не достоин этой команды!")
		return nil
	}

	if target == nil {
		h.reply(chatID, "Не удалось определить пользователя для повышения.")
		return nil
	}

	var (
		u   *User
		err error
	)
	if promote {
		u, err = h.service.Promote(ctx, target.ID)
	} else {
		u, err = h.service.Demote(ctx, target.ID)
	}

	switch {
	case err == nil:
		if promote {
			h.reply(chatID, "Пользователь "+u.FullName+" успешно повышен до модератора.")
		} else {
			h.reply(chatID, "Пользователь "+u.FullName+" успешно понижен до дебила.")
		}
		return nil
	case errors.Is(err, common.ErrUserNotFound):
		h.reply(chatID, "Этот пользователь не зарегистрирован у меня.")
		return nil
	case errors.Is(err, common.ErrAlreadyModerator):
		h.reply(chatID, "Этот пользователь уже имеет роль модератора.")
		return nil
	case errors.Is(err, common.ErrAlreadyUser):
		h.reply(chatID, "Этот пользователь уже имеет роль пользователя.")
		return nil
	default:
		return err
	}
}

// reply отправляет простой текстовый ответ.
func (h *Handler) reply(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.api.Send(c); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
