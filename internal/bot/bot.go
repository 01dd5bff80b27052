// Package bot содержит главный модуль бота — цикл получения апдейтов и
// маршрутизацию сообщений. Порядок диспетчеризации фиксированный:
// повышение/понижение → захваченный ввод → команды → пассивные ответы.
// Захваченное сообщение никогда не проваливается в болтовню.
package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"balabol/internal/bot/middleware"
	"balabol/internal/capture"
	"balabol/internal/config"
	"balabol/internal/features/chatter"
	"balabol/internal/features/triggers"
	"balabol/internal/features/users"
	"balabol/internal/features/words"
)

// Тексты команд. Сравнение точное, без префиксного разбора.
const (
	cmdRename        = "!изменить имя"
	cmdAddWord       = "!добавить слово"
	cmdDeleteWord    = "!удалить слово"
	cmdListWords     = "!слова"
	cmdCreateTrigger = "!создать обсиралку"
	cmdAppendTrigger = "!дополнить обсиралку"
	cmdListTriggers  = "!обсиралки"
	cmdPromote       = "!повысить"
	cmdDemote        = "!понизить"
)

// API — часть Telegram API, которую использует бот.
// *tgbotapi.BotAPI её реализует; в тестах подставляется фейк.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api    API
	selfID int64
	cfg    *config.Config

	captures    *capture.Store
	rateLimiter *middleware.RateLimiter

	userHandler    *users.Handler
	wordHandler    *words.Handler
	triggerHandler *triggers.Handler
	chatterHandler *chatter.Handler

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
// selfID — Telegram ID самого бота, по нему распознаются реплаи на его
// сообщения.
func New(
	api API,
	selfID int64,
	cfg *config.Config,
	captures *capture.Store,
	userHandler *users.Handler,
	wordHandler *words.Handler,
	triggerHandler *triggers.Handler,
	chatterHandler *chatter.Handler,
) *Bot {
	maxInflight := cfg.BotMaxInflight
	if maxInflight <= 0 {
		maxInflight = 64
	}

	return &Bot{
		api:            api,
		selfID:         selfID,
		cfg:            cfg,
		captures:       captures,
		rateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		userHandler:    userHandler,
		wordHandler:    wordHandler,
		triggerHandler: triggerHandler,
		chatterHandler: chatterHandler,
		inflight:       make(chan struct{}, maxInflight),
	}
}

// Start запускает polling обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// Close освобождает фоновые ресурсы бота.
func (b *Bot) Close() {
	b.rateLimiter.Close()
}

// handleUpdate обрабатывает одно обновление от Telegram.
// Это единственная точка, где ловятся ошибки обработки: любая ошибка
// логируется, апдейт не ретраится, цикл живёт дальше.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	if update.Message == nil {
		return
	}

	if err := b.HandleMessage(ctx, update.Message); err != nil {
		log.WithError(err).WithField("update_id", update.UpdateID).Error("Ошибка обработки апдейта")
	}
}

// HandleMessage маршрутизирует одно входящее сообщение.
func (b *Bot) HandleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg == nil || msg.Text == "" {
		return nil
	}

	if msg.From == nil {
		// Транспорт не дал отправителя — отвечаем и бросаем этот апдейт
		b.sendMessage(msg.Chat.ID, "Произошла ошибка при обработке сообщения!")
		return nil
	}

	middleware.LogMessage(msg)

	chatID := msg.Chat.ID
	userID := msg.From.ID
	text := msg.Text

	if !b.rateLimiter.Allow(userID) {
		log.WithField("user_id", userID).Debug("rate limited")
		return nil
	}

	// 1. Повышение/понижение — одношаговая команда суперюзера, идёт раньше
	// захвата: даже посреди диалога реплай «!повысить» срабатывает как команда.
	if (text == cmdPromote || text == cmdDemote) && msg.ReplyToMessage != nil {
		var target *tgbotapi.User
		if msg.ReplyToMessage.From != nil {
			target = msg.ReplyToMessage.From
		}
		return b.userHandler.HandleEscalation(ctx, chatID, userID, target, text == cmdPromote)
	}

	// 2. Захваченный ввод: пользователь посреди многошаговой операции,
	// его сообщение — структурный ввод, а не болтовня и не команда.
	if st := b.captures.Get(userID); st.Kind != capture.Idle {
		return b.resolveCapture(ctx, msg, st)
	}

	// 3. Команды (точное совпадение)
	switch {
	case text == "/start" || strings.HasPrefix(text, "/start@"):
		return b.userHandler.HandleStart(ctx, chatID, msg.Chat.IsPrivate(), msg.From)
	case text == cmdRename:
		return b.userHandler.HandleRenameRequest(ctx, chatID, userID)
	case text == cmdAddWord:
		return b.wordHandler.HandleAddRequest(ctx, chatID, userID)
	case text == cmdDeleteWord:
		return b.wordHandler.HandleDeleteRequest(ctx, chatID, userID)
	case text == cmdListWords:
		return b.wordHandler.HandleList(ctx, chatID)
	case text == cmdCreateTrigger:
		return b.triggerHandler.HandleCreateRequest(ctx, chatID, userID)
	case text == cmdAppendTrigger:
		return b.triggerHandler.HandleAppendRequest(ctx, chatID, userID)
	case text == cmdListTriggers:
		return b.triggerHandler.HandleList(ctx, chatID)
	}

	// 4. Обычный текст: обсиралки и случайный вброс
	isReplyToBot := msg.ReplyToMessage != nil &&
		msg.ReplyToMessage.From != nil &&
		msg.ReplyToMessage.From.ID == b.selfID
	return b.chatterHandler.HandlePlainText(ctx, msg, isReplyToBot)
}

// resolveCapture доводит захваченное сообщение до нужного обработчика.
// Состояния взаимоисключающие: на пользователя всегда не больше одного.
func (b *Bot) resolveCapture(ctx context.Context, msg *tgbotapi.Message, st capture.State) error {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	log.WithFields(log.Fields{
		"user_id": userID,
		"state":   st.Kind.String(),
	}).Debug("Захваченный ввод")

	switch st.Kind {
	case capture.AwaitingTriggerTargetID:
		return b.triggerHandler.CompleteTargetID(ctx, chatID, userID, msg.Text)
	case capture.AwaitingTriggerWord:
		return b.triggerHandler.CompleteAppendWord(ctx, chatID, userID, st.GroupID, msg.Text)
	case capture.AwaitingTriggerPhrase:
		return b.triggerHandler.CompleteCreate(ctx, chatID, userID, msg.Text)
	case capture.AwaitingNewName:
		return b.userHandler.CompleteRename(ctx, chatID, userID, msg.Text)
	case capture.AwaitingWordDeleteIndex:
		return b.wordHandler.CompleteDelete(ctx, chatID, userID, msg.Text)
	case capture.AwaitingNewWord:
		return b.wordHandler.CompleteAdd(ctx, chatID, userID, msg.Text)
	}

	// Неизвестное состояние — сбрасываем, чтобы пользователь не завис
	b.captures.Reset(userID)
	return nil
}

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// SendMessageTo отправляет сообщение в произвольный чат (для фоновых задач).
func (b *Bot) SendMessageTo(chatID int64, text string) {
	b.sendMessage(chatID, text)
}
