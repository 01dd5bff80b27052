// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает единственную задачу: ежедневное «слово дня» —
// случайное слово словаря, отправляемое в настроенный чат.
package jobs

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"balabol/internal/common"
	"balabol/internal/config"
	"balabol/internal/features/words"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron        *cron.Cron
	wordService *words.Service
	cfg         *config.Config
	sendFunc    func(chatID int64, text string)
}

// NewScheduler создаёт планировщик задач.
// sendFunc — отправка сообщения в чат (обычно Bot.SendMessageTo).
func NewScheduler(wordService *words.Service, cfg *config.Config, sendFunc func(chatID int64, text string)) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		wordService: wordService,
		cfg:         cfg,
		sendFunc:    sendFunc,
	}
}

// Start запускает фоновые задачи.
// Если DAILY_WORD_CHAT_ID не задан, планировщик остаётся пустым.
func (s *Scheduler) Start(ctx context.Context) {
	if s.cfg.DailyWordChatID == 0 {
		log.Info("Слово дня выключено (DAILY_WORD_CHAT_ID не задан)")
		return
	}

	_, err := s.cron.AddFunc(s.cfg.DailyWordCron, func() {
		log.Debug("[CRON] Слово дня")
		w, err := s.wordService.Random(ctx)
		if err != nil {
			if errors.Is(err, common.ErrNoWords) {
				// Пустой словарь — молчим до завтра
				return
			}
			log.WithError(err).Error("[CRON] Ошибка выбора слова дня")
			return
		}
		s.sendFunc(s.cfg.DailyWordChatID, "Слово дня: "+w.Word)
	})
	if err != nil {
		log.WithError(err).Error("Некорректное расписание DAILY_WORD_CRON, слово дня выключено")
		return
	}

	s.cron.Start()
	log.WithField("cron", s.cfg.DailyWordCron).Info("Планировщик задач запущен")
}

// Stop останавливает планировщик и ждёт завершения текущих задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
