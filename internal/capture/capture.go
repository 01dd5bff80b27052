// Package capture хранит состояния диалогового «захвата»: пометку о том,
// что следующее обычное сообщение пользователя нужно трактовать как ввод
// для начатой многошаговой операции (смена имени, добавление слова и т.д.),
// а не как болтовню.
//
// Состояния живут только в памяти процесса: рестарт бота сбрасывает все
// незавершённые операции, и это осознанно — никакой персистентности здесь нет.
package capture

import "sync"

// Kind — вид ожидаемого ввода.
type Kind int

const (
	// Idle — ничего не ждём, сообщение обрабатывается как обычное
	Idle Kind = iota
	// AwaitingNewName — ждём новое имя пользователя
	AwaitingNewName
	// AwaitingNewWord — ждём новое слово для словаря
	AwaitingNewWord
	// AwaitingWordDeleteIndex — ждём номер слова на удаление
	AwaitingWordDeleteIndex
	// AwaitingTriggerPhrase — ждём фразу-триггер новой обсиралки
	AwaitingTriggerPhrase
	// AwaitingTriggerTargetID — ждём номер обсиралки, которую дополняем
	AwaitingTriggerTargetID
	// AwaitingTriggerWord — ждём слово для выбранной обсиралки
	AwaitingTriggerWord
)

// String — для логов.
func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case AwaitingNewName:
		return "awaiting_new_name"
	case AwaitingNewWord:
		return "awaiting_new_word"
	case AwaitingWordDeleteIndex:
		return "awaiting_word_delete_index"
	case AwaitingTriggerPhrase:
		return "awaiting_trigger_phrase"
	case AwaitingTriggerTargetID:
		return "awaiting_trigger_target_id"
	case AwaitingTriggerWord:
		return "awaiting_trigger_word"
	}
	return "unknown"
}

// State — ожидание одного пользователя. Нулевое значение = Idle.
// GroupID заполняется только для AwaitingTriggerWord: это номер обсиралки,
// выбранной на предыдущем шаге.
type State struct {
	Kind    Kind
	GroupID int64
}

// Store — карта «Telegram ID → ожидание», общая на весь процесс.
// Инвариант: на пользователя не больше одного ожидания; новый Set молча
// затирает старое. Мьютекс защищает саму карту, сериализации сообщений
// одного пользователя между собой нет.
type Store struct {
	mu     sync.RWMutex
	states map[int64]State
}

// NewStore создаёт пустое хранилище состояний.
func NewStore() *Store {
	return &Store{states: make(map[int64]State)}
}

// Get возвращает текущее ожидание пользователя (Idle, если его нет).
func (s *Store) Get(userTgID int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[userTgID]
}

// Set ставит пользователю новое ожидание, затирая прежнее.
func (s *Store) Set(userTgID int64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userTgID] = st
}

// Reset возвращает пользователя в Idle.
func (s *Store) Reset(userTgID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userTgID)
}
