package capture_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"balabol/internal/capture"
)

func TestStore_DefaultIsIdle(t *testing.T) {
	s := capture.NewStore()

	st := s.Get(42)

	assert.Equal(t, capture.Idle, st.Kind)
	assert.Zero(t, st.GroupID)
}

func TestStore_SetAndGet(t *testing.T) {
	s := capture.NewStore()

	s.Set(42, capture.State{Kind: capture.AwaitingNewWord})

	assert.Equal(t, capture.AwaitingNewWord, s.Get(42).Kind)
	// чужое состояние не задето
	assert.Equal(t, capture.Idle, s.Get(43).Kind)
}

func TestStore_SetOverwritesSilently(t *testing.T) {
	// На пользователя не больше одного ожидания: новое молча затирает старое
	s := capture.NewStore()

	s.Set(42, capture.State{Kind: capture.AwaitingNewName})
	s.Set(42, capture.State{Kind: capture.AwaitingTriggerWord, GroupID: 7})

	st := s.Get(42)
	assert.Equal(t, capture.AwaitingTriggerWord, st.Kind)
	assert.Equal(t, int64(7), st.GroupID)
}

func TestStore_Reset(t *testing.T) {
	s := capture.NewStore()

	s.Set(42, capture.State{Kind: capture.AwaitingWordDeleteIndex})
	s.Reset(42)

	assert.Equal(t, capture.Idle, s.Get(42).Kind)
}

func TestStore_PayloadOnlyForTriggerWord(t *testing.T) {
	s := capture.NewStore()

	s.Set(1, capture.State{Kind: capture.AwaitingTriggerWord, GroupID: 3})
	s.Set(2, capture.State{Kind: capture.AwaitingNewWord})

	assert.Equal(t, int64(3), s.Get(1).GroupID)
	assert.Zero(t, s.Get(2).GroupID)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	// Карта общая на все горутины обработки апдейтов — доступ должен быть
	// безопасен при параллельных Set/Get/Reset разных пользователей
	s := capture.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		userID := int64(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Set(userID, capture.State{Kind: capture.AwaitingNewWord})
			_ = s.Get(userID)
			s.Reset(userID)
			s.Set(userID, capture.State{Kind: capture.AwaitingNewName})
		}()
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.Equal(t, capture.AwaitingNewName, s.Get(int64(i)).Kind)
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "idle", capture.Idle.String())
	assert.Equal(t, "awaiting_trigger_word", capture.AwaitingTriggerWord.String())
}
