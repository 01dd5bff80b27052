package triggers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"balabol/internal/common"
	"balabol/internal/features/triggers"
	"balabol/internal/testutil"
)

func firstWord(n int) int { return 0 }

func TestService_RefreshCacheAndCached(t *testing.T) {
	repo := new(testutil.MockTriggerRepo)
	list := []*triggers.TriggerGroup{
		testutil.NewTestGroup(1, "привет", "лох"),
		testutil.NewTestGroup(2, "пока"),
	}
	repo.On("List", mock.Anything).Return(list, nil)

	svc := triggers.NewService(repo, firstWord)

	// до первого обновления снапшот пуст
	_, ok := svc.Cached(1)
	assert.False(t, ok)

	assert.NoError(t, svc.RefreshCache(context.Background()))
	assert.Equal(t, 2, svc.CacheSize())

	g, ok := svc.Cached(1)
	assert.True(t, ok)
	assert.Equal(t, "привет", g.Phrase)

	_, ok = svc.Cached(99)
	assert.False(t, ok)
}

func TestService_CacheIsSnapshot(t *testing.T) {
	// Кэш не следит за базой: между обновлениями он может устареть
	repo := new(testutil.MockTriggerRepo)
	repo.On("List", mock.Anything).Return([]*triggers.TriggerGroup{
		testutil.NewTestGroup(1, "привет"),
	}, nil).Once()
	repo.On("List", mock.Anything).Return([]*triggers.TriggerGroup{
		testutil.NewTestGroup(1, "привет"),
		testutil.NewTestGroup(2, "пока"),
	}, nil).Once()

	svc := triggers.NewService(repo, firstWord)

	assert.NoError(t, svc.RefreshCache(context.Background()))
	_, ok := svc.Cached(2)
	assert.False(t, ok, "новая обсиралка не видна до следующего обновления")

	assert.NoError(t, svc.RefreshCache(context.Background()))
	_, ok = svc.Cached(2)
	assert.True(t, ok)
}

func TestService_Create_TrimsPhrase(t *testing.T) {
	repo := new(testutil.MockTriggerRepo)
	created := testutil.NewTestGroup(1, "привет")
	repo.On("Create", mock.Anything, "привет", int64(42)).Return(created, nil)

	g, err := triggers.NewService(repo, firstWord).Create(context.Background(), 42, "  привет  ")

	assert.NoError(t, err)
	assert.Empty(t, g.Words, "новая обсиралка создаётся пустой")
	repo.AssertExpectations(t)
}

func TestService_Append(t *testing.T) {
	repo := new(testutil.MockTriggerRepo)
	repo.On("AppendWord", mock.Anything, int64(3), "лох").Return(nil)

	err := triggers.NewService(repo, firstWord).Append(context.Background(), 3, "лох")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_RandomWordOf_Empty(t *testing.T) {
	// Пустая обсиралка — уведомление вместо выбора, никогда не паника
	svc := triggers.NewService(new(testutil.MockTriggerRepo), firstWord)

	_, err := svc.RandomWordOf(testutil.NewTestGroup(1, "привет"))

	assert.ErrorIs(t, err, common.ErrNoTriggerWords)
}

func TestService_RandomWordOf_SingleWord(t *testing.T) {
	// С одним словом выбор всегда возвращает его
	svc := triggers.NewService(new(testutil.MockTriggerRepo), firstWord)
	g := testutil.NewTestGroup(1, "привет", "лох")

	for i := 0; i < 20; i++ {
		w, err := svc.RandomWordOf(g)
		assert.NoError(t, err)
		assert.Equal(t, "лох", w)
	}
}

func TestService_RandomWordOf_UsesInjectedRand(t *testing.T) {
	g := testutil.NewTestGroup(1, "привет", "а", "б", "в")

	svc := triggers.NewService(new(testutil.MockTriggerRepo), func(n int) int {
		assert.Equal(t, 3, n, "выбор идёт по всему живому набору")
		return 2
	})

	w, err := svc.RandomWordOf(g)
	assert.NoError(t, err)
	assert.Equal(t, "в", w)
}

func TestService_MatchPhrase_NotFound(t *testing.T) {
	repo := new(testutil.MockTriggerRepo)
	repo.On("GetByPhrase", mock.Anything, "просто текст").Return(nil, common.ErrTriggerNotFound)

	_, err := triggers.NewService(repo, firstWord).MatchPhrase(context.Background(), "просто текст")

	assert.ErrorIs(t, err, common.ErrTriggerNotFound)
}
