package words_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"balabol/internal/common"
	"balabol/internal/features/words"
	"balabol/internal/testutil"
)

func TestService_Add(t *testing.T) {
	repo := new(testutil.MockWordRepo)
	created := testutil.NewTestWord(1, "банан", 42)
	repo.On("GetByText", mock.Anything, "банан").Return(nil, common.ErrWordNotFound)
	repo.On("Create", mock.Anything, "банан", int64(42)).Return(created, nil)

	w, err := words.NewService(repo, true).Add(context.Background(), 42, "банан")

	assert.NoError(t, err)
	assert.Equal(t, "банан", w.Word)
	repo.AssertExpectations(t)
}

func TestService_Add_TrimsInput(t *testing.T) {
	repo := new(testutil.MockWordRepo)
	created := testutil.NewTestWord(1, "банан", 42)
	repo.On("GetByText", mock.Anything, "банан").Return(nil, common.ErrWordNotFound)
	repo.On("Create", mock.Anything, "банан", int64(42)).Return(created, nil)

	_, err := words.NewService(repo, true).Add(context.Background(), 42, "  банан  ")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Add_Duplicate(t *testing.T) {
	// Дубликат отклоняется, вторая строка не создаётся
	repo := new(testutil.MockWordRepo)
	existing := testutil.NewTestWord(1, "банан", 7)
	repo.On("GetByText", mock.Anything, "банан").Return(existing, nil)

	_, err := words.NewService(repo, true).Add(context.Background(), 42, "банан")

	assert.ErrorIs(t, err, common.ErrWordExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Add_DuplicateAllowedWhenUniqueOff(t *testing.T) {
	// С выключенным WORDS_UNIQUE проверки дубликатов нет вовсе
	repo := new(testutil.MockWordRepo)
	created := testutil.NewTestWord(2, "банан", 42)
	repo.On("Create", mock.Anything, "банан", int64(42)).Return(created, nil)

	_, err := words.NewService(repo, false).Add(context.Background(), 42, "банан")

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "GetByText", mock.Anything, mock.Anything)
}

func TestService_Add_Empty(t *testing.T) {
	repo := new(testutil.MockWordRepo)

	_, err := words.NewService(repo, true).Add(context.Background(), 42, "   ")

	assert.ErrorIs(t, err, common.ErrWordEmpty)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Delete(t *testing.T) {
	repo := new(testutil.MockWordRepo)
	stored := testutil.NewTestWord(5, "банан", 42)
	repo.On("GetByID", mock.Anything, int64(5)).Return(stored, nil)
	repo.On("Delete", mock.Anything, int64(5)).Return(nil)

	w, err := words.NewService(repo, true).Delete(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, "банан", w.Word)
	repo.AssertExpectations(t)
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := new(testutil.MockWordRepo)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, common.ErrWordNotFound)

	_, err := words.NewService(repo, true).Delete(context.Background(), 99)

	assert.ErrorIs(t, err, common.ErrWordNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_Random_SingleWordCorpus(t *testing.T) {
	// С одним словом в корпусе случайный выбор всегда возвращает его
	repo := new(testutil.MockWordRepo)
	only := testutil.NewTestWord(1, "банан", 42)
	repo.On("Random", mock.Anything).Return(only, nil)

	svc := words.NewService(repo, true)
	for i := 0; i < 20; i++ {
		w, err := svc.Random(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "банан", w.Word)
	}
}

func TestService_Random_Empty(t *testing.T) {
	repo := new(testutil.MockWordRepo)
	repo.On("Random", mock.Anything).Return(nil, common.ErrNoWords)

	_, err := words.NewService(repo, true).Random(context.Background())

	assert.ErrorIs(t, err, common.ErrNoWords)
}
