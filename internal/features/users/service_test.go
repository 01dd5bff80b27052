package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"balabol/internal/common"
	"balabol/internal/features/users"
	"balabol/internal/testutil"
)

const superID = "100500"

func newService(repo users.Repo) *users.Service {
	return users.NewService(repo, testutil.NewTestConfig(superID))
}

func TestService_Register_NewUser(t *testing.T) {
	repo := new(testutil.MockUserRepo)
	created := testutil.NewTestUser(42, "Вася Пупкин", users.RoleUser)
	repo.On("GetByTgID", mock.Anything, int64(42)).Return(nil, common.ErrUserNotFound)
	repo.On("Create", mock.Anything, int64(42), "Вася Пупкин", "vasya").Return(created, nil)

	u, existed, err := newService(repo).Register(context.Background(), 42, "Вася Пупкин", "vasya")

	assert.NoError(t, err)
	assert.False(t, existed)
	assert.Equal(t, users.RoleUser, u.Role)
	repo.AssertExpectations(t)
}

func TestService_Register_ExistingUser(t *testing.T) {
	repo := new(testutil.MockUserRepo)
	existing := testutil.NewTestUser(42, "Вася", users.RoleModerator)
	repo.On("GetByTgID", mock.Anything, int64(42)).Return(existing, nil)

	u, existed, err := newService(repo).Register(context.Background(), 42, "Другое Имя", "vasya")

	assert.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, "Вася", u.FullName)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Rename(t *testing.T) {
	repo := new(testutil.MockUserRepo)
	repo.On("UpdateName", mock.Anything, int64(42), "Новое Имя").Return(nil)

	err := newService(repo).Rename(context.Background(), 42, "Новое Имя")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_IsSuperuser(t *testing.T) {
	svc := newService(new(testutil.MockUserRepo))

	assert.True(t, svc.IsSuperuser(100500))
	assert.False(t, svc.IsSuperuser(100501))
}

func TestService_CanCurate(t *testing.T) {
	tests := []struct {
		name     string
		userTgID int64
		stored   *users.User
		want     bool
		wantErr  error
	}{
		{
			name:     "superuser can always, even unregistered",
			userTgID: 100500,
			want:     true,
		},
		{
			name:     "moderator can",
			userTgID: 42,
			stored:   testutil.NewTestUser(42, "Вася", users.RoleModerator),
			want:     true,
		},
		{
			name:     "plain user cannot",
			userTgID: 42,
			stored:   testutil.NewTestUser(42, "Вася", users.RoleUser),
			want:     false,
		},
		{
			name:     "unregistered gets ErrNotRegistered",
			userTgID: 42,
			wantErr:  common.ErrNotRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockUserRepo)
			if tt.stored != nil {
				repo.On("GetByTgID", mock.Anything, tt.userTgID).Return(tt.stored, nil)
			} else {
				repo.On("GetByTgID", mock.Anything, tt.userTgID).Return(nil, common.ErrUserNotFound)
			}

			got, err := newService(repo).CanCurate(context.Background(), tt.userTgID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Promote(t *testing.T) {
	repo := new(testutil.MockUserRepo)
	target := testutil.NewTestUser(42, "Вася", users.RoleUser)
	repo.On("GetByTgID", mock.Anything, int64(42)).Return(target, nil)
	repo.On("UpdateRole", mock.Anything, int64(42), users.RoleModerator).Return(nil)

	u, err := newService(repo).Promote(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, users.RoleModerator, u.Role)
	repo.AssertExpectations(t)
}

func TestService_Promote_AlreadyModerator(t *testing.T) {
	// Повторное назначение той же роли — отказ без изменений
	repo := new(testutil.MockUserRepo)
	target := testutil.NewTestUser(42, "Вася", users.RoleModerator)
	repo.On("GetByTgID", mock.Anything, int64(42)).Return(target, nil)

	_, err := newService(repo).Promote(context.Background(), 42)

	assert.ErrorIs(t, err, common.ErrAlreadyModerator)
	repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Promote_Unregistered(t *testing.T) {
	repo := new(testutil.MockUserRepo)
	repo.On("GetByTgID", mock.Anything, int64(42)).Return(nil, common.ErrUserNotFound)

	_, err := newService(repo).Promote(context.Background(), 42)

	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestService_Demote(t *testing.T) {
	repo := new(testutil.MockUserRepo)
	target := testutil.NewTestUser(42, "Вася", users.RoleModerator)
	repo.On("GetByTgID", mock.Anything, int64(42)).Return(target, nil)
	repo.On("UpdateRole", mock.Anything, int64(42), users.RoleUser).Return(nil)

	u, err := newService(repo).Demote(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, users.RoleUser, u.Role)
	repo.AssertExpectations(t)
}

func TestService_Demote_AlreadyUser(t *testing.T) {
	repo := new(testutil.MockUserRepo)
	target := testutil.NewTestUser(42, "Вася", users.RoleUser)
	repo.On("GetByTgID", mock.Anything, int64(42)).Return(target, nil)

	_, err := newService(repo).Demote(context.Background(), 42)

	assert.ErrorIs(t, err, common.ErrAlreadyUser)
	repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestUser_CanCurate(t *testing.T) {
	assert.False(t, testutil.NewTestUser(1, "u", users.RoleUser).CanCurate())
	assert.True(t, testutil.NewTestUser(1, "m", users.RoleModerator).CanCurate())
}
