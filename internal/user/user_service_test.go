package user_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"employee-register/internal/events"
	"employee-register/internal/messaging/kafka"
	kafkaMock "employee-register/internal/messaging/kafka/mock"
	"employee-register/internal/user"
	usererrors "employee-register/internal/user/errors"
	mock_user "employee-register/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	repo    *mock_user.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
	svc     user.Service
}

func setup(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := mock_user.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	return &serviceDeps{
		sqlMock: sqlMock,
		repo:    repo,
		outbox:  outbox,
		svc:     user.NewService(db, repo, outbox),
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func strPtr(s string) *string { return &s }

func TestUserService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults role, hashes password and queues welcome notice", func(t *testing.T) {
		deps := setup(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByUsername(ctx, "john").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().FindByEmail(ctx, "john@mail.com").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.Equal(t, "john", u.Username)
			assert.Equal(t, user.DefaultRole, u.Role)
			require.NotNil(t, u.Email)
			assert.Equal(t, "john@mail.com", *u.Email)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")))
			return nil
		})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
			assert.Equal(t, events.UserRegisteredTopic, ev.Topic)
			var payload events.UserRegisteredEvent
			require.NoError(t, json.Unmarshal(ev.Payload, &payload))
			assert.Equal(t, "john", payload.Username)
			assert.Equal(t, "secret123", payload.Password)
			return nil
		})

		res, err := deps.svc.Add(ctx, user.CreateUserRequest{
			Username: "  john ",
			Password: "secret123",
			Email:    " john@mail.com ",
		})

		require.NoError(t, err)
		assert.Equal(t, "john", res.Username)
		assert.Equal(t, "USER", res.Role)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no email skips notice", func(t *testing.T) {
		deps := setup(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByUsername(ctx, "ops").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.Nil(t, u.Email)
			assert.Equal(t, "ADMIN", u.Role)
			return nil
		})

		res, err := deps.svc.Add(ctx, user.CreateUserRequest{Username: "ops", Password: "pw", Role: "admin"})

		require.NoError(t, err)
		assert.Empty(t, res.Email)
	})

	t.Run("duplicate username", func(t *testing.T) {
		deps := setup(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByUsername(ctx, "john").Return(&user.User{ID: uuid.New(), Username: "john"}, nil)

		_, err := deps.svc.Add(ctx, user.CreateUserRequest{Username: "john", Password: "pw"})
		assert.ErrorIs(t, err, usererrors.ErrUsernameTaken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		deps := setup(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByUsername(ctx, "jane").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().FindByEmail(ctx, "shared@mail.com").Return(&user.User{ID: uuid.New()}, nil)

		_, err := deps.svc.Add(ctx, user.CreateUserRequest{Username: "jane", Password: "pw", Email: "shared@mail.com"})
		assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
	})

	t.Run("input checks", func(t *testing.T) {
		deps := setup(t)

		_, err := deps.svc.Add(ctx, user.CreateUserRequest{Username: "   ", Password: "pw"})
		assert.ErrorIs(t, err, usererrors.ErrMissingUsername)

		_, err = deps.svc.Add(ctx, user.CreateUserRequest{Username: "x"})
		assert.ErrorIs(t, err, usererrors.ErrMissingPassword)

		_, err = deps.svc.Add(ctx, user.CreateUserRequest{Username: "x", Password: "pw", Role: "root"})
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("old"), bcrypt.MinCost)
	require.NoError(t, err)

	existing := func() *user.User {
		return &user.User{
			ID:       id,
			Username: "john",
			Password: string(hash),
			Email:    strPtr("john@mail.com"),
			Role:     "ADMIN",
		}
	}

	t.Run("keeps password, overwrites email and role", func(t *testing.T) {
		deps := setup(t)
		expectTx(t, deps.sqlMock, true)
		u := existing()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, id.String()).Return(u, nil)
		deps.repo.EXPECT().Update(ctx, u).Return(nil)

		res, err := deps.svc.Update(ctx, id.String(), user.UpdateUserRequest{Username: "john"})

		require.NoError(t, err)
		assert.Empty(t, res.Email)
		assert.Nil(t, u.Email)
		assert.Equal(t, "USER", res.Role)
		assert.Equal(t, string(hash), u.Password)
	})

	t.Run("new password is hashed", func(t *testing.T) {
		deps := setup(t)
		expectTx(t, deps.sqlMock, true)
		u := existing()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, id.String()).Return(u, nil)
		deps.repo.EXPECT().Update(ctx, u).Return(nil)

		_, err := deps.svc.Update(ctx, id.String(), user.UpdateUserRequest{
			Username: "john",
			Password: "fresh",
			Email:    "john@mail.com",
			Role:     "ADMIN",
		})

		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("fresh")))
	})

	t.Run("renamed onto another user", func(t *testing.T) {
		deps := setup(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, id.String()).Return(existing(), nil)
		deps.repo.EXPECT().FindByUsername(ctx, "jane").Return(&user.User{ID: uuid.New(), Username: "jane"}, nil)

		_, err := deps.svc.Update(ctx, id.String(), user.UpdateUserRequest{Username: "jane", Email: "john@mail.com"})
		assert.ErrorIs(t, err, usererrors.ErrUsernameTaken)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		deps := setup(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, id.String()).Return(existing(), nil)
		deps.repo.EXPECT().FindByEmail(ctx, "jane@mail.com").Return(&user.User{ID: uuid.New()}, nil)

		_, err := deps.svc.Update(ctx, id.String(), user.UpdateUserRequest{Username: "john", Email: "jane@mail.com"})
		assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setup(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, id.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.svc.Update(ctx, id.String(), user.UpdateUserRequest{Username: "john"})
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_Reads(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("get by username returns nil when absent", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

		res, err := deps.svc.GetByUsername(ctx, " ghost ")
		assert.NoError(t, err)
		assert.Nil(t, res)
	})

	t.Run("get by username", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().FindByUsername(ctx, "john").Return(&user.User{ID: id, Username: "john", Role: "USER"}, nil)

		res, err := deps.svc.GetByUsername(ctx, "john")
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, id.String(), res.ID)
	})

	t.Run("get by id not found", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.svc.GetByID(ctx, id.String())
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("get all repository error", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().FindAll(ctx).Return(nil, errors.New("db error"))

		res, err := deps.svc.GetAll(ctx)
		assert.Error(t, err)
		assert.Nil(t, res)
	})

	t.Run("delete", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().Delete(ctx, id.String()).Return(true, nil)

		deleted, err := deps.svc.Delete(ctx, id.String())
		assert.NoError(t, err)
		assert.True(t, deleted)

		_, err = deps.svc.Delete(ctx, "bad")
		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})
}
