package user

import (
	"context"
	"database/sql"
	"employee-register/internal/events"
	"employee-register/internal/messaging/kafka"
	"employee-register/internal/shared/contextutil"
	usererrors "employee-register/internal/user/errors"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Add(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	// GetByUsername returns nil without error when no user has that name.
	GetByUsername(ctx context.Context, username string) (*UserResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

// NewService wires the user service. A nil outbox disables welcome notices.
func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		logger: l,
	}
}

func (s *service) Add(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	logger := contextutil.GetLogger(ctx, s.logger)

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return UserResponse{}, usererrors.ErrMissingUsername
	}
	if req.Password == "" {
		return UserResponse{}, usererrors.ErrMissingPassword
	}
	email := strings.TrimSpace(req.Email)
	role := NormalizeRole(req.Role)
	if !ValidRole(role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("add user begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := checkUsernameFree(ctx, qtx, username, uuid.Nil); err != nil {
		return UserResponse{}, err
	}
	if err := checkEmailFree(ctx, qtx, email, uuid.Nil); err != nil {
		return UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:       uuid.New(),
		Username: username,
		Password: string(hashed),
		Email:    optionalEmail(email),
		Role:     role,
	}
	if err := qtx.Create(ctx, u); err != nil {
		logger.Error("add user persist failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil && email != "" {
		event, err := kafka.NewOutboxEvent(rid, "user", u.ID.String(), events.UserRegisteredType, events.UserRegisteredTopic,
			events.UserRegisteredEvent{
				EventType:  events.UserRegisteredType,
				RequestID:  rid,
				UserID:     u.ID.String(),
				Username:   u.Username,
				Email:      email,
				Password:   req.Password,
				OccurredAt: time.Now().UTC(),
			})
		if err != nil {
			logger.Error("marshal user_registered event failed", zap.String("request_id", rid), zap.Error(err))
			return UserResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			logger.Error("add user outbox persist failed",
				zap.String("user_id", u.ID.String()),
				zap.Error(err),
			)
			return UserResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("add user commit failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, err
	}

	logger.Info("user created",
		zap.String("request_id", rid),
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username),
		zap.String("role", u.Role),
	)
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	userID, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return UserResponse{}, usererrors.ErrMissingUsername
	}
	email := strings.TrimSpace(req.Email)
	role := NormalizeRole(req.Role)
	if !ValidRole(role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("update user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	u, err := qtx.FindByIDForUpdate(ctx, userID.String())
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if username != u.Username {
		if err := checkUsernameFree(ctx, qtx, username, u.ID); err != nil {
			return UserResponse{}, err
		}
	}
	if email != u.EmailAddress() {
		if err := checkEmailFree(ctx, qtx, email, u.ID); err != nil {
			return UserResponse{}, err
		}
	}

	u.Username = username
	u.Email = optionalEmail(email)
	u.Role = role
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("failed to hash password", zap.Error(err))
			return UserResponse{}, err
		}
		u.Password = string(hashed)
	}

	if err := qtx.Update(ctx, u); err != nil {
		logger.Error("update user persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		logger.Error("update user commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, usererrors.ErrInvalidUserID
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete user failed", zap.String("user_id", id), zap.Error(err))
		return false, err
	}
	return deleted, nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) GetByUsername(ctx context.Context, username string) (*UserResponse, error) {
	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := mapToResponse(*u)
	return &resp, nil
}

// checkUsernameFree fails when another user than self already holds username.
func checkUsernameFree(ctx context.Context, repo Repository, username string, self uuid.UUID) error {
	existing, err := repo.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return usererrors.ErrUsernameTaken
	}
	return nil
}

// checkEmailFree is checkUsernameFree for email. A blank email never collides.
func checkEmailFree(ctx context.Context, repo Repository, email string, self uuid.UUID) error {
	if email == "" {
		return nil
	}
	existing, err := repo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return usererrors.ErrEmailTaken
	}
	return nil
}

func optionalEmail(email string) *string {
	if email == "" {
		return nil
	}
	return &email
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.EmailAddress(),
		Role:     u.Role,
	}
}
