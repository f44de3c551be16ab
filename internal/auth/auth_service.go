package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "employee-register/internal/auth/errors"
	"employee-register/internal/rbac"
	"employee-register/internal/shared/contextutil"
	"employee-register/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (accessToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, userID string) (*AuthResponse, error)

	// SeedAdmin creates an ADMIN account unless username is blank or taken.
	SeedAdmin(ctx context.Context, username, password, email string) (bool, error)
}

type service struct {
	users  user.Repository
	tokens TokenConfig
	now    func() time.Time
	logger *zap.Logger
}

func NewService(users user.Repository, tokens TokenConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if tokens.TTL <= 0 {
		tokens.TTL = 24 * time.Hour
	}
	return &service{users: users, tokens: tokens, now: time.Now, logger: l}
}

func (s *service) Login(ctx context.Context, username, password string) (string, AuthResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("login lookup failed", zap.Error(err))
		}
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(u.ID.String(), u.Username, u.Role)
	if err != nil {
		logger.Error("sign access token failed", zap.Error(err))
		return "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	logger.Info("user logged in", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return token, toAuthResponse(*u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := toAuthResponse(*u)
	return &resp, nil
}

func (s *service) SeedAdmin(ctx context.Context, username, password, email string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, nil
	}

	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if password == "" {
		return false, errors.New("seed admin password is empty")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	admin := &user.User{
		ID:       uuid.New(),
		Username: username,
		Password: string(hashed),
		Role:     rbac.RoleAdmin,
	}
	if email = strings.TrimSpace(email); email != "" {
		admin.Email = &email
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return false, err
	}

	s.logger.Info("admin user seeded", zap.String("username", username))
	return true, nil
}

func (s *service) generateToken(userID, username, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"exp":      s.now().Add(s.tokens.TTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.tokens.Secret))
}

func toAuthResponse(u user.User) AuthResponse {
	return AuthResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.EmailAddress(),
		Role:     u.Role,
	}
}
