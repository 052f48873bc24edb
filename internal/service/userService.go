package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	repository "github.com/ds124wfegd/seat-reservation/internal/database/postgres"
	"github.com/ds124wfegd/seat-reservation/internal/entity"
	"github.com/ds124wfegd/seat-reservation/pkg/auth"
)

type userService struct {
	users     repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

// NewUserService создает сервис пользователей: прямой CRUD без
// дополнительной логики, за исключением хэширования пароля
func NewUserService(users repository.UserRepository, jwtSecret string, jwtTTL time.Duration) UserService {
	return &userService{
		users:     users,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

// Register регистрирует нового пользователя
func (s *userService) Register(ctx context.Context, req *RegisterUserRequest) (*entity.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("ошибка при хэшировании пароля: %w", err)
	}

	user := &entity.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	return user, nil
}

// Login проверяет учетные данные и выдает подписанный токен
func (s *userService) Login(ctx context.Context, req *LoginRequest) (string, *entity.User, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return "", nil, entity.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("ошибка при поиске пользователя: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return "", nil, entity.ErrUnauthorized
	}

	token, err := auth.NewToken(s.jwtSecret, auth.Identity{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
	}, s.jwtTTL)
	if err != nil {
		return "", nil, fmt.Errorf("ошибка при выпуске токена: %w", err)
	}

	return token, user, nil
}

// GetUserByID возвращает пользователя по ID
func (s *userService) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}
	return user, nil
}
