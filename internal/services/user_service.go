package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/celyn/geirfa/internal/errors"
	"github.com/celyn/geirfa/internal/logger"
	"github.com/celyn/geirfa/internal/models"
	"github.com/celyn/geirfa/internal/repository"
)

// UserService handles user profile business logic
type UserService interface {
	GetOrCreate(ctx context.Context, username string) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetOrCreate(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.NewValidationError("username", "must not be empty")
	}

	user, err := s.users.Upsert(ctx, username)
	if err != nil {
		log.Error("failed to upsert user %s: %v", username, err)
		return nil, errors.NewInternalError(err)
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return users, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting user: id=%d", id)

	if err := s.users.Delete(ctx, id); err != nil {
		if isNoRows(err) {
			return errors.NewNotFoundError("user", id)
		}
		log.Error("failed to delete user: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func isNoRows(err error) bool {
	return stderrors.Is(err, sql.ErrNoRows)
}
