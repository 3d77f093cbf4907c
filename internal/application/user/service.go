// Package user provides the application layer for account management.
package user

import (
	"context"
	stderrors "errors"

	"github.com/forkcast/v1/internal/domain/user"
	"github.com/forkcast/v1/internal/ports/inbound"
	"github.com/forkcast/v1/internal/ports/outbound"
	"github.com/forkcast/v1/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the account use cases.
type Service struct {
	users  outbound.UserRepository
	logger *zap.Logger
}

// NewService creates a new account service.
func NewService(users outbound.UserRepository, logger *zap.Logger) *Service {
	return &Service{
		users:  users,
		logger: logger.Named("user-service"),
	}
}

var _ inbound.UserService = (*Service)(nil)

// Register creates a new account. The email must not be taken.
func (s *Service) Register(ctx context.Context, cmd inbound.RegisterCommand) (*inbound.UserView, error) {
	if existing, err := s.users.FindByEmail(ctx, cmd.Email); err == nil && existing != nil {
		return nil, errors.NewAppError(errors.CodeEmailAlreadyExists, "email is already registered", "").
			WithCause(user.ErrEmailTaken)
	}

	entity, err := user.NewUser(cmd.Email, cmd.Name, cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.users.Create(ctx, entity); err != nil {
		return nil, errors.NewStorageError("create user", err)
	}

	s.logger.Info("user registered", zap.Stringer("user_id", entity.ID()))
	return toView(entity), nil
}

// Authenticate verifies credentials and records the login time. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*inbound.UserView, error) {
	entity, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, errors.NewStorageError("find user", err)
	}

	if err := entity.Authenticate(password); err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, entity.ID()); err != nil {
		// Login still succeeds; the timestamp is best effort.
		s.logger.Warn("failed to record login time",
			zap.Stringer("user_id", entity.ID()),
			zap.Error(err),
		)
	}
	return toView(entity), nil
}

// GetProfile returns the account details.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*inbound.UserView, error) {
	entity, err := s.users.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return nil, errors.NewNotFoundError("user")
		}
		return nil, errors.NewStorageError("find user", err)
	}
	return toView(entity), nil
}

// UpdateProfile renames the account.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, name string) (*inbound.UserView, error) {
	entity, err := s.users.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return nil, errors.NewNotFoundError("user")
		}
		return nil, errors.NewStorageError("find user", err)
	}

	if err := entity.UpdateName(name); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.users.Update(ctx, entity); err != nil {
		return nil, errors.NewStorageError("update user", err)
	}
	return toView(entity), nil
}

func toView(entity *user.User) *inbound.UserView {
	return &inbound.UserView{
		ID:        entity.ID(),
		Email:     entity.Email(),
		Name:      entity.Name(),
		CreatedAt: entity.CreatedAt(),
	}
}
