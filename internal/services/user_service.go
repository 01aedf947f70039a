package services

import (
	"context"
	"log/slog"

	"starbank/internal/models"
	"starbank/internal/repositories"
)

// UserService manages the owning user entity
type UserService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
	logger          *slog.Logger
	metrics         MetricsRecorderInterface
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	passwordService PasswordServiceInterface,
	logger *slog.Logger,
	metrics MetricsRecorderInterface,
) UserServiceInterface {
	return &UserService{
		userRepo:        userRepo,
		passwordService: passwordService,
		logger:          logger,
		metrics:         metrics,
	}
}

// CreateUser creates a user with a bcrypt-hashed password
func (us *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	hash, err := us.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	if err := us.userRepo.Create(user); err != nil {
		return nil, err
	}

	us.metrics.IncrementCounter("users_created", nil)
	us.logger.InfoContext(ctx, "user created",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("email", user.Email),
		slog.String("trace_id", getTraceID(ctx)),
	)

	return user, nil
}

// GetUser retrieves a user by ID
func (us *UserService) GetUser(id uint) (*models.User, error) {
	return us.userRepo.GetByID(id)
}

// GetUsers lists users with pagination
func (us *UserService) GetUsers(offset, limit int) ([]*models.User, int64, error) {
	return us.userRepo.List(offset, limit)
}

// UpdateUser applies the provided fields to a user and returns the fresh row
func (us *UserService) UpdateUser(id uint, update UserUpdate) (*models.User, error) {
	fields := map[string]interface{}{}
	if update.Email != nil {
		fields["email"] = *update.Email
	}
	if update.FirstName != nil {
		fields["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		fields["last_name"] = *update.LastName
	}

	if len(fields) > 0 {
		if err := us.userRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}

	return us.userRepo.GetByID(id)
}

// DeleteUser soft deletes a user
func (us *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := us.userRepo.Delete(id); err != nil {
		return err
	}

	us.metrics.IncrementCounter("users_deleted", nil)
	us.logger.InfoContext(ctx, "user deleted",
		slog.Uint64("user_id", uint64(id)),
		slog.String("trace_id", getTraceID(ctx)),
	)

	return nil
}
