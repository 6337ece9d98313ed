package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopline/catalog-service/internal/auth"
	"github.com/shopline/catalog-service/internal/config"
	"github.com/shopline/catalog-service/internal/domain"
	"github.com/shopline/catalog-service/internal/events"
	"github.com/shopline/catalog-service/internal/repository"
	"github.com/shopline/catalog-service/internal/validation"
	apperrors "github.com/shopline/catalog-service/pkg/util/errorutil"
)

const (
	userResource = "user"
	// EmailTakenMessage is returned when the normalized email already exists.
	EmailTakenMessage = "Email is already taken"
)

// UserService coordinates user persistence, password hashing and timestamps.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	now        func() time.Time
}

// UserDependencies encapsulates collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	// Clock overrides time.Now; used by tests.
	Clock func() time.Time
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, deps UserDependencies) *UserService {
	svc := &UserService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.BcryptCost,
		now:        deps.Clock,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// timestamp is truncated to what every backend can store.
func (s *UserService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *UserService) hash(password string) (string, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return "", apperrors.NewValidationError(validation.MsgFailed, map[string]any{
				"errors": validation.Errors{{Field: "password", Message: validation.MsgPasswordTooLong}},
			})
		}
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.Find(ctx)
	if err != nil {
		return nil, translate(err, userResource, EmailTakenMessage)
	}
	return users, nil
}

// Get returns one user by external id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, userResource, EmailTakenMessage)
	}
	return user, nil
}

// Create registers a user with a hashed password.
func (s *UserService) Create(ctx context.Context, input domain.UserPatch) (*domain.User, error) {
	if input.Email == nil || input.Password == nil {
		return nil, apperrors.NewValidationError("email and password required", nil)
	}
	hash, err := s.hash(*input.Password)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        *input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, translate(err, userResource, EmailTakenMessage)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventUserCreated, user.ID, input.Fields()))
	return user, nil
}

// Update applies the supplied fields and refreshes updatedAt.
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	changes := domain.UserChanges{
		Email:     patch.Email,
		FirstName: patch.FirstName,
		LastName:  patch.LastName,
		UpdatedAt: s.timestamp(),
	}
	if patch.Password != nil {
		hash, err := s.hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, id, changes)
	if err != nil {
		return nil, translate(err, userResource, EmailTakenMessage)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventUserUpdated, user.ID, patch.Fields()))
	return user, nil
}

// Delete removes a user; a missing user is reported as not found.
func (s *UserService) Delete(ctx context.Context, id string) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return translate(err, userResource, EmailTakenMessage)
	}
	if !deleted {
		return apperrors.NewNotFound(userResource, nil)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventUserDeleted, id, nil))
	return nil
}
