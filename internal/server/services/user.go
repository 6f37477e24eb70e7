package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Muliro1/alx-files-manager/internal/common"
	"github.com/Muliro1/alx-files-manager/internal/dbx"
	"github.com/Muliro1/alx-files-manager/internal/logging"
	"github.com/Muliro1/alx-files-manager/internal/server/auth"
	"github.com/Muliro1/alx-files-manager/internal/server/config"
	"github.com/Muliro1/alx-files-manager/internal/server/models"
	"github.com/Muliro1/alx-files-manager/internal/server/queue"
	"github.com/Muliro1/alx-files-manager/internal/server/repositories/repomanager"
	"github.com/Muliro1/alx-files-manager/internal/server/sessions"
)

// WelcomeJob is handed to the background mailer after a registration.
type WelcomeJob struct {
	UserID string `json:"userId"`
}

// UserService handles registration, login/logout, and token-scoped user
// lookups.
type UserService struct {
	db       dbx.DBTX
	rm       repomanager.RepositoryManager
	sessions sessions.Store
	gate     *Gate
	hasher   auth.PasswordHasher
	welcome  queue.Queue
	logger   logging.Logger
	config   *config.Config
}

func NewUserService(db dbx.DBTX, rm repomanager.RepositoryManager, store sessions.Store,
	gate *Gate, hasher auth.PasswordHasher, welcome queue.Queue,
	logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:       db,
		rm:       rm,
		sessions: store,
		gate:     gate,
		hasher:   hasher,
		welcome:  welcome,
		logger:   logger,
		config:   cfg,
	}
}

// Register creates a new user. A duplicate email yields ErrorConflict.
// The welcome job is a decoupled side effect: its failure is logged and
// never surfaced.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.UserView, error) {
	if email == "" {
		return nil, common.ErrorMissingEmail
	}
	if password == "" {
		return nil, common.ErrorMissingPassword
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.rm.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Email: email, PasswordDigest: digest})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	if err := s.welcome.Enqueue(ctx, WelcomeJob{UserID: user.ID}); err != nil {
		s.logger.Error(ctx, "welcome job enqueue failed", "user_id", user.ID, "error", err)
	}

	return user.View(), nil
}

// Login verifies the credentials and mints an opaque session token bound to
// the user for the configured TTL. Unknown email and wrong password are
// indistinguishable.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.rm.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !s.hasher.Compare(user.PasswordDigest, password) {
		return "", common.ErrorUnauthorized
	}

	token := uuid.NewString()
	if err := s.sessions.Put(ctx, common.SessionKeyPrefix+token, user.ID, s.config.SessionTTL); err != nil {
		return "", fmt.Errorf("error storing session: %w", err)
	}

	return token, nil
}

// Logout destroys the session bound to token.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if _, err := s.gate.Authenticate(ctx, token); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, common.SessionKeyPrefix+token)
}

// Me returns the user bound to token.
func (s *UserService) Me(ctx context.Context, token string) (*models.UserView, error) {
	userID, err := s.gate.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	repo := s.rm.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user.View(), nil
}
