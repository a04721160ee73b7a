package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"taskvault/internal/apperr"
	"taskvault/internal/domain/entity"
	repo "taskvault/internal/domain/repository"
	"taskvault/pkg/helpers"
)

// emailShape is the basic email pattern enforced on top of trimming and
// lowercasing. Full RFC validation is deliberately out of scope.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserService is the user directory: it owns credential-store access and
// enforces email uniqueness. Anything it returns to callers outside the
// auth flow is an entity.Profile, which cannot carry the password hash.
type UserService struct {
	Repo   repo.UserRepository
	Hasher *helpers.PasswordHasher
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, hasher *helpers.PasswordHasher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Hasher: hasher, Logger: logger}
}

// NormalizeEmail trims, lowercases and shape-checks an email address.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailShape.MatchString(email) {
		return "", fmt.Errorf("%w: malformed email", apperr.ErrValidation)
	}
	return email, nil
}

// Register creates a user with a hashed password. The duplicate pre-check
// gives a friendly conflict in the common case; the unique index on email
// settles races.
func (s *UserService) Register(ctx context.Context, email, password string) (entity.Profile, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return entity.Profile{}, err
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Warn("registration with duplicate email")
		}
		return entity.Profile{}, apperr.ErrConflict
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return entity.Profile{}, err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return entity.Profile{}, err
	}

	u := &entity.User{Email: email, PasswordHash: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		return entity.Profile{}, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	return u.Profile(), nil
}

// FindByEmail returns the full credential record, hash included. It exists
// for the login flow only; callers must translate its ErrNotFound into a
// generic invalid-credentials error before anything leaves the process.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	return s.Repo.GetByEmail(ctx, email)
}

func (s *UserService) GetProfile(ctx context.Context, id string) (entity.Profile, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return entity.Profile{}, err
	}
	return u.Profile(), nil
}

// UpdateProfileInput is a partial update; empty fields are left untouched.
type UpdateProfileInput struct {
	Email    string
	Password string
}

// UpdateProfile changes email and/or password. An email change re-checks
// uniqueness; a password change re-hashes.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (entity.Profile, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return entity.Profile{}, err
	}

	if in.Email != "" {
		email, err := NormalizeEmail(in.Email)
		if err != nil {
			return entity.Profile{}, err
		}
		if email != u.Email {
			if other, err := s.Repo.GetByEmail(ctx, email); err == nil && other.ID != u.ID {
				return entity.Profile{}, apperr.ErrConflict
			} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
				return entity.Profile{}, err
			}
			u.Email = email
		}
	}

	if in.Password != "" {
		hash, err := s.Hasher.Hash(in.Password)
		if err != nil {
			return entity.Profile{}, err
		}
		u.PasswordHash = hash
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return entity.Profile{}, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("profile updated")
	}
	return u.Profile(), nil
}
