package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"taskvault/internal/apperr"
	"taskvault/internal/domain/entity"
	"taskvault/pkg/helpers"
	"taskvault/pkg/mailer"
)

const sessionTTL = 24 * time.Hour

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// TokenPair is an access/refresh token set minted for one session id.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// AuthService composes the user directory with the token issuer. It is the
// only caller of UserService.FindByEmail and owns the collapse of "no such
// email" and "wrong password" into one indistinguishable failure.
type AuthService struct {
	Users  *UserService
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Mail   *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewAuthService(users *UserService, jwt *helpers.JWTManager, rdb *redis.Client, mail *helpers.RabbitPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Redis: rdb, Mail: mail, Logger: logger}
}

// Register creates the account and signs the new identity in. A Conflict
// from the directory propagates unchanged. The welcome email is best
// effort and never fails the registration.
func (s *AuthService) Register(ctx context.Context, email, password string) (entity.Profile, TokenPair, error) {
	profile, err := s.Users.Register(ctx, email, password)
	if err != nil {
		return entity.Profile{}, TokenPair{}, err
	}

	pair, err := s.issueTokens(ctx, profile.ID, profile.Email)
	if err != nil {
		return entity.Profile{}, TokenPair{}, err
	}

	if s.Mail != nil {
		if err := s.Mail.PublishJSON(ctx, mailer.WelcomeJob(profile.Email)); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", profile.ID).Warn("welcome email enqueue failed")
		}
	}

	return profile, pair, nil
}

// Login authenticates by email and password. Every failure path returns
// apperr.ErrInvalidCredentials so a caller cannot probe which emails are
// registered. The returned profile always matches the token identity.
func (s *AuthService) Login(ctx context.Context, email, password string) (entity.Profile, TokenPair, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return entity.Profile{}, TokenPair{}, apperr.ErrInvalidCredentials
	}
	if !s.Users.Hasher.Verify(u.PasswordHash, password) {
		if s.Logger != nil {
			s.Logger.WithField("user_id", u.ID).Warn("login with wrong password")
		}
		return entity.Profile{}, TokenPair{}, apperr.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, u.ID, u.Email)
	if err != nil {
		return entity.Profile{}, TokenPair{}, err
	}
	return u.Profile(), pair, nil
}

// Refresh rotates the session id and mints a new token pair. A refresh
// token whose session id no longer matches the stored one is rejected,
// which invalidates older tokens once a rotation happened.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", apperr.ErrInvalidToken
	}
	u, err := s.Users.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, "", apperr.ErrInvalidToken
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", apperr.ErrInvalidToken
		}
	}

	pair, err := s.issueTokens(ctx, u.ID, u.Email)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Logout drops the redis session; outstanding tokens die with it.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, sessionKey(userID)).Err()
}

func (s *AuthService) issueTokens(ctx context.Context, userID, email string) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(userID, email, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(userID, email, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(userID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    userID,
			"email":      email,
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}
