package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/task-manager-api/internal/core/domain"
	"github.com/taskhub/task-manager-api/internal/core/ports"
)

// bcryptCost is the fixed work factor for password hashing.
const bcryptCost = 10

// TokenIssuer mints the signed session token handed out at login.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthService implements registration, login and profile retrieval.
type AuthService struct {
	users  ports.UserRepository
	tasks  ports.TaskRepository
	issuer TokenIssuer
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tasks ports.TaskRepository, issuer TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tasks: tasks, issuer: issuer, logger: logger}
}

// NormalizeEmail trims whitespace and lowercases, so lookups and the unique
// index are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register hashes the password and persists a new user. The email is
// normalized before the duplicate check so "A@X.com" and "a@x.com" collide.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	email = NormalizeEmail(email)

	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	} else if err != nil && err != domain.ErrUserNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("password hashing failed")
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Tasks:        []string{},
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and returns a signed token plus the user.
// An unknown email surfaces as ErrUserNotFound (the HTTP layer maps it to
// 404, preserving the source's login-time existence leak), a wrong password
// as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tkn, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("token issuance failed")
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login successful")
	return tkn, user, nil
}

// Profile loads the user and resolves its task-reference list into status
// buckets. Every task lands in exactly one bucket; unknown statuses are
// dropped (they cannot be created through the service).
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, *ports.TaskGroups, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	tasks, err := s.tasks.FindByIDs(ctx, user.Tasks)
	if err != nil {
		return nil, nil, err
	}

	groups := &ports.TaskGroups{
		YetToStart: []domain.Task{},
		InProgress: []domain.Task{},
		Completed:  []domain.Task{},
	}
	for _, t := range tasks {
		switch t.Status {
		case domain.StatusStart:
			groups.YetToStart = append(groups.YetToStart, t)
		case domain.StatusInProgress:
			groups.InProgress = append(groups.InProgress, t)
		case domain.StatusCompleted:
			groups.Completed = append(groups.Completed, t)
		}
	}

	return user, groups, nil
}
