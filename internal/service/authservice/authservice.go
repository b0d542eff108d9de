package authservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pointsdesk/pointsdesk/internal/domain"
	"github.com/pointsdesk/pointsdesk/pkg/auth"
)

type Repo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already taken")
	ErrUserNotFound       = errors.New("user not found")
)

const sessionTTL = 12 * time.Hour

type Service struct {
	userRepo    Repo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
}

func New(repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		userRepo:    repo,
		hashService: hashService,
		jwtService:  jwtService,
	}
}

// Authenticate checks the supplied password against the stored bcrypt
// hash. Plaintext comparison is deliberately not supported.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil || user == nil {
		zap.L().Info("login rejected", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Info("login rejected", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	zap.L().Info("user authenticated", zap.String("email", email))
	return user, nil
}

func (s *Service) GenerateToken(userID int, isAdmin bool) (string, error) {
	expirationTime := time.Now().Add(sessionTTL)

	token, err := s.jwtService.GenerateJWT(userID, isAdmin, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		zap.L().Error("failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (s *Service) CreateUser(ctx context.Context, email, password string, isAdmin bool) (*domain.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hashed,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, err
	}
	zap.L().Info("user created", zap.String("email", email))
	return user, nil
}

// UpdateUser changes email and/or password; empty values keep the
// stored ones. A new password is re-hashed before write.
func (s *Service) UpdateUser(ctx context.Context, id int, email, password string) (*domain.User, error) {
	current, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if current == nil {
		return nil, ErrUserNotFound
	}

	if email != "" {
		current.Email = email
	}
	if password != "" {
		hashed, err := s.hashService.HashPassword(password)
		if err != nil {
			zap.L().Error("can't hash password: ", zap.Error(err))
			return nil, err
		}
		current.PasswordHash = hashed
	}

	updated, err := s.userRepo.Update(ctx, current)
	if err != nil {
		zap.L().Error("failed to update user", zap.Error(err))
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	zap.L().Info("user updated", zap.Int("id", id))
	return updated, nil
}
