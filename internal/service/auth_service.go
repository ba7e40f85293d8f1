package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/config"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/auth"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/domain"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/models"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
)

// AuthService is the minimal identity layer: enough to know whether a
// recipient identity exists and to gate the admin surface.
type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
	triggers *TriggerService
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository, triggers *TriggerService) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo, triggers: triggers}
}

func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, "", "", ErrEmailExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", "", err
	}

	if err := s.triggers.HandleWelcome(ctx, user); err != nil {
		log.Printf("[Auth] welcome trigger for %d: %v", user.ID, err)
	}

	access, refresh, err := s.tokens(user)
	return user, access, refresh, err
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, refresh, err := s.tokens(user)
	return user, access, refresh, err
}

func (s *AuthService) Refresh(refreshToken string) (string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", err
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	return auth.GenerateAccessToken(&s.cfg.JWT, user.ID, user.Email, user.Role)
}

func (s *AuthService) tokens(user *models.User) (string, string, error) {
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, user.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
