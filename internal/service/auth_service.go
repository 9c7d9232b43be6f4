package service

import (
	"errors"
	"fmt"
	"strings"

	"creatorkart/config"
	"creatorkart/internal/auth"
	"creatorkart/internal/domain"
	"creatorkart/internal/models"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrSlugExists   = errors.New("storefront slug already taken")
	ErrInvalidCreds = errors.New("invalid email or password")
	ErrInvalidRole  = errors.New("invalid role")
)

// UserStore and CreatorStore are satisfied by the gorm repositories.
type UserStore interface {
	Create(u *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

type CreatorStore interface {
	CreateProfile(p *models.CreatorProfile) error
	GetBySlug(slug string) (*models.CreatorProfile, error)
}

type AuthService struct {
	cfg         *config.Config
	userRepo    UserStore
	creatorRepo CreatorStore
}

func NewAuthService(cfg *config.Config, userRepo UserStore, creatorRepo CreatorStore) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo, creatorRepo: creatorRepo}
}

// Register creates a user with role BUYER or CREATOR. Creators also get a
// storefront profile seeded from displayName/slug.
func (s *AuthService) Register(name, email, phone, password, role, displayName, slug string) (*models.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role != domain.RoleBuyer && role != domain.RoleCreator {
		return nil, "", "", ErrInvalidRole
	}
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, "", "", ErrEmailExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", "", err
	}

	if role == domain.RoleCreator && slug != "" {
		if _, err := s.creatorRepo.GetBySlug(slug); err == nil {
			return nil, "", "", ErrSlugExists
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", "", err
	}

	if role == domain.RoleCreator {
		if slug == "" {
			slug = fmt.Sprintf("creator-%d", u.ID)
		}
		if displayName == "" {
			displayName = name
		}
		if err := s.creatorRepo.CreateProfile(&models.CreatorProfile{
			UserID:      u.ID,
			DisplayName: displayName,
			Slug:        slug,
		}); err != nil {
			return nil, "", "", err
		}
	}

	access, refresh, err := s.tokens(u)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.userRepo.GetByEmail(email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", "", ErrInvalidCreds
	}
	if err != nil {
		return nil, "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, refresh, err := s.tokens(u)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(refreshToken string) (string, string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", err
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}
	return s.tokens(u)
}

func (s *AuthService) tokens(u *models.User) (string, string, error) {
	access, err := auth.IssueAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.IssueRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
