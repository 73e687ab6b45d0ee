package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"techmarket/internal/domain"
	"techmarket/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the only role an access token carries.
const RoleAdmin = "admin"

// AccessService handles the two entry actions of the access screen.
type AccessService interface {
	ClientEntry() domain.Route
	AdminLogin(ctx context.Context, name, senha string) (*AdminSession, error)
}

// AccessConfig configures admin login.
type AccessConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	// PlaintextPasswords looks admins up by name and senha equality. This is
	// the legacy usersadmin contract and stores passwords in clear text.
	PlaintextPasswords bool
}

// AdminSession is the result of a successful admin login.
type AdminSession struct {
	Name        string       `json:"name"`
	Route       domain.Route `json:"route"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// Claims represents the JWT claims of an admin access token
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type accessService struct {
	adminRepo repository.AdminRepository
	cfg       AccessConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewAccessService creates a new instance of AccessService
func NewAccessService(adminRepo repository.AdminRepository, cfg AccessConfig, logger *zap.Logger) AccessService {
	return &accessService{
		adminRepo: adminRepo,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// ClientEntry lets anyone browse the product list.
func (s *accessService) ClientEntry() domain.Route {
	return domain.RouteProducts
}

// AdminLogin checks the credentials against usersadmin and issues an access
// token for the management routes.
func (s *accessService) AdminLogin(ctx context.Context, name, senha string) (*AdminSession, error) {
	if name == "" || senha == "" {
		return nil, invalid("", MsgLoginFieldsRequired)
	}

	admin, err := s.lookup(ctx, name, senha)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.logger.Info("Admin login rejected", zap.String("name", name))
			return nil, err
		}
		s.logger.Error("Login query failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	token, expiresAt, err := s.generateAccessToken(admin.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.Info("Admin logged in", zap.String("name", admin.Name))
	return &AdminSession{
		Name:        admin.Name,
		Route:       domain.RouteManagement,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *accessService) lookup(ctx context.Context, name, senha string) (*domain.AdminCredential, error) {
	if s.cfg.PlaintextPasswords {
		admin, err := s.adminRepo.FindByCredentials(ctx, name, senha)
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return admin, err
	}

	admin, err := s.adminRepo.FindByName(ctx, name)
	if errors.Is(err, repository.ErrAdminNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Senha), []byte(senha)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &domain.AdminCredential{Name: admin.Name}, nil
}

// generateAccessToken signs an HS256 token with the admin name as subject
func (s *accessService) generateAccessToken(name string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.TokenTTL)

	claims := &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   name,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}
