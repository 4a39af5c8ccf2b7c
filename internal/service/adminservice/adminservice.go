package adminservice

import (
	"errors"
	"time"

	"github.com/GlebRadaev/adrewards/internal/config"
	"github.com/GlebRadaev/adrewards/pkg/auth"
	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenTTL = 12 * time.Hour

type Service struct {
	hashService  auth.HashServiceInterface
	jwtService   auth.JWTServiceInterface
	passwordHash string
}

// New hashes the configured operator password once at startup; only the
// hash is kept in memory.
func New(cfg *config.Config, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) (*Service, error) {
	hash, err := hashService.HashPassword(cfg.AdminPassword)
	if err != nil {
		zap.L().Error("can't hash admin password", zap.Error(err))
		return nil, err
	}
	return &Service{
		hashService:  hashService,
		jwtService:   jwtService,
		passwordHash: hash,
	}, nil
}

func (s *Service) Login(password string) (string, error) {
	if ok := s.hashService.ComparePassword(s.passwordHash, password); !ok {
		zap.L().Warn("admin login rejected")
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateJWT(auth.RoleAdmin, time.Now().Add(tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	zap.L().Info("admin logged in")
	return token, nil
}
