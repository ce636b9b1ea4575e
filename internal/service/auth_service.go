package service

import (
	"predictthis_backend/internal/config"
	"predictthis_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates the single admin account against its configured
// bcrypt hash.
type AuthService struct {
	admin config.AdminConfig
	jwt   config.JWTConfig
}

func NewAuthService(admin config.AdminConfig, jwt config.JWTConfig) *AuthService {
	return &AuthService{admin: admin, jwt: jwt}
}

// Login verifies credentials and mints an admin token.
func (s *AuthService) Login(username, password string) (string, error) {
	if username != s.admin.Username {
		return "", util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}
	return util.GenerateJWT(username, "admin", s.jwt.Secret, s.jwt.ExpireTime)
}
