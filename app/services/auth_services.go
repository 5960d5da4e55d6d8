package services

import (
	"errors"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/repositories"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/auth"
	"gorm.io/gorm"
)

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// TokenPair is the access/refresh pair issued on login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *AuthService) Register(name, email, password, role string) (models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{Name: name, Email: email, Password: hash, Role: role}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login verifies the credentials and issues a token pair.
func (s *AuthService) Login(email, password string) (models.User, TokenPair, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return models.User{}, TokenPair{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	return user, pair, err
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *AuthService) Refresh(refreshToken string) (TokenPair, error) {
	claims, err := auth.ValidateToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user models.User) (TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
