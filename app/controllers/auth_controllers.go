package controllers

import (
	"errors"
	"net/http"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/repositories"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/services"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/ctx"
	"gorm.io/gorm"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		service: services.NewAuthService(repositories.NewUserRepository(db)),
	}
}

func (ac *AuthController) Register(c *ctx.Context) {
	var input struct {
		Name     string `json:"name"     validate:"required,max=100"`
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Role     string `json:"role"     validate:"nullable,in=admin,cashier"`
	}
	if !c.BindJSON(&input) {
		return
	}
	if input.Role == "" {
		input.Role = "cashier"
	}

	user, err := ac.service.Register(input.Name, input.Email, input.Password, input.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.Error(http.StatusConflict, "email already registered")
			return
		}
		c.Error(http.StatusInternalServerError, "could not register user")
		return
	}

	user.Password = ""
	c.Created(user)
}

func (ac *AuthController) Login(c *ctx.Context) {
	var input struct {
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if !c.BindJSON(&input) {
		return
	}

	user, tokens, err := ac.service.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Unauthorized("invalid credentials")
			return
		}
		c.Error(http.StatusInternalServerError, "login failed")
		return
	}

	user.Password = ""
	c.Success(map[string]any{"user": user, "tokens": tokens})
}

func (ac *AuthController) Refresh(c *ctx.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if !c.BindJSON(&input) {
		return
	}

	tokens, err := ac.service.Refresh(input.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid refresh token")
		return
	}
	c.Success(tokens)
}
