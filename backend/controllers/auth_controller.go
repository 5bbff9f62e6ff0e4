package controllers

import (
	"errors"
	"log"
	"strings"
	"time"

	"resetclub/backend/config"
	"resetclub/backend/models"
	"resetclub/backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewAuthController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, Logger: logger}
}

// RegisterRequest defines the request body for creating an account
type RegisterRequest struct {
	Username string `json:"username" example:"camille"`
	Email    string `json:"email" example:"camille@example.com"`
	Password string `json:"password" example:"password123" minLength:"8"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a new account; emails listed in ADMIN_EMAILS get the admin role
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "User registration data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if len(input.Password) < 8 {
		return utils.ValidationError(c, map[string]string{"password": "must be at least 8"})
	}

	user := models.User{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Role:     models.RoleUser,
	}
	if ac.Cfg.IsAdminEmail(user.Email) {
		user.Role = models.RoleAdmin
	}
	if err := models.Validate(&user); err != nil {
		return utils.Fail(c, ac.Logger, err)
	}

	var existing int64
	if err := ac.DB.Model(&models.User{}).Where("email = ? OR username = ?", user.Email, user.Username).Count(&existing).Error; err != nil {
		return utils.Fail(c, ac.Logger, err)
	}
	if existing > 0 {
		return utils.Conflict(c, "Username or email already taken")
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}
	user.PasswordHash = string(hashedPassword)

	if err := ac.DB.Create(&user).Error; err != nil {
		ac.Logger.Printf("create user %q: %v", user.Username, err)
		return utils.InternalServerError(c, "Could not create user")
	}

	return ac.issueToken(c, user)
}

// LoginRequest accepts either the username or the email as login.
type LoginRequest struct {
	Login    string `json:"login" example:"camille@example.com"`
	Password string `json:"password" example:"password123"`
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	login := strings.TrimSpace(input.Login)

	var user models.User
	err := ac.DB.Where("username = ? OR email = ?", login, strings.ToLower(login)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.Fail(c, ac.Logger, err, "User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	ac.DB.Create(&models.LoginHistory{UserID: user.ID, LoginTime: time.Now()})

	return ac.issueToken(c, user)
}

func (ac *AuthController) issueToken(c *fiber.Ctx, user models.User) error {
	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}
