package controllers

import (
	"log"
	"strings"

	"resetclub/backend/config"
	"resetclub/backend/middleware"
	"resetclub/backend/models"
	"resetclub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewUserController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *UserController {
	return &UserController{DB: db, Cfg: cfg, Logger: logger}
}

type UpdateUserRequest struct {
	Username    string `json:"username" example:"john_doe" minLength:"3" maxLength:"40"`
	Email       string `json:"email" example:"user@example.com" format:"email"`
	OldPassword string `json:"old_password" example:"oldPassword123" minLength:"8"`
	NewPassword string `json:"new_password" example:"newPassword123" minLength:"8"`
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns authenticated user's profile data
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	var user models.User
	if err := uc.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		return utils.Fail(c, uc.Logger, err, "User not found")
	}

	var lastLogin models.LoginHistory
	uc.DB.Where("user_id = ?", user.ID).Order("login_time DESC").Limit(1).Find(&lastLogin)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"role":       user.Role,
		"created_at": user.CreatedAt,
		"last_login": lastLogin.LoginTime,
	})
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Updates username, email or password of the authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Param input body UpdateUserRequest true "Profile update data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	var input UpdateUserRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := uc.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		return utils.Fail(c, uc.Logger, err, "User not found")
	}

	if input.Username != "" {
		user.Username = strings.TrimSpace(input.Username)
	}
	if input.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(input.Email))
	}
	if input.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
			return utils.Unauthorized(c, "Old password is incorrect")
		}
		if len(input.NewPassword) < 8 {
			return utils.ValidationError(c, map[string]string{"new_password": "must be at least 8"})
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return utils.InternalServerError(c, "Could not hash password")
		}
		user.PasswordHash = string(hashed)
	}

	if err := models.Validate(&user); err != nil {
		return utils.Fail(c, uc.Logger, err)
	}

	var taken int64
	err := uc.DB.Model(&models.User{}).
		Where("(email = ? OR username = ?) AND id <> ?", user.Email, user.Username, user.ID).
		Count(&taken).Error
	if err != nil {
		return utils.Fail(c, uc.Logger, err)
	}
	if taken > 0 {
		return utils.Conflict(c, "Username or email already taken")
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		uc.Logger.Printf("update user %d: %v", user.ID, err)
		return utils.InternalServerError(c, "Could not update profile")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}
