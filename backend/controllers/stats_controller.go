package controllers

import (
	"log"

	"resetclub/backend/config"
	"resetclub/backend/models"
	"resetclub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StatsController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Logger   *log.Logger
	Registry *SessionRegistry
}

func NewStatsController(db *gorm.DB, cfg *config.Config, logger *log.Logger, registry *SessionRegistry) *StatsController {
	return &StatsController{DB: db, Cfg: cfg, Logger: logger, Registry: registry}
}

// GetStats godoc
// @Summary Academy dashboard counters
// @Tags admin
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /admin/stats [get]
func (sc *StatsController) GetStats(c *fiber.Ctx) error {
	counts := fiber.Map{}
	tables := []struct {
		name  string
		model interface{}
	}{
		{"users", &models.User{}},
		{"formations", &models.Formation{}},
		{"modules", &models.Module{}},
		{"lessons", &models.Lesson{}},
		{"quizzes", &models.Quiz{}},
		{"questions", &models.Question{}},
		{"leads", &models.Lead{}},
	}
	for _, t := range tables {
		var n int64
		if err := sc.DB.Model(t.model).Count(&n).Error; err != nil {
			return utils.Fail(c, sc.Logger, err)
		}
		counts[t.name] = n
	}

	var published int64
	if err := sc.DB.Model(&models.Formation{}).Where("published = ?", true).Count(&published).Error; err != nil {
		return utils.Fail(c, sc.Logger, err)
	}
	counts["published_formations"] = published
	counts["active_quiz_sessions"] = sc.Registry.Len()

	return utils.Success(c, fiber.StatusOK, counts)
}
