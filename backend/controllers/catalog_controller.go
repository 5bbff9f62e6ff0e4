package controllers

import (
	"log"
	"strings"

	"resetclub/backend/config"
	"resetclub/backend/models"
	"resetclub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CatalogController exposes published formations to learners.
type CatalogController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewCatalogController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *CatalogController {
	return &CatalogController{DB: db, Cfg: cfg, Logger: logger}
}

// SearchFormations lists published formations matching ?q= and ?locale=
func (cc *CatalogController) SearchFormations(c *fiber.Ctx) error {
	search := strings.ToLower(strings.TrimSpace(c.Query("q")))
	locale := c.Query("locale")

	query := cc.DB.Model(&models.Formation{}).Where("published = ?", true)

	// title or description
	if search != "" {
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if locale != "" {
		query = query.Where("locale = ?", locale)
	}

	var formations []models.Formation
	if err := query.Order("created_at DESC").Find(&formations).Error; err != nil {
		return utils.Fail(c, cc.Logger, err)
	}

	result := make([]fiber.Map, 0, len(formations))
	for _, f := range formations {
		var modules int64
		if err := cc.DB.Model(&models.Module{}).Where("formation_id = ?", f.ID).Count(&modules).Error; err != nil {
			return utils.Fail(c, cc.Logger, err)
		}

		result = append(result, fiber.Map{
			"id":          f.ID,
			"title":       f.Title,
			"slug":        f.Slug,
			"description": f.Description,
			"locale":      f.Locale,
			"modules":     modules,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// GetFormation returns the programme of a published formation for the course player
func (cc *CatalogController) GetFormation(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid formation ID")
	}

	var formation models.Formation
	err = cc.DB.
		Where("published = ?", true).
		Preload("Modules", byOrderIndex).
		Preload("Modules.Lessons", byOrderIndex).
		Preload("Modules.Quizzes").
		First(&formation, id).Error
	if err != nil {
		return utils.Fail(c, cc.Logger, err, "Formation not found")
	}

	modules := make([]fiber.Map, 0, len(formation.Modules))
	for _, m := range formation.Modules {
		quizzes := make([]fiber.Map, 0, len(m.Quizzes))
		for _, q := range m.Quizzes {
			var questions int64
			if err := cc.DB.Model(&models.Question{}).Where("quiz_id = ?", q.ID).Count(&questions).Error; err != nil {
				return utils.Fail(c, cc.Logger, err)
			}
			quizzes = append(quizzes, fiber.Map{
				"id":            q.ID,
				"title":         q.Title,
				"passing_score": q.PassingScore,
				"questions":     questions,
			})
		}
		modules = append(modules, fiber.Map{
			"id":          m.ID,
			"title":       m.Title,
			"description": m.Description,
			"lessons":     m.Lessons,
			"quizzes":     quizzes,
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":          formation.ID,
		"title":       formation.Title,
		"slug":        formation.Slug,
		"description": formation.Description,
		"locale":      formation.Locale,
		"modules":     modules,
	})
}
