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

// FormationsController serves the admin CRUD for formations, their modules and lessons.
type FormationsController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewFormationsController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *FormationsController {
	return &FormationsController{DB: db, Cfg: cfg, Logger: logger}
}

type FormationRequest struct {
	Title       string `json:"title" example:"RESET 30 jours"`
	Slug        string `json:"slug" example:"reset-30-jours"`
	Description string `json:"description"`
	Locale      string `json:"locale" example:"fr" enums:"fr,en,es"`
	Published   *bool  `json:"published"`
}

type ModuleRequest struct {
	Title       string `json:"title" example:"Semaine 1 : Hydratation"`
	Description string `json:"description"`
	OrderIndex  *int   `json:"order_index"`
}

type LessonRequest struct {
	Title           string `json:"title" example:"Pourquoi boire avant d'avoir soif"`
	Content         string `json:"content"`
	VideoURL        string `json:"video_url"`
	DurationMinutes *int   `json:"duration_minutes"`
	OrderIndex      *int   `json:"order_index"`
}

// ListFormations godoc
// @Summary List formations
// @Tags academy
// @Produce json
// @Success 200 {object} utils.PaginatedResponse
// @Security ApiKeyAuth
// @Router /admin/academy/formations [get]
func (fc *FormationsController) ListFormations(c *fiber.Ctx) error {
	page, pageSize := utils.PageParams(c)

	query := fc.DB.Model(&models.Formation{})
	if locale := c.Query("locale"); locale != "" {
		query = query.Where("locale = ?", locale)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Fail(c, fc.Logger, err)
	}

	var formations []models.Formation
	if err := query.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&formations).Error; err != nil {
		return utils.Fail(c, fc.Logger, err)
	}

	return utils.Paginate(c, formations, total, page, pageSize)
}

// CreateFormation godoc
// @Summary Create a formation
// @Tags academy
// @Accept json
// @Produce json
// @Param input body FormationRequest true "Formation"
// @Success 201 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/academy/formations [post]
func (fc *FormationsController) CreateFormation(c *fiber.Ctx) error {
	var input FormationRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	formation, err := models.NewFormation(input.Title, input.Description, input.Locale, input.Published != nil && *input.Published)
	if err != nil {
		return utils.Fail(c, fc.Logger, err)
	}
	if input.Slug != "" {
		formation.Slug = models.Slugify(input.Slug)
	}

	if taken, err := fc.slugTaken(formation.Slug, 0); err != nil || taken {
		return fc.slugConflict(c, err)
	}

	if err := fc.DB.Create(formation).Error; err != nil {
		fc.Logger.Printf("create formation %q: %v", formation.Slug, err)
		return utils.InternalServerError(c, "Could not create formation")
	}

	return utils.Created(c, formation)
}

// GetFormation godoc
// @Summary Get a formation with its modules, lessons and quizzes
// @Tags academy
// @Produce json
// @Param id path int true "Formation ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/academy/formations/{id} [get]
func (fc *FormationsController) GetFormation(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid formation ID")
	}

	var formation models.Formation
	err = fc.DB.
		Preload("Modules", byOrderIndex).
		Preload("Modules.Lessons", byOrderIndex).
		Preload("Modules.Quizzes").
		First(&formation, id).Error
	if err != nil {
		return utils.Fail(c, fc.Logger, err, "Formation not found")
	}

	return utils.Success(c, fiber.StatusOK, formation)
}

// UpdateFormation godoc
// @Summary Update a formation
// @Tags academy
// @Accept json
// @Produce json
// @Param id path int true "Formation ID"
// @Param input body FormationRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/academy/formations/{id} [put]
func (fc *FormationsController) UpdateFormation(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid formation ID")
	}

	var input FormationRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var formation models.Formation
	if err := fc.DB.First(&formation, id).Error; err != nil {
		return utils.Fail(c, fc.Logger, err, "Formation not found")
	}

	if input.Title != "" {
		formation.Title = strings.TrimSpace(input.Title)
	}
	if input.Slug != "" {
		formation.Slug = models.Slugify(input.Slug)
	}
	if input.Description != "" {
		formation.Description = input.Description
	}
	if input.Locale != "" {
		formation.Locale = input.Locale
	}
	if input.Published != nil {
		formation.Published = *input.Published
	}

	if err := models.Validate(&formation); err != nil {
		return utils.Fail(c, fc.Logger, err)
	}
	if taken, err := fc.slugTaken(formation.Slug, formation.ID); err != nil || taken {
		return fc.slugConflict(c, err)
	}

	if err := fc.DB.Save(&formation).Error; err != nil {
		fc.Logger.Printf("update formation %d: %v", formation.ID, err)
		return utils.InternalServerError(c, "Could not update formation")
	}

	return utils.Success(c, fiber.StatusOK, formation)
}

// DeleteFormation godoc
// @Summary Delete an empty formation
// @Tags academy
// @Param id path int true "Formation ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/academy/formations/{id} [delete]
func (fc *FormationsController) DeleteFormation(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid formation ID")
	}

	var formation models.Formation
	if err := fc.DB.First(&formation, id).Error; err != nil {
		return utils.Fail(c, fc.Logger, err, "Formation not found")
	}

	var modules int64
	if err := fc.DB.Model(&models.Module{}).Where("formation_id = ?", id).Count(&modules).Error; err != nil {
		return utils.Fail(c, fc.Logger, err)
	}
	if modules > 0 {
		return utils.Conflict(c, "Formation still has modules")
	}

	if err := fc.DB.Delete(&formation).Error; err != nil {
		return utils.Fail(c, fc.Logger, err, "Formation not found")
	}
	return utils.NoContent(c)
}

// CreateModule godoc
// @Summary Add a module to a formation
// @Tags academy
// @Accept json
// @Produce json
// @Param id path int true "Formation ID"
// @Param input body ModuleRequest true "Module"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/academy/formations/{id}/modules [post]
func (fc *FormationsController) CreateModule(c *fiber.Ctx) error {
	formationID, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid formation ID")
	}

	var input ModuleRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var formation models.Formation
	if err := fc.DB.First(&formation, formationID).Error; err != nil {
		return utils.Fail(c, fc.Logger, err, "Formation not found")
	}

	order, err := fc.orderFor(input.OrderIndex, &models.Module{}, "formation_id", formationID)
	if err != nil {
		return utils.Fail(c, fc.Logger, err)
	}

	module, err := models.NewModule(formationID, input.Title, input.Description, order)
	if err != nil {
		return utils.Fail(c, fc.Logger, err)
	}

	if err := fc.DB.Create(module).Error; err != nil {
		fc.Logger.Printf("create module in formation %d: %v", formationID, err)
		return utils.InternalServerError(c, "Could not create module")
	}

	return utils.Created(c, module)
}

// UpdateModule godoc
// @Summary Update a module
// @Tags academy
// @Accept json
// @Produce json
// @Param moduleId path int true "Module ID"
// @Param input body ModuleRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /admin/academy/modules/{moduleId} [put]
func (fc *FormationsController) UpdateModule(c *fiber.Ctx) error {
	moduleID, err := utils.ParamID(c, "moduleId")
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var input ModuleRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var module models.Module
	if err := fc.DB.First(&module, moduleID).Error; err != nil {
		return utils.Fail(c, fc.Logger, err, "Module not found")
	}

	if input.Title != "" {
		module.Title = strings.TrimSpace(input.Title)
	}
	if input.Description != "" {
		module.Description = input.Description
	}
	if input.OrderIndex != nil {
		module.OrderIndex = *input.OrderIndex
	}

	if err := models.Validate(&module); err != nil {
		return utils.Fail(c, fc.Logger, err)
	}
	if err := fc.DB.Save(&module).Error; err != nil {
		fc.Logger.Printf("update module %d: %v", module.ID, err)
		return utils.InternalServerError(c, "Could not update module")
	}

	return utils.Success(c, fiber.StatusOK, module)
}

// DeleteModule godoc
// @Summary Delete a module without lessons or quizzes
// @Tags academy
// @Param moduleId path int true "Module ID"
// @Success 204
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/academy/modules/{moduleId} [delete]
func (fc *FormationsController) DeleteModule(c *fiber.Ctx) error {
	moduleID, err := utils.ParamID(c, "moduleId")
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var module models.Module
	if err := fc.DB.First(&module, moduleID).Error; err != nil {
		return utils.Fail(c, fc.Logger, err, "Module not found")
	}

	var lessons, quizzes int64
	if err := fc.DB.Model(&models.Lesson{}).Where("module_id = ?", moduleID).Count(&lessons).Error; err != nil {
		return utils.Fail(c, fc.Logger, err)
	}
	if err := fc.DB.Model(&models.Quiz{}).Where("module_id = ?", moduleID).Count(&quizzes).Error; err != nil {
		return utils.Fail(c, fc.Logger, err)
	}
	if lessons+quizzes > 0 {
		return utils.Conflict(c, "Module still has lessons or quizzes")
	}

	if err := fc.DB.Delete(&module).Error; err != nil {
		return utils.Fail(c, fc.Logger, err, "Module not found")
	}
	return utils.NoContent(c)
}

// CreateLesson godoc
// @Summary Add a lesson to a module
// @Tags academy
// @Accept json
// @Produce json
// @Param moduleId path int true "Module ID"
// @Param input body LessonRequest true "Lesson"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/academy/modules/{moduleId}/lessons [post]
func (fc *FormationsController) CreateLesson(c *fiber.Ctx) error {
	moduleID, err := utils.ParamID(c, "moduleId")
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var input LessonRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var module models.Module
	if err := fc.DB.First(&module, moduleID).Error; err != nil {
		return utils.Fail(c, fc.Logger, err, "Module not found")
	}

	order, err := fc.orderFor(input.OrderIndex, &models.Lesson{}, "module_id", moduleID)
	if err != nil {
		return utils.Fail(c, fc.Logger, err)
	}
	duration := 0
	if input.DurationMinutes != nil {
		duration = *input.DurationMinutes
	}

	lesson, err := models.NewLesson(moduleID, input.Title, input.Content, input.VideoURL, duration, order)
	if err != nil {
		return utils.Fail(c, fc.Logger, err)
	}

	if err := fc.DB.Create(lesson).Error; err != nil {
		fc.Logger.Printf("create lesson in module %d: %v", moduleID, err)
		return utils.InternalServerError(c, "Could not create lesson")
	}

	return utils.Created(c, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags academy
// @Accept json
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Param input body LessonRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /admin/academy/lessons/{lessonId} [put]
func (fc *FormationsController) UpdateLesson(c *fiber.Ctx) error {
	lessonID, err := utils.ParamID(c, "lessonId")
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var input LessonRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var lesson models.Lesson
	if err := fc.DB.First(&lesson, lessonID).Error; err != nil {
		return utils.Fail(c, fc.Logger, err, "Lesson not found")
	}

	if input.Title != "" {
		lesson.Title = strings.TrimSpace(input.Title)
	}
	if input.Content != "" {
		lesson.Content = input.Content
	}
	if input.VideoURL != "" {
		lesson.VideoURL = input.VideoURL
	}
	if input.DurationMinutes != nil {
		lesson.DurationMinutes = *input.DurationMinutes
	}
	if input.OrderIndex != nil {
		lesson.OrderIndex = *input.OrderIndex
	}

	if err := models.Validate(&lesson); err != nil {
		return utils.Fail(c, fc.Logger, err)
	}
	if err := fc.DB.Save(&lesson).Error; err != nil {
		fc.Logger.Printf("update lesson %d: %v", lesson.ID, err)
		return utils.InternalServerError(c, "Could not update lesson")
	}

	return utils.Success(c, fiber.StatusOK, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags academy
// @Param lessonId path int true "Lesson ID"
// @Success 204
// @Security ApiKeyAuth
// @Router /admin/academy/lessons/{lessonId} [delete]
func (fc *FormationsController) DeleteLesson(c *fiber.Ctx) error {
	lessonID, err := utils.ParamID(c, "lessonId")
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := fc.DB.First(&lesson, lessonID).Error; err != nil {
		return utils.Fail(c, fc.Logger, err, "Lesson not found")
	}
	if err := fc.DB.Delete(&lesson).Error; err != nil {
		return utils.Fail(c, fc.Logger, err, "Lesson not found")
	}
	return utils.NoContent(c)
}

// slugTaken also counts soft-deleted formations, which still hold the unique index.
func (fc *FormationsController) slugTaken(slug string, exceptID uint) (bool, error) {
	var n int64
	err := fc.DB.Unscoped().Model(&models.Formation{}).Where("slug = ? AND id <> ?", slug, exceptID).Count(&n).Error
	return n > 0, err
}

func (fc *FormationsController) slugConflict(c *fiber.Ctx, err error) error {
	if err != nil {
		return utils.Fail(c, fc.Logger, err)
	}
	return utils.Conflict(c, "Slug already used by another formation")
}

func (fc *FormationsController) orderFor(requested *int, model interface{}, parentColumn string, parentID uint) (int, error) {
	if requested != nil {
		return *requested, nil
	}
	return nextOrderIndex(fc.DB, model, parentColumn, parentID)
}
