package controllers

import (
	"errors"
	"log"

	"resetclub/backend/config"
	"resetclub/backend/models"
	"resetclub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LeadsController captures master-class funnel opt-ins.
type LeadsController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewLeadsController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *LeadsController {
	return &LeadsController{DB: db, Cfg: cfg, Logger: logger}
}

type LeadRequest struct {
	FirstName string `json:"first_name" example:"Camille"`
	Email     string `json:"email" example:"camille@example.com"`
	Phone     string `json:"phone" example:"+33600000000"`
	Locale    string `json:"locale" example:"fr"`
	UTMSource string `json:"utm_source" example:"instagram"`
}

type LeadStepRequest struct {
	Step string `json:"step" example:"upsell-1" enums:"optin,masterclass,upsell-1,upsell-2,checkout"`
}

// CaptureLead godoc
// @Summary Opt-in to the master-class funnel
// @Description Re-submitting an email already in the funnel returns the existing lead
// @Tags leads
// @Accept json
// @Produce json
// @Param input body LeadRequest true "Lead"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /leads [post]
func (lc *LeadsController) CaptureLead(c *fiber.Ctx) error {
	var input LeadRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	lead, err := models.NewLead(input.FirstName, input.Email, input.Phone, input.Locale, input.UTMSource)
	if err != nil {
		return utils.Fail(c, lc.Logger, err)
	}

	var existing models.Lead
	err = lc.DB.Where("email = ? AND funnel = ?", lead.Email, lead.Funnel).First(&existing).Error
	if err == nil {
		return utils.Success(c, fiber.StatusOK, existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Fail(c, lc.Logger, err)
	}

	if err := lc.DB.Create(lead).Error; err != nil {
		lc.Logger.Printf("create lead %q: %v", lead.Email, err)
		return utils.InternalServerError(c, "Could not save lead")
	}
	return utils.Created(c, lead)
}

// AdvanceLead godoc
// @Summary Move a lead forward in the funnel
// @Tags leads
// @Accept json
// @Produce json
// @Param token path string true "Lead token"
// @Param input body LeadStepRequest true "Reached step"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /leads/{token}/step [put]
func (lc *LeadsController) AdvanceLead(c *fiber.Ctx) error {
	token := c.Params("token")

	var input LeadStepRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var lead models.Lead
	if err := lc.DB.Where("token = ?", token).First(&lead).Error; err != nil {
		return utils.Fail(c, lc.Logger, err, "Lead not found")
	}

	if err := lead.AdvanceTo(input.Step); err != nil {
		return utils.Fail(c, lc.Logger, err)
	}

	if err := lc.DB.Save(&lead).Error; err != nil {
		lc.Logger.Printf("advance lead %d: %v", lead.ID, err)
		return utils.InternalServerError(c, "Could not update lead")
	}
	return utils.Success(c, fiber.StatusOK, lead)
}

// ListLeads godoc
// @Summary List captured leads
// @Tags leads
// @Produce json
// @Param step query string false "Filter by funnel step"
// @Success 200 {object} utils.PaginatedResponse
// @Security ApiKeyAuth
// @Router /admin/leads [get]
func (lc *LeadsController) ListLeads(c *fiber.Ctx) error {
	page, pageSize := utils.PageParams(c)

	query := lc.DB.Model(&models.Lead{})
	if step := c.Query("step"); step != "" {
		query = query.Where("step = ?", step)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Fail(c, lc.Logger, err)
	}

	var leads []models.Lead
	if err := query.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&leads).Error; err != nil {
		return utils.Fail(c, lc.Logger, err)
	}

	return utils.Paginate(c, leads, total, page, pageSize)
}
