package controllers

import (
	"log"

	"resetclub/backend/config"
	"resetclub/backend/middleware"
	"resetclub/backend/quiz"
	"resetclub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// QuizSessionsController hosts quiz sessions for HTTP rendering layers.
// Nothing here is persisted.
type QuizSessionsController struct {
	Cfg      *config.Config
	Logger   *log.Logger
	Source   quiz.QuestionSource
	Registry *SessionRegistry
}

func NewQuizSessionsController(cfg *config.Config, logger *log.Logger, source quiz.QuestionSource, registry *SessionRegistry) *QuizSessionsController {
	return &QuizSessionsController{Cfg: cfg, Logger: logger, Source: source, Registry: registry}
}

type StartSessionRequest struct {
	QuizID uint `json:"quiz_id" example:"3"`
}

type SelectOptionRequest struct {
	OptionID uint `json:"option_id" example:"12"`
}

type sessionView struct {
	ID string `json:"id"`
	quiz.Snapshot
}

// StartSession godoc
// @Summary Start a quiz session
// @Description Fetches the question set once and returns the first question
// @Tags quiz-sessions
// @Accept json
// @Produce json
// @Param input body StartSessionRequest true "Quiz to take"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz-sessions [post]
func (sc *QuizSessionsController) StartSession(c *fiber.Ctx) error {
	var input StartSessionRequest
	if err := c.BodyParser(&input); err != nil || input.QuizID == 0 {
		return utils.BadRequest(c, "quiz_id is required")
	}

	session, err := quiz.Load(c.UserContext(), sc.Source, input.QuizID)
	if err != nil {
		return utils.Fail(c, sc.Logger, err, "Quiz not found")
	}

	id := sc.Registry.Add(middleware.UserID(c), session)
	return utils.Created(c, sessionView{ID: id, Snapshot: session.Snapshot()})
}

// GetSession godoc
// @Summary Current state of a quiz session
// @Tags quiz-sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz-sessions/{id} [get]
func (sc *QuizSessionsController) GetSession(c *fiber.Ctx) error {
	return sc.apply(c, func(*quiz.Session) error { return nil })
}

// SelectOption godoc
// @Summary Answer the current question
// @Description The first pick is final; feedback is revealed immediately
// @Tags quiz-sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param input body SelectOptionRequest true "Chosen option"
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz-sessions/{id}/select [post]
func (sc *QuizSessionsController) SelectOption(c *fiber.Ctx) error {
	var input SelectOptionRequest
	if err := c.BodyParser(&input); err != nil || input.OptionID == 0 {
		return utils.BadRequest(c, "option_id is required")
	}
	return sc.apply(c, func(s *quiz.Session) error { return s.Select(input.OptionID) })
}

// Advance godoc
// @Summary Go to the next question or finish the quiz
// @Tags quiz-sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz-sessions/{id}/advance [post]
func (sc *QuizSessionsController) Advance(c *fiber.Ctx) error {
	return sc.apply(c, (*quiz.Session).Advance)
}

// Restart godoc
// @Summary Restart the quiz on the already loaded questions
// @Tags quiz-sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /quiz-sessions/{id}/restart [post]
func (sc *QuizSessionsController) Restart(c *fiber.Ctx) error {
	return sc.apply(c, (*quiz.Session).Restart)
}

// GetScore godoc
// @Summary Score of a quiz session
// @Tags quiz-sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /quiz-sessions/{id}/score [get]
func (sc *QuizSessionsController) GetScore(c *fiber.Ctx) error {
	var (
		score     quiz.Score
		passing   int
		completed bool
	)
	err := sc.Registry.Do(c.Params("id"), middleware.UserID(c), func(s *quiz.Session) error {
		score = s.Score()
		passing = s.Quiz().PassingScore
		completed = s.State().Completed
		return nil
	})
	if err != nil {
		return utils.Fail(c, sc.Logger, err, "Quiz session not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"score":         score,
		"passing_score": passing,
		"passed":        score.Passed(passing),
		"completed":     completed,
	})
}

// DeleteSession godoc
// @Summary Discard a quiz session
// @Tags quiz-sessions
// @Param id path string true "Session ID"
// @Success 204
// @Security ApiKeyAuth
// @Router /quiz-sessions/{id} [delete]
func (sc *QuizSessionsController) DeleteSession(c *fiber.Ctx) error {
	if err := sc.Registry.Remove(c.Params("id"), middleware.UserID(c)); err != nil {
		return utils.Fail(c, sc.Logger, err, "Quiz session not found")
	}
	return utils.NoContent(c)
}

func (sc *QuizSessionsController) apply(c *fiber.Ctx, fn func(*quiz.Session) error) error {
	id := c.Params("id")
	var snap quiz.Snapshot
	err := sc.Registry.Do(id, middleware.UserID(c), func(s *quiz.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		snap = s.Snapshot()
		return nil
	})
	if err != nil {
		return utils.Fail(c, sc.Logger, err, "Quiz session not found")
	}
	return utils.Success(c, fiber.StatusOK, sessionView{ID: id, Snapshot: snap})
}
