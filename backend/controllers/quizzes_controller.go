package controllers

import (
	"fmt"
	"log"
	"strings"

	"resetclub/backend/config"
	"resetclub/backend/models"
	"resetclub/backend/quiz"
	"resetclub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// QuizzesController serves the admin CRUD for quizzes, questions and options,
// plus the question set fetched by quiz players.
type QuizzesController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
	Source quiz.QuestionSource
}

func NewQuizzesController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *QuizzesController {
	return &QuizzesController{DB: db, Cfg: cfg, Logger: logger, Source: DBQuestionSource{DB: db}}
}

type QuizRequest struct {
	Title        string `json:"title" example:"Bilan semaine 1"`
	PassingScore *int   `json:"passing_score" example:"70" minimum:"0" maximum:"100"`
	TimeLimit    *int   `json:"time_limit"`
	MaxAttempts  *int   `json:"max_attempts"`
}

type OptionRequest struct {
	OptionText string `json:"option_text" example:"2 litres"`
	IsCorrect  *bool  `json:"is_correct"`
	OrderIndex *int   `json:"order_index"`
}

type QuestionRequest struct {
	QuestionText  string          `json:"question_text" example:"Combien d'eau boire par jour ?"`
	QuestionType  string          `json:"question_type" example:"MULTIPLE_CHOICE" enums:"MULTIPLE_CHOICE,TRUE_FALSE"`
	Points        *int            `json:"points"`
	Explanation   *string         `json:"explanation"`
	OrderIndex    *int            `json:"order_index"`
	CorrectAnswer *bool           `json:"correct_answer"`
	Options       []OptionRequest `json:"options"`
}

// QuestionsResponse is the question set a quiz player loads.
type QuestionsResponse struct {
	Quiz      quiz.Quiz       `json:"quiz"`
	Questions []quiz.Question `json:"questions"`
}

// GetQuizQuestions godoc
// @Summary Question set of a quiz
// @Description Ordered questions with ordered options, as consumed by quiz players
// @Tags academy
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} QuestionsResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /academy/quizzes/{id}/questions [get]
func (qc *QuizzesController) GetQuizQuestions(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	meta, questions, err := qc.Source.QuizQuestions(c.UserContext(), id)
	if err != nil {
		return utils.Fail(c, qc.Logger, err, "Quiz not found")
	}

	return c.JSON(QuestionsResponse{Quiz: meta, Questions: questions})
}

// CreateQuiz godoc
// @Summary Attach a quiz to a module
// @Tags academy
// @Accept json
// @Produce json
// @Param moduleId path int true "Module ID"
// @Param input body QuizRequest true "Quiz"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/academy/modules/{moduleId}/quizzes [post]
func (qc *QuizzesController) CreateQuiz(c *fiber.Ctx) error {
	moduleID, err := utils.ParamID(c, "moduleId")
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var input QuizRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var module models.Module
	if err := qc.DB.First(&module, moduleID).Error; err != nil {
		return utils.Fail(c, qc.Logger, err, "Module not found")
	}

	record, err := models.NewQuiz(moduleID, input.Title, input.PassingScore, input.TimeLimit, input.MaxAttempts)
	if err != nil {
		return utils.Fail(c, qc.Logger, err)
	}

	if err := qc.DB.Create(record).Error; err != nil {
		qc.Logger.Printf("create quiz in module %d: %v", moduleID, err)
		return utils.InternalServerError(c, "Could not create quiz")
	}

	return utils.Created(c, record)
}

// GetQuiz godoc
// @Summary Get a quiz with questions and options
// @Tags academy
// @Produce json
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/academy/quizzes/{quizId} [get]
func (qc *QuizzesController) GetQuiz(c *fiber.Ctx) error {
	quizID, err := utils.ParamID(c, "quizId")
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var record models.Quiz
	err = qc.DB.
		Preload("Questions", byOrderIndex).
		Preload("Questions.Options", byOrderIndex).
		First(&record, quizID).Error
	if err != nil {
		return utils.Fail(c, qc.Logger, err, "Quiz not found")
	}

	return utils.Success(c, fiber.StatusOK, record)
}

// UpdateQuiz godoc
// @Summary Update quiz settings
// @Tags academy
// @Accept json
// @Produce json
// @Param quizId path int true "Quiz ID"
// @Param input body QuizRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /admin/academy/quizzes/{quizId} [put]
func (qc *QuizzesController) UpdateQuiz(c *fiber.Ctx) error {
	quizID, err := utils.ParamID(c, "quizId")
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var input QuizRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var record models.Quiz
	if err := qc.DB.First(&record, quizID).Error; err != nil {
		return utils.Fail(c, qc.Logger, err, "Quiz not found")
	}

	if input.Title != "" {
		record.Title = strings.TrimSpace(input.Title)
	}
	if input.PassingScore != nil {
		record.PassingScore = *input.PassingScore
	}
	if input.TimeLimit != nil {
		record.TimeLimit = input.TimeLimit
	}
	if input.MaxAttempts != nil {
		record.MaxAttempts = input.MaxAttempts
	}

	if err := models.Validate(&record); err != nil {
		return utils.Fail(c, qc.Logger, err)
	}
	if err := qc.DB.Save(&record).Error; err != nil {
		qc.Logger.Printf("update quiz %d: %v", record.ID, err)
		return utils.InternalServerError(c, "Could not update quiz")
	}

	return utils.Success(c, fiber.StatusOK, record)
}

// DeleteQuiz godoc
// @Summary Delete a quiz with its questions and options
// @Tags academy
// @Param quizId path int true "Quiz ID"
// @Success 204
// @Security ApiKeyAuth
// @Router /admin/academy/quizzes/{quizId} [delete]
func (qc *QuizzesController) DeleteQuiz(c *fiber.Ctx) error {
	quizID, err := utils.ParamID(c, "quizId")
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var record models.Quiz
	if err := qc.DB.First(&record, quizID).Error; err != nil {
		return utils.Fail(c, qc.Logger, err, "Quiz not found")
	}

	err = qc.DB.Transaction(func(tx *gorm.DB) error {
		questionIDs := tx.Model(&models.Question{}).Select("id").Where("quiz_id = ?", quizID)
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&record).Error
	})
	if err != nil {
		return utils.Fail(c, qc.Logger, err, "Quiz not found")
	}
	return utils.NoContent(c)
}

// AddQuestion godoc
// @Summary Add a question to a quiz
// @Description TRUE_FALSE questions sent with correct_answer get "Vrai"/"Faux" options generated
// @Tags academy
// @Accept json
// @Produce json
// @Param quizId path int true "Quiz ID"
// @Param input body QuestionRequest true "Question"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/academy/quizzes/{quizId}/questions [post]
func (qc *QuizzesController) AddQuestion(c *fiber.Ctx) error {
	quizID, err := utils.ParamID(c, "quizId")
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var input QuestionRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var record models.Quiz
	if err := qc.DB.First(&record, quizID).Error; err != nil {
		return utils.Fail(c, qc.Logger, err, "Quiz not found")
	}

	order := 0
	if input.OrderIndex != nil {
		order = *input.OrderIndex
	} else if order, err = nextOrderIndex(qc.DB, &models.Question{}, "quiz_id", quizID); err != nil {
		return utils.Fail(c, qc.Logger, err)
	}
	points := 0
	if input.Points != nil {
		points = *input.Points
	}

	explanation := ""
	if input.Explanation != nil {
		explanation = *input.Explanation
	}

	question, err := models.NewQuestion(quizID, input.QuestionText, input.QuestionType, points, explanation, order)
	if err != nil {
		return utils.Fail(c, qc.Logger, err)
	}

	correct := 0
	for _, o := range input.Options {
		if o.IsCorrect != nil && *o.IsCorrect {
			correct++
		}
	}
	if correct > 1 {
		return utils.Fail(c, qc.Logger, models.ErrSecondCorrect)
	}
	if question.QuestionType == string(quiz.TrueFalse) && len(input.Options) != 0 && len(input.Options) != 2 {
		return utils.Fail(c, qc.Logger, models.ErrTrueFalseOptions)
	}

	err = qc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}

		var options []models.Option
		switch {
		case question.QuestionType == string(quiz.TrueFalse) && input.CorrectAnswer != nil && len(input.Options) == 0:
			options = models.TrueFalseOptions(question.ID, *input.CorrectAnswer)
		default:
			for i, o := range input.Options {
				idx := i
				if o.OrderIndex != nil {
					idx = *o.OrderIndex
				}
				opt, err := models.NewOption(question.ID, o.OptionText, o.IsCorrect != nil && *o.IsCorrect, idx)
				if err != nil {
					return err
				}
				options = append(options, *opt)
			}
		}

		if len(options) > 0 {
			if err := tx.Create(&options).Error; err != nil {
				return err
			}
		}
		question.Options = options
		return nil
	})
	if err != nil {
		return utils.Fail(c, qc.Logger, err)
	}

	return utils.Created(c, question)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags academy
// @Accept json
// @Produce json
// @Param questionId path int true "Question ID"
// @Param input body QuestionRequest true "Fields to change; options are managed separately"
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /admin/academy/questions/{questionId} [put]
func (qc *QuizzesController) UpdateQuestion(c *fiber.Ctx) error {
	questionID, err := utils.ParamID(c, "questionId")
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	var input QuestionRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var question models.Question
	if err := qc.DB.First(&question, questionID).Error; err != nil {
		return utils.Fail(c, qc.Logger, err, "Question not found")
	}

	if input.QuestionText != "" {
		question.QuestionText = strings.TrimSpace(input.QuestionText)
	}
	if input.QuestionType != "" {
		question.QuestionType = strings.ToUpper(input.QuestionType)
	}
	if input.Points != nil {
		question.Points = *input.Points
	}
	if input.Explanation != nil {
		question.Explanation = *input.Explanation
	}
	if input.OrderIndex != nil {
		question.OrderIndex = *input.OrderIndex
	}

	if err := models.Validate(&question); err != nil {
		return utils.Fail(c, qc.Logger, err)
	}
	if question.QuestionType == string(quiz.TrueFalse) {
		n, err := qc.optionCount(question.ID)
		if err != nil {
			return utils.Fail(c, qc.Logger, err)
		}
		if n != 0 && n != 2 {
			return utils.Fail(c, qc.Logger, models.ErrTrueFalseOptions)
		}
	}
	if err := qc.DB.Save(&question).Error; err != nil {
		qc.Logger.Printf("update question %d: %v", question.ID, err)
		return utils.InternalServerError(c, "Could not update question")
	}

	return utils.Success(c, fiber.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary Delete a question and its options
// @Tags academy
// @Param questionId path int true "Question ID"
// @Success 204
// @Security ApiKeyAuth
// @Router /admin/academy/questions/{questionId} [delete]
func (qc *QuizzesController) DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := utils.ParamID(c, "questionId")
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	var question models.Question
	if err := qc.DB.First(&question, questionID).Error; err != nil {
		return utils.Fail(c, qc.Logger, err, "Question not found")
	}

	err = qc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		return tx.Delete(&question).Error
	})
	if err != nil {
		return utils.Fail(c, qc.Logger, err, "Question not found")
	}
	return utils.NoContent(c)
}

// AddOption godoc
// @Summary Add an option to a question
// @Tags academy
// @Accept json
// @Produce json
// @Param questionId path int true "Question ID"
// @Param input body OptionRequest true "Option"
// @Success 201 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/academy/questions/{questionId}/options [post]
func (qc *QuizzesController) AddOption(c *fiber.Ctx) error {
	questionID, err := utils.ParamID(c, "questionId")
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	var input OptionRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var question models.Question
	if err := qc.DB.First(&question, questionID).Error; err != nil {
		return utils.Fail(c, qc.Logger, err, "Question not found")
	}

	isCorrect := input.IsCorrect != nil && *input.IsCorrect
	if err := qc.checkCorrect(questionID, 0, isCorrect); err != nil {
		return utils.Fail(c, qc.Logger, err)
	}
	if question.QuestionType == string(quiz.TrueFalse) {
		n, err := qc.optionCount(questionID)
		if err != nil {
			return utils.Fail(c, qc.Logger, err)
		}
		if n >= 2 {
			return utils.Fail(c, qc.Logger, models.ErrTrueFalseOptions)
		}
	}

	order := 0
	if input.OrderIndex != nil {
		order = *input.OrderIndex
	} else if order, err = nextOrderIndex(qc.DB, &models.Option{}, "question_id", questionID); err != nil {
		return utils.Fail(c, qc.Logger, err)
	}

	option, err := models.NewOption(questionID, input.OptionText, isCorrect, order)
	if err != nil {
		return utils.Fail(c, qc.Logger, err)
	}
	if err := qc.DB.Create(option).Error; err != nil {
		qc.Logger.Printf("create option for question %d: %v", questionID, err)
		return utils.InternalServerError(c, "Could not create option")
	}

	return utils.Created(c, option)
}

// UpdateOption godoc
// @Summary Update an option
// @Tags academy
// @Accept json
// @Produce json
// @Param optionId path int true "Option ID"
// @Param input body OptionRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/academy/options/{optionId} [put]
func (qc *QuizzesController) UpdateOption(c *fiber.Ctx) error {
	optionID, err := utils.ParamID(c, "optionId")
	if err != nil {
		return utils.BadRequest(c, "Invalid option ID")
	}

	var input OptionRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var option models.Option
	if err := qc.DB.First(&option, optionID).Error; err != nil {
		return utils.Fail(c, qc.Logger, err, "Option not found")
	}

	if input.OptionText != "" {
		option.OptionText = strings.TrimSpace(input.OptionText)
	}
	if input.OrderIndex != nil {
		option.OrderIndex = *input.OrderIndex
	}
	if input.IsCorrect != nil {
		if err := qc.checkCorrect(option.QuestionID, option.ID, *input.IsCorrect); err != nil {
			return utils.Fail(c, qc.Logger, err)
		}
		option.IsCorrect = *input.IsCorrect
	}

	if err := models.Validate(&option); err != nil {
		return utils.Fail(c, qc.Logger, err)
	}
	if err := qc.DB.Save(&option).Error; err != nil {
		qc.Logger.Printf("update option %d: %v", option.ID, err)
		return utils.InternalServerError(c, "Could not update option")
	}

	return utils.Success(c, fiber.StatusOK, option)
}

// DeleteOption godoc
// @Summary Delete an option
// @Tags academy
// @Param optionId path int true "Option ID"
// @Success 204
// @Security ApiKeyAuth
// @Router /admin/academy/options/{optionId} [delete]
func (qc *QuizzesController) DeleteOption(c *fiber.Ctx) error {
	optionID, err := utils.ParamID(c, "optionId")
	if err != nil {
		return utils.BadRequest(c, "Invalid option ID")
	}

	var option models.Option
	if err := qc.DB.First(&option, optionID).Error; err != nil {
		return utils.Fail(c, qc.Logger, err, "Option not found")
	}
	if err := qc.DB.Delete(&option).Error; err != nil {
		return utils.Fail(c, qc.Logger, err, "Option not found")
	}
	return utils.NoContent(c)
}

// checkCorrect returns ErrSecondCorrect when marking an option correct would
// give questionID two correct options. exceptID is the option being updated.
func (qc *QuizzesController) checkCorrect(questionID, exceptID uint, isCorrect bool) error {
	if !isCorrect {
		return nil
	}
	var n int64
	err := qc.DB.Model(&models.Option{}).
		Where("question_id = ? AND is_correct = ? AND id <> ?", questionID, true, exceptID).
		Count(&n).Error
	if err != nil {
		return fmt.Errorf("count correct options of question %d: %w", questionID, err)
	}
	if n > 0 {
		return models.ErrSecondCorrect
	}
	return nil
}

func (qc *QuizzesController) optionCount(questionID uint) (int64, error) {
	var n int64
	err := qc.DB.Model(&models.Option{}).Where("question_id = ?", questionID).Count(&n).Error
	return n, err
}
