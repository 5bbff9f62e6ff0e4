package routes

import (
	"log"

	"resetclub/backend/config"
	"resetclub/backend/controllers"
	"resetclub/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	registry := controllers.NewSessionRegistry(cfg.SessionTTL)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg, logger)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware()

	// User routes
	userController := controllers.NewUserController(db, cfg, logger)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Lead funnel routes
	leadsController := controllers.NewLeadsController(db, cfg, logger)
	app.Post("/api/leads", leadsController.CaptureLead)
	app.Put("/api/leads/:token/step", leadsController.AdvanceLead)

	// Catalog routes
	catalogController := controllers.NewCatalogController(db, cfg, logger)
	catalog := app.Group("/api/catalog")
	catalog.Get("/formations", catalogController.SearchFormations)
	catalog.Get("/formations/:id", catalogController.GetFormation)

	// Question sets for quiz players
	quizzesController := controllers.NewQuizzesController(db, cfg, logger)
	app.Get("/api/academy/quizzes/:id/questions", authMiddleware, quizzesController.GetQuizQuestions)

	// Quiz session routes
	sessionsController := controllers.NewQuizSessionsController(cfg, logger, quizzesController.Source, registry)
	sessions := app.Group("/api/quiz-sessions", authMiddleware)
	sessions.Post("/", sessionsController.StartSession)
	sessions.Get("/:id", sessionsController.GetSession)
	sessions.Delete("/:id", sessionsController.DeleteSession)
	sessions.Post("/:id/select", sessionsController.SelectOption)
	sessions.Post("/:id/advance", sessionsController.Advance)
	sessions.Post("/:id/restart", sessionsController.Restart)
	sessions.Get("/:id/score", sessionsController.GetScore)

	// Admin routes for the academy
	formationsController := controllers.NewFormationsController(db, cfg, logger)
	academy := app.Group("/api/admin/academy", authMiddleware, adminMiddleware)
	academy.Get("/formations", formationsController.ListFormations)
	academy.Post("/formations", formationsController.CreateFormation)
	academy.Get("/formations/:id", formationsController.GetFormation)
	academy.Put("/formations/:id", formationsController.UpdateFormation)
	academy.Delete("/formations/:id", formationsController.DeleteFormation)
	academy.Post("/formations/:id/modules", formationsController.CreateModule)
	academy.Put("/modules/:moduleId", formationsController.UpdateModule)
	academy.Delete("/modules/:moduleId", formationsController.DeleteModule)
	academy.Post("/modules/:moduleId/lessons", formationsController.CreateLesson)
	academy.Put("/lessons/:lessonId", formationsController.UpdateLesson)
	academy.Delete("/lessons/:lessonId", formationsController.DeleteLesson)

	academy.Post("/modules/:moduleId/quizzes", quizzesController.CreateQuiz)
	academy.Get("/quizzes/:quizId", quizzesController.GetQuiz)
	academy.Put("/quizzes/:quizId", quizzesController.UpdateQuiz)
	academy.Delete("/quizzes/:quizId", quizzesController.DeleteQuiz)
	academy.Post("/quizzes/:quizId/questions", quizzesController.AddQuestion)
	academy.Put("/questions/:questionId", quizzesController.UpdateQuestion)
	academy.Delete("/questions/:questionId", quizzesController.DeleteQuestion)
	academy.Post("/questions/:questionId/options", quizzesController.AddOption)
	academy.Put("/options/:optionId", quizzesController.UpdateOption)
	academy.Delete("/options/:optionId", quizzesController.DeleteOption)

	// Admin dashboard
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)
	admin.Get("/leads", leadsController.ListLeads)
	statsController := controllers.NewStatsController(db, cfg, logger, registry)
	admin.Get("/stats", statsController.GetStats)
}
