package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// SetupRoutes registers the API, health and docs routes.
func SetupRoutes(app *fiber.App, quizHandler *QuizHandler, healthHandler *HealthHandler) {
	app.Get("/health", healthHandler.Health)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Post("/quizzes", quizHandler.GenerateQuiz)
	api.Get("/quizzes", quizHandler.ListQuizzes)
	api.Get("/quizzes/:id", quizHandler.GetQuiz)
	api.Post("/attempts", quizHandler.SubmitAttempt)
	api.Get("/attempts", quizHandler.ListAttempts)
	api.Get("/attempts/:id", quizHandler.GetAttempt)
}
