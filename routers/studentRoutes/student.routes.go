package studentRoutes

import (
	controllers "mathcms/controllers/student"
	"mathcms/middleware"
	validators "mathcms/validators/student"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentRoutes sets up the student-facing practice routes
func SetupStudentRoutes(app *fiber.App) {
	practiceGroup := app.Group("/practice")

	// Published content is readable without login (practice preview)
	practiceGroup.Get("/problems", controllers.GetPublishedProblems)
	practiceGroup.Get("/programs", controllers.GetMathPrograms)

	// Recording an attempt requires an authenticated caller
	practiceGroup.Post("/problem/:id/attempt", middleware.JWTMiddleware, validators.SubmitAttempt(), controllers.RecordProblemAttempt)
}
