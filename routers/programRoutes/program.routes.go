package programRoutes

import (
	controllers "mathcms/controllers/program"
	"mathcms/middleware"
	validators "mathcms/validators/program"

	"github.com/gofiber/fiber/v2"
)

// SetupProgramRoutes sets up admin program management and student enrollment
// routes
func SetupProgramRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/program", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Post("/create", validators.CreateProgram(), controllers.AdminCreateProgram)
	adminGroup.Get("/list", controllers.AdminGetPrograms)
	adminGroup.Post("/:id/status", validators.UpdateStatus(), controllers.AdminUpdateProgramStatus)

	// Student enrollment
	programGroup := app.Group("/program")
	programGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.ProgramID(), controllers.EnrollInProgram)

	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollments)
}
