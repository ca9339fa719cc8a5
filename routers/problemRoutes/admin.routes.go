package problemRoutes

import (
	controllers "mathcms/controllers/problem"
	"mathcms/middleware"
	validators "mathcms/validators/problem"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminProblemRoutes sets up all admin content management routes
func SetupAdminProblemRoutes(app *fiber.App) {
	problemGroup := app.Group("/admin/problem", middleware.JWTMiddleware, middleware.AdminOnly)

	// Problem CRUD & workflow
	problemGroup.Post("/create", validators.CreateProblem(), controllers.AdminCreateProblem)
	problemGroup.Get("/list", validators.AdminList(), controllers.AdminGetProblems)
	problemGroup.Post("/:id/status", validators.UpdateStatus(), controllers.AdminUpdateProblemStatus)
	problemGroup.Post("/:id/publish", validators.ProblemID(), controllers.AdminPublishProblem)
	problemGroup.Post("/:id/unpublish", validators.ProblemID(), controllers.AdminUnpublishProblem)
	problemGroup.Delete("/:id", validators.ProblemID(), controllers.AdminDeleteProblem)
	problemGroup.Post("/:id/assign", validators.AssignPrograms(), controllers.AdminAssignPrograms)
	problemGroup.Get("/:id/analytics", validators.ProblemID(), controllers.AdminGetProblemAnalytics)

	// Category registry
	categoryGroup := app.Group("/admin/category", middleware.JWTMiddleware, middleware.AdminOnly)
	categoryGroup.Get("/list", controllers.AdminGetCategories)
	categoryGroup.Post("/create", validators.CreateCategory(), controllers.AdminCreateCategory)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard", middleware.JWTMiddleware, middleware.AdminOnly)
	dashGroup.Get("/stats", controllers.AdminDashboardStats)
}
