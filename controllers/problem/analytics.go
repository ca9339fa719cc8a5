package problemController

import (
	"log"
	"math"

	"mathcms/database"
	"mathcms/middleware"
	"mathcms/models"
	problemModels "mathcms/models/problem"

	"github.com/gofiber/fiber/v2"
)

// AdminGetProblemAnalytics returns success rate, timing, and solver stats for
// one problem. Rates come from the attempt log; the counters on the problem
// row are the request-path aggregates.
func AdminGetProblemAnalytics(c *fiber.Ctx) error {
	problemID := c.Locals("problemID").(string)

	db := database.Database.Db

	var prob problemModels.Problem
	if err := db.Where("id = ?", problemID).First(&prob).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Problem not found!", nil)
	}

	var totalAttempts, correctAttempts, uniqueSolvers int64
	db.Model(&problemModels.Attempt{}).Where("problem_id = ?", problemID).Count(&totalAttempts)
	db.Model(&problemModels.Attempt{}).Where("problem_id = ? AND is_correct = ?", problemID, true).Count(&correctAttempts)
	db.Model(&problemModels.Attempt{}).Where("problem_id = ?", problemID).
		Distinct("user_id").Count(&uniqueSolvers)

	var averageTime float64
	if totalAttempts > 0 {
		row := db.Model(&problemModels.Attempt{}).Where("problem_id = ?", problemID).
			Select("AVG(time_spent_seconds)").Row()
		if err := row.Scan(&averageTime); err != nil {
			log.Printf("Error computing average time for problem %s: %v", problemID, err)
		}
	}

	successRate := 0.0
	if totalAttempts > 0 {
		successRate = math.Round(float64(correctAttempts)/float64(totalAttempts)*100*100) / 100
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Problem analytics fetched successfully!", fiber.Map{
		"total_attempts":   totalAttempts,
		"correct_attempts": correctAttempts,
		"success_rate":     successRate,
		"average_time":     math.Round(averageTime),
		"unique_solvers":   uniqueSolvers,
	})
}

// AdminDashboardStats returns content and activity counts for the admin
// dashboard.
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var problemCount, publishedCount, studentCount, categoryCount, totalAttempts int64
	db.Model(&problemModels.Problem{}).Count(&problemCount)
	db.Model(&problemModels.Problem{}).Where("status = ?", problemModels.StatusPublished).Count(&publishedCount)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "STUDENT", false).Count(&studentCount)
	db.Model(&problemModels.Category{}).Count(&categoryCount)
	db.Model(&problemModels.Attempt{}).Count(&totalAttempts)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"problem_count":   problemCount,
		"published_count": publishedCount,
		"student_count":   studentCount,
		"category_count":  categoryCount,
		"total_attempts":  totalAttempts,
	})
}
