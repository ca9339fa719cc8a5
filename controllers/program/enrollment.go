package programController

import (
	"log"
	"time"

	"mathcms/database"
	"mathcms/middleware"
	"mathcms/models"
	programModels "mathcms/models/program"

	"github.com/gofiber/fiber/v2"
)

// EnrollInProgram enrolls the calling student into a published program with
// open enrollment, respecting the optional student cap.
func EnrollInProgram(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	programID := c.Locals("programID").(string)

	var prog programModels.Program
	if err := database.Database.Db.Where("id = ? AND status = ?", programID, programModels.StatusPublished).First(&prog).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Program not found or not published!", nil)
	}

	if !prog.EnrollmentOpen {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enrollment is closed for this program!", nil)
	}

	if prog.MaxStudents > 0 {
		var enrolled int64
		database.Database.Db.Model(&programModels.Enrollment{}).
			Where("program_id = ? AND status IN ?", programID,
				[]string{programModels.EnrollmentActive, programModels.EnrollmentCompleted}).
			Count(&enrolled)
		if enrolled >= int64(prog.MaxStudents) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Program is full!", nil)
		}
	}

	var existing programModels.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND program_id = ?", userID, programID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this program!", nil)
	}

	enrollment := programModels.Enrollment{
		StudentID:      userID,
		ProgramID:      programID,
		Status:         programModels.EnrollmentActive,
		LastActivityAt: time.Now(),
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		log.Printf("Error enrolling user %d in program %s: %v", userID, programID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in program!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in program successfully!", enrollment)
}

// GetUserEnrollments lists the calling student's enrollments with their
// programs.
func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []programModels.Enrollment
	if err := database.Database.Db.Where("student_id = ?", userID).
		Preload("Program").Order("created_at desc").Find(&enrollments).Error; err != nil {
		log.Printf("Error fetching enrollments for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}
