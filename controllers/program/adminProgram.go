package programController

import (
	"encoding/json"
	"log"
	"time"

	"mathcms/database"
	"mathcms/middleware"
	programModels "mathcms/models/program"
	validators "mathcms/validators/program"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminCreateProgram creates a new curriculum program as a private draft
func AdminCreateProgram(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProgram").(*validators.CreateProgramRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	prerequisites, _ := json.Marshal(reqData.Prerequisites)
	outcomes, _ := json.Marshal(reqData.LearningOutcomes)

	prog := programModels.Program{
		ID:                     uuid.NewString(),
		Name:                   reqData.Name,
		DisplayName:            reqData.DisplayName,
		Description:            reqData.Description,
		DifficultyLevel:        reqData.DifficultyLevel,
		EstimatedDurationWeeks: reqData.EstimatedDurationWeeks,
		Prerequisites:          prerequisites,
		LearningOutcomes:       outcomes,
		ColorScheme:            reqData.ColorScheme,
		Status:                 programModels.StatusDraft,
		IsPublic:               false,
		EnrollmentOpen:         reqData.EnrollmentOpen,
		MaxStudents:            reqData.MaxStudents,
		CreatedBy:              userID,
	}
	if prog.DifficultyLevel == 0 {
		prog.DifficultyLevel = 1
	}

	if err := database.Database.Db.Create(&prog).Error; err != nil {
		log.Printf("Error creating program %q: %v", reqData.Name, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create program!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Program created successfully!", prog)
}

// AdminGetPrograms lists all programs, newest first
func AdminGetPrograms(c *fiber.Ctx) error {
	var programs []programModels.Program
	if err := database.Database.Db.Order("created_at desc").Find(&programs).Error; err != nil {
		log.Printf("Error fetching programs: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch programs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Programs fetched successfully!", programs)
}

// AdminUpdateProgramStatus transitions a program's lifecycle status. The same
// derived-visibility rule as problems applies: published is public, draft and
// archived are private.
func AdminUpdateProgramStatus(c *fiber.Ctx) error {
	programID := c.Locals("programID").(string)
	targetStatus := c.Locals("targetStatus").(string)

	db := database.Database.Db

	var prog programModels.Program
	if err := db.Where("id = ?", programID).First(&prog).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Program not found!", nil)
	}

	prog.Status = targetStatus
	prog.UpdatedAt = time.Now()

	switch targetStatus {
	case programModels.StatusPublished:
		prog.IsPublic = true
	case programModels.StatusDraft, programModels.StatusArchived:
		prog.IsPublic = false
	}

	if err := db.Save(&prog).Error; err != nil {
		log.Printf("Error updating program %s status: %v", programID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update program status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Program status updated successfully!", prog)
}
