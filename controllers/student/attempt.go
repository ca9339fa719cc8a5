package studentController

import (
	"encoding/json"
	"log"
	"time"

	"mathcms/database"
	"mathcms/middleware"
	"mathcms/models"
	problemModels "mathcms/models/problem"
	programModels "mathcms/models/program"
	"mathcms/utils"
	validators "mathcms/validators/student"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RecordProblemAttempt appends an immutable attempt row and increments the
// problem's aggregate counters. The insert and the counter increments run in
// one transaction, and the increments are atomic SQL expressions, so counts
// stay exact under concurrent submissions.
func RecordProblemAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	problemID := c.Locals("problemID").(string)
	reqData, ok := c.Locals("validatedAttempt").(*validators.AttemptRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var prob problemModels.Problem
	if err := db.Where("id = ?", problemID).First(&prob).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Problem not found!", nil)
	}
	if !prob.Servable() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Problem is not available!", nil)
	}

	hintsUsed, err := json.Marshal(reqData.HintsUsed)
	if err != nil {
		hintsUsed = []byte("[]")
	}

	var attempt problemModels.Attempt

	// The ordinal comes from a count, so two simultaneous submissions by the
	// same student can race to the same attempt number. The unique ordinal
	// index rejects the loser; re-running the transaction recounts and takes
	// the next number.
	runAttempt := func(tx *gorm.DB) error {
		var priorAttempts int64
		if err := tx.Model(&problemModels.Attempt{}).
			Where("user_id = ? AND problem_id = ?", userID, problemID).
			Count(&priorAttempts).Error; err != nil {
			return err
		}

		attempt = problemModels.Attempt{
			UserID:            userID,
			ProblemID:         problemID,
			SubmittedAnswer:   reqData.SubmittedAnswer,
			IsCorrect:         reqData.IsCorrect,
			AttemptNumber:     int(priorAttempts) + 1,
			TimeSpentSeconds:  reqData.TimeSpentSeconds,
			HintsUsed:         hintsUsed,
			ProgramID:         reqData.ProgramID,
			ModuleID:          reqData.ModuleID,
			AssignmentContext: reqData.AssignmentContext,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"total_attempts": gorm.Expr("total_attempts + 1"),
		}
		if reqData.IsCorrect {
			updates["correct_attempts"] = gorm.Expr("correct_attempts + 1")
		}
		if err := tx.Model(&problemModels.Problem{}).Where("id = ?", problemID).
			UpdateColumns(updates).Error; err != nil {
			return err
		}

		if reqData.ProgramID != "" {
			if err := updateEnrollmentProgress(tx, userID, reqData.ProgramID, reqData.TimeSpentSeconds); err != nil {
				return err
			}
		}

		return nil
	}

	for try := 0; try < 3; try++ {
		if err = db.Transaction(runAttempt); err == nil {
			break
		}
	}
	if err != nil {
		log.Printf("Error recording attempt for problem %s: %v", problemID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attempt recorded!", attempt)
}

// updateEnrollmentProgress rolls the student's enrollment forward after an
// attempt in a program context. Skips silently when the student is not
// enrolled; attempts outside an enrollment are still valid practice.
func updateEnrollmentProgress(tx *gorm.DB, userID uint, programID string, timeSpentSeconds int) error {
	var enrollment programModels.Enrollment
	if err := tx.Where("student_id = ? AND program_id = ?", userID, programID).
		First(&enrollment).Error; err != nil {
		return nil
	}

	// Distinct problems this student has solved in the program
	var solved int64
	if err := tx.Model(&problemModels.Attempt{}).
		Where("user_id = ? AND program_id = ? AND is_correct = ?", userID, programID, true).
		Distinct("problem_id").Count(&solved).Error; err != nil {
		return err
	}

	var totalAttempts, correctAttempts int64
	if err := tx.Model(&problemModels.Attempt{}).
		Where("user_id = ? AND program_id = ?", userID, programID).
		Count(&totalAttempts).Error; err != nil {
		return err
	}
	if err := tx.Model(&problemModels.Attempt{}).
		Where("user_id = ? AND program_id = ? AND is_correct = ?", userID, programID, true).
		Count(&correctAttempts).Error; err != nil {
		return err
	}

	// Program size: servable problems assigned to this program
	var published []problemModels.Problem
	if err := tx.Where("status = ? AND is_public = ?", problemModels.StatusPublished, true).
		Find(&published).Error; err != nil {
		return err
	}
	total := 0
	for i := range published {
		if utils.ProblemAssignedTo(&published[i], programID) {
			total++
		}
	}

	enrollment.ProblemsCompleted = int(solved)
	enrollment.TotalTimeSpentMinutes += timeSpentSeconds / 60
	enrollment.LastActivityAt = time.Now()
	if totalAttempts > 0 {
		enrollment.AverageScore = float64(correctAttempts) / float64(totalAttempts) * 100
	}
	if total > 0 {
		enrollment.ProgressPercentage = float64(solved) / float64(total) * 100
		if enrollment.ProgressPercentage > 100 {
			enrollment.ProgressPercentage = 100
		}
		if enrollment.ProgressPercentage >= 100 {
			enrollment.Status = programModels.EnrollmentCompleted
		}
	}

	return tx.Save(&enrollment).Error
}
