package problemController

import (
	"log"
	"time"

	"mathcms/database"
	"mathcms/middleware"
	problemModels "mathcms/models/problem"
	"mathcms/utils"
	validators "mathcms/validators/problem"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminCreateProblem creates a new problem with its options and hints.
// The problem row, options, and hints are written in one transaction; category
// links are best-effort and recorded as pending when they cannot be written.
func AdminCreateProblem(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProblem").(*validators.CreateProblemRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := EnsureDefaultCategories(db); err != nil {
		log.Printf("Error ensuring default categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to prepare categories!", nil)
	}

	// Status and visibility are forced regardless of caller input: every
	// problem starts as a private draft.
	prob := problemModels.Problem{
		ID:                   uuid.NewString(),
		Title:                reqData.Title,
		Content:              reqData.Content,
		CorrectAnswer:        reqData.CorrectAnswer,
		SolutionExplanation:  reqData.SolutionExplanation,
		DifficultyLevel:      reqData.DifficultyLevel,
		ProblemType:          reqData.ProblemType,
		EstimatedTimeMinutes: reqData.EstimatedTimeMinutes,
		Status:               problemModels.StatusDraft,
		IsPublic:             false,
		LinkStatus:           problemModels.LinkComplete,
		CreatedBy:            userID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&prob).Error; err != nil {
			return err
		}

		// Options only apply to multiple choice problems
		if prob.ProblemType == problemModels.TypeMultipleChoice && len(reqData.Options) > 0 {
			options := make([]problemModels.Option, len(reqData.Options))
			for i, opt := range reqData.Options {
				options[i] = problemModels.Option{
					ProblemID:   prob.ID,
					OptionOrder: i + 1,
					Content:     opt.Content,
					IsCorrect:   opt.IsCorrect,
					Explanation: opt.Explanation,
				}
			}
			if err := tx.Create(&options).Error; err != nil {
				return err
			}
		}

		if len(reqData.Hints) > 0 {
			hints := make([]problemModels.Hint, len(reqData.Hints))
			for i, hint := range reqData.Hints {
				hints[i] = problemModels.Hint{
					ProblemID: prob.ID,
					HintOrder: i + 1,
					Title:     hint.Title,
					Content:   hint.Content,
					HintType:  hint.HintType,
				}
			}
			if err := tx.Create(&hints).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Printf("Error creating problem: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create problem!", nil)
	}

	// Category links never fail the create; a failed write or an ID that does
	// not resolve is recorded on the problem row and repaired by the reconciler.
	if len(reqData.CategoryIDs) > 0 {
		unresolved, err := utils.LinkCategories(db, prob.ID, reqData.CategoryIDs)
		switch {
		case err != nil:
			log.Printf("Error linking categories for problem %s: %v", prob.ID, err)
			utils.MarkLinksPending(db, prob.ID, reqData.CategoryIDs)
			prob.LinkStatus = problemModels.LinkPending
		case len(unresolved) > 0:
			log.Printf("Problem %s has %d unresolved category IDs", prob.ID, len(unresolved))
			utils.MarkLinksPending(db, prob.ID, unresolved)
			prob.LinkStatus = problemModels.LinkPending
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Problem created successfully!", prob)
}

// AdminGetProblems lists problems with options, hints, and categories in one
// response, newest first.
func AdminGetProblems(c *fiber.Ctx) error {
	filters, ok := c.Locals("problemFilters").(*validators.ListFilters)
	if !ok {
		filters = &validators.ListFilters{Limit: 50}
	}

	db := database.Database.Db.Model(&problemModels.Problem{}).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("option_order asc")
		}).
		Preload("Hints", func(db *gorm.DB) *gorm.DB {
			return db.Order("hint_order asc")
		}).
		Preload("CategoryLinks.Category").
		Order("created_at desc")

	if filters.DifficultyLevel > 0 {
		db = db.Where("difficulty_level = ?", filters.DifficultyLevel)
	}
	if filters.Status != "" {
		db = db.Where("status = ?", filters.Status)
	}
	if filters.CreatedBy > 0 {
		db = db.Where("created_by = ?", filters.CreatedBy)
	}

	var problems []problemModels.Problem
	if err := db.Limit(filters.Limit).Find(&problems).Error; err != nil {
		log.Printf("Error fetching problems: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch problems!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Problems fetched successfully!", problems)
}

// AdminUpdateProblemStatus is the sole workflow transition. Publishing makes
// the problem public; moving to draft or archived hides it; review leaves
// visibility untouched.
func AdminUpdateProblemStatus(c *fiber.Ctx) error {
	problemID := c.Locals("problemID").(string)
	targetStatus := c.Locals("targetStatus").(string)

	return applyStatusTransition(c, problemID, targetStatus)
}

// AdminPublishProblem publishes a problem and exposes it to students
func AdminPublishProblem(c *fiber.Ctx) error {
	problemID := c.Locals("problemID").(string)
	return applyStatusTransition(c, problemID, problemModels.StatusPublished)
}

// AdminUnpublishProblem returns a problem to a private draft
func AdminUnpublishProblem(c *fiber.Ctx) error {
	problemID := c.Locals("problemID").(string)
	return applyStatusTransition(c, problemID, problemModels.StatusDraft)
}

func applyStatusTransition(c *fiber.Ctx, problemID, targetStatus string) error {
	db := database.Database.Db

	var prob problemModels.Problem
	if err := db.Where("id = ?", problemID).First(&prob).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Problem not found!", nil)
	}

	prob.Status = targetStatus
	prob.UpdatedAt = time.Now()

	// is_public is written here and nowhere else, so it cannot drift from the
	// lifecycle status.
	switch targetStatus {
	case problemModels.StatusPublished:
		prob.IsPublic = true
	case problemModels.StatusDraft, problemModels.StatusArchived:
		prob.IsPublic = false
	case problemModels.StatusReview:
		// neutral state: review neither exposes nor hides
	}

	if err := db.Save(&prob).Error; err != nil {
		log.Printf("Error updating problem %s status: %v", problemID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update problem status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Problem status updated successfully!", prob)
}

// AdminDeleteProblem deletes a problem and its owned children. The cascade
// runs in one transaction so a partial failure cannot orphan child rows.
func AdminDeleteProblem(c *fiber.Ctx) error {
	problemID := c.Locals("problemID").(string)

	db := database.Database.Db

	var prob problemModels.Problem
	if err := db.Where("id = ?", problemID).First(&prob).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Problem not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("problem_id = ?", problemID).Delete(&problemModels.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("problem_id = ?", problemID).Delete(&problemModels.Hint{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("problem_id = ?", problemID).Delete(&problemModels.CategoryLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&problemModels.Problem{}, "id = ?", problemID).Error
	})
	if err != nil {
		log.Printf("Error deleting problem %s: %v", problemID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete problem!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Problem deleted successfully!", nil)
}

// AdminAssignPrograms assigns a problem to programs by identifier list.
// Assignment is independent of category links.
func AdminAssignPrograms(c *fiber.Ctx) error {
	problemID := c.Locals("problemID").(string)
	programIDs, ok := c.Locals("programIDs").([]string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var prob problemModels.Problem
	if err := db.Where("id = ?", problemID).First(&prob).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Problem not found!", nil)
	}

	assigned, err := utils.AssignProblemPrograms(db, &prob, programIDs)
	if err != nil {
		log.Printf("Error assigning problem %s to programs: %v", problemID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign problem to programs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Problem assigned to programs successfully!", fiber.Map{
		"problem":           prob,
		"assigned_programs": assigned,
	})
}
