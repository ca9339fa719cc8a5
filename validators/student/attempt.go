package studentValidator

import (
	"strings"

	"mathcms/middleware"
	problemModels "mathcms/models/problem"

	"github.com/gofiber/fiber/v2"
)

// AttemptRequest is the validated attempt submission payload
type AttemptRequest struct {
	SubmittedAnswer   string `json:"submitted_answer"`
	IsCorrect         bool   `json:"is_correct"`
	TimeSpentSeconds  int    `json:"time_spent_seconds"`
	HintsUsed         []int  `json:"hints_used"`
	ProgramID         string `json:"program_id"`
	ModuleID          string `json:"module_id"`
	AssignmentContext string `json:"assignment_context"`
}

// SubmitAttempt validates an attempt submission
func SubmitAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		problemID := strings.TrimSpace(c.Params("id"))
		if problemID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Problem ID is required!", nil)
		}

		reqData := new(AttemptRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.TimeSpentSeconds < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"time_spent_seconds": "Time spent cannot be negative!",
			})
		}

		if reqData.AssignmentContext == "" {
			reqData.AssignmentContext = problemModels.ContextPractice
		}
		switch reqData.AssignmentContext {
		case problemModels.ContextPractice, problemModels.ContextQuiz, problemModels.ContextHomework, problemModels.ContextExam:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"assignment_context": "Assignment context must be practice, quiz, homework, or exam!",
			})
		}

		c.Locals("problemID", problemID)
		c.Locals("validatedAttempt", reqData)
		return c.Next()
	}
}
