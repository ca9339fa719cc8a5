package programValidator

import (
	"strings"

	"mathcms/middleware"
	programModels "mathcms/models/program"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateProgramRequest is the validated program creation payload
type CreateProgramRequest struct {
	Name                   string   `json:"name" validate:"required,min=2"`
	DisplayName            string   `json:"display_name" validate:"required"`
	Description            string   `json:"description"`
	DifficultyLevel        int      `json:"difficulty_level" validate:"omitempty,min=1,max=5"`
	EstimatedDurationWeeks int      `json:"estimated_duration_weeks" validate:"omitempty,min=1"`
	Prerequisites          []string `json:"prerequisites"`
	LearningOutcomes       []string `json:"learning_outcomes"`
	ColorScheme            string   `json:"color_scheme"`
	EnrollmentOpen         bool     `json:"enrollment_open"`
	MaxStudents            int      `json:"max_students" validate:"omitempty,min=1"`
}

// CreateProgram validates admin program creation
func CreateProgram() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateProgramRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.DisplayName = strings.TrimSpace(reqData.DisplayName)

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Name":
					errors["name"] = "Program name must be at least 2 characters long!"
				case "DisplayName":
					errors["display_name"] = "Display name is required!"
				case "DifficultyLevel":
					errors["difficulty_level"] = "Difficulty level must be between 1 and 5!"
				case "EstimatedDurationWeeks":
					errors["estimated_duration_weeks"] = "Duration must be a positive number of weeks!"
				case "MaxStudents":
					errors["max_students"] = "Max students must be a positive number!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgram", reqData)
		return c.Next()
	}
}

// ProgramID validates the :id path parameter
func ProgramID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		programID := strings.TrimSpace(c.Params("id"))
		if programID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Program ID is required!", nil)
		}

		c.Locals("programID", programID)
		return c.Next()
	}
}

// UpdateStatus validates a program status transition request
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		programID := strings.TrimSpace(c.Params("id"))
		if programID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Program ID is required!", nil)
		}

		reqData := new(struct {
			Status string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Status = strings.TrimSpace(reqData.Status)
		switch reqData.Status {
		case programModels.StatusDraft, programModels.StatusPublished, programModels.StatusArchived:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be draft, published, or archived!",
			})
		}

		c.Locals("programID", programID)
		c.Locals("targetStatus", reqData.Status)
		return c.Next()
	}
}
