package problemValidator

import (
	"strconv"
	"strings"

	"mathcms/middleware"
	problemModels "mathcms/models/problem"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// OptionInput is one answer option in a create request
type OptionInput struct {
	Content     string `json:"content" validate:"required"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

// HintInput is one hint in a create request
type HintInput struct {
	Title    string `json:"title"`
	Content  string `json:"content" validate:"required"`
	HintType string `json:"hint_type" validate:"required,oneof=conceptual calculation strategy check"`
}

// CreateProblemRequest is the validated problem creation payload
type CreateProblemRequest struct {
	Title                string        `json:"title"`
	Content              string        `json:"content" validate:"required"`
	CorrectAnswer        string        `json:"correct_answer" validate:"required"`
	DifficultyLevel      int           `json:"difficulty_level" validate:"required,min=1,max=5"`
	ProblemType          string        `json:"problem_type" validate:"required,oneof=multiple_choice free_response true_false fill_blank"`
	SolutionExplanation  string        `json:"solution_explanation"`
	EstimatedTimeMinutes int           `json:"estimated_time_minutes" validate:"omitempty,min=1"`
	Options              []OptionInput `json:"options" validate:"dive"`
	Hints                []HintInput   `json:"hints" validate:"dive"`
	CategoryIDs          []uint        `json:"category_ids"`
}

// CreateCategoryRequest is the validated category creation payload
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	DisplayName string `json:"display_name" validate:"required"`
	Description string `json:"description"`
	ColorHex    string `json:"color_hex" validate:"omitempty,hexcolor"`
}

// ListFilters are the validated admin list query parameters
type ListFilters struct {
	DifficultyLevel int
	Status          string
	CreatedBy       uint
	Limit           int
}

// CreateProblem validates admin problem creation. Difficulty outside 1-5 and
// unknown problem or hint types never reach the store.
func CreateProblem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateProblemRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Content = strings.TrimSpace(reqData.Content)
		reqData.CorrectAnswer = strings.TrimSpace(reqData.CorrectAnswer)

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Content":
					errors["content"] = "Problem content is required!"
				case "CorrectAnswer":
					errors["correct_answer"] = "Correct answer is required!"
				case "DifficultyLevel":
					errors["difficulty_level"] = "Difficulty level must be between 1 and 5!"
				case "ProblemType":
					errors["problem_type"] = "Problem type must be multiple_choice, free_response, true_false, or fill_blank!"
				case "EstimatedTimeMinutes":
					errors["estimated_time_minutes"] = "Estimated time must be a positive number!"
				case "HintType":
					errors["hints"] = "Hint type must be conceptual, calculation, strategy, or check!"
				default:
					errors[strings.ToLower(fieldErr.Field())] = "Invalid value!"
				}
			}
		}

		// Options only make sense for multiple choice problems
		if reqData.ProblemType == problemModels.TypeMultipleChoice && len(reqData.Options) > 0 {
			hasCorrect := false
			for _, opt := range reqData.Options {
				if opt.IsCorrect {
					hasCorrect = true
					break
				}
			}
			if !hasCorrect {
				errors["options"] = "At least one option must be marked correct!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProblem", reqData)
		return c.Next()
	}
}

// ProblemID validates the :id path parameter
func ProblemID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		problemID := strings.TrimSpace(c.Params("id"))
		if problemID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Problem ID is required!", nil)
		}

		c.Locals("problemID", problemID)
		return c.Next()
	}
}

// UpdateStatus validates a status transition request
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		problemID := strings.TrimSpace(c.Params("id"))
		if problemID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Problem ID is required!", nil)
		}

		reqData := new(struct {
			Status string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Status = strings.TrimSpace(reqData.Status)
		if !problemModels.ValidStatus(reqData.Status) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be draft, review, published, or archived!",
			})
		}

		c.Locals("problemID", problemID)
		c.Locals("targetStatus", reqData.Status)
		return c.Next()
	}
}

// AdminList validates list query parameters
func AdminList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := &ListFilters{Limit: 50}

		if raw := c.Query("difficulty_level"); raw != "" {
			level, err := strconv.Atoi(raw)
			if err != nil || level < 1 || level > 5 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid difficulty level filter!", nil)
			}
			filters.DifficultyLevel = level
		}

		if raw := c.Query("status"); raw != "" {
			if !problemModels.ValidStatus(raw) {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid status filter!", nil)
			}
			filters.Status = raw
		}

		if raw := c.Query("created_by"); raw != "" {
			creator, err := strconv.Atoi(raw)
			if err != nil || creator <= 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid creator filter!", nil)
			}
			filters.CreatedBy = uint(creator)
		}

		if raw := c.Query("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit <= 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid limit!", nil)
			}
			filters.Limit = limit
		}

		c.Locals("problemFilters", filters)
		return c.Next()
	}
}

// CreateCategory validates category creation
func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCategoryRequest)

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
					errors["name"] = "Category name must be at least 2 characters long!"
				case "DisplayName":
					errors["display_name"] = "Display name is required!"
				case "ColorHex":
					errors["color_hex"] = "Color must be a hex color code!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// AssignPrograms validates a problem-to-program assignment request
func AssignPrograms() fiber.Handler {
	return func(c *fiber.Ctx) error {
		problemID := strings.TrimSpace(c.Params("id"))
		if problemID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Problem ID is required!", nil)
		}

		reqData := new(struct {
			ProgramIDs []string `json:"program_ids"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("problemID", problemID)
		c.Locals("programIDs", reqData.ProgramIDs)
		return c.Next()
	}
}
