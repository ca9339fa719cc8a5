package studentController

import (
	"log"
	"math/rand"
	"strconv"

	"mathcms/database"
	"mathcms/middleware"
	problemModels "mathcms/models/problem"
	"mathcms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MathQuestion is the presentation shape of one practice question
type MathQuestion struct {
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Correct    int      `json:"correct"`
	Difficulty string   `json:"difficulty"`
}

// MathProgram is the presentation shape of one practice program card
type MathProgram struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Difficulty        string         `json:"difficulty"`
	DifficultyColor   string         `json:"difficultyColor"`
	DifficultyBgColor string         `json:"difficultyBgColor"`
	Level             string         `json:"level"`
	StudentCount      string         `json:"studentCount"`
	ImageSrc          string         `json:"imageSrc"`
	GradientFrom      string         `json:"gradientFrom"`
	GradientTo        string         `json:"gradientTo"`
	Questions         []MathQuestion `json:"questions"`
}

type categoryConfig struct {
	Title             string
	Description       string
	Difficulty        string
	DifficultyColor   string
	DifficultyBgColor string
	Level             string
	ImageSrc          string
	GradientFrom      string
	GradientTo        string
}

var categoryConfigs = map[string]categoryConfig{
	"basic_algebra": {
		Title:             "學測｜數學A",
		Description:       "代數基礎概念，包含方程式、函數等核心內容。",
		Difficulty:        "中等",
		DifficultyColor:   "text-green-600",
		DifficultyBgColor: "bg-green-100",
		Level:             "適合高中程度",
		ImageSrc:          "/asian-kid-studying.png",
		GradientFrom:      "blue-400",
		GradientTo:        "blue-600",
	},
	"calculus": {
		Title:             "微積分｜進階",
		Description:       "微分與積分核心概念，適合理工科系考生。",
		Difficulty:        "困難",
		DifficultyColor:   "text-orange-600",
		DifficultyBgColor: "bg-orange-100",
		Level:             "適合大學程度",
		ImageSrc:          "/calculus.png",
		GradientFrom:      "purple-400",
		GradientTo:        "purple-600",
	},
	"statistics": {
		Title:             "統計學｜數據分析",
		Description:       "統計概念與數據分析，適合社會科學應用。",
		Difficulty:        "中等",
		DifficultyColor:   "text-purple-600",
		DifficultyBgColor: "bg-purple-100",
		Level:             "適合高中程度",
		ImageSrc:          "/statistics1.png",
		GradientFrom:      "yellow-400",
		GradientTo:        "yellow-600",
	},
	"linear_algebra": {
		Title:             "線性代數｜向量矩陣",
		Description:       "向量、矩陣與線性變換，理工科系的必備基礎。",
		Difficulty:        "困難",
		DifficultyColor:   "text-blue-600",
		DifficultyBgColor: "bg-blue-100",
		Level:             "適合大學程度",
		ImageSrc:          "/demo3.png",
		GradientFrom:      "green-400",
		GradientTo:        "green-600",
	},
	"competition_math": {
		Title:             "競賽數學｜AMC",
		Description:       "數學競賽專項訓練，包含奧林匹克數學、AMC等競賽題型。",
		Difficulty:        "專家",
		DifficultyColor:   "text-red-600",
		DifficultyBgColor: "bg-red-100",
		Level:             "適合競賽程度",
		ImageSrc:          "/competitions.png",
		GradientFrom:      "red-400",
		GradientTo:        "red-600",
	},
}

// GetPublishedProblems lists servable problems with options and categories
func GetPublishedProblems(c *fiber.Ctx) error {
	problems, err := fetchServableProblems()
	if err != nil {
		log.Printf("Error fetching published problems: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch problems!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Problems fetched successfully!", problems)
}

// GetMathPrograms groups servable problems by primary category into practice
// program cards. Falls back to a fixed sample set while no content is
// published, so the practice UI is never empty.
func GetMathPrograms(c *fiber.Ctx) error {
	problems, err := fetchServableProblems()
	if err != nil {
		log.Printf("Error fetching problems for programs: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch programs!", nil)
	}

	if len(problems) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Programs fetched successfully!", hardcodedPrograms())
	}

	grouped := make(map[string][]problemModels.Problem)
	var order []string
	for _, p := range problems {
		name := primaryCategoryName(&p)
		if _, seen := grouped[name]; !seen {
			order = append(order, name)
		}
		grouped[name] = append(grouped[name], p)
	}

	programs := make([]MathProgram, 0, len(order))
	for _, name := range order {
		programs = append(programs, programFromCategory(name, grouped[name]))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Programs fetched successfully!", programs)
}

func fetchServableProblems() ([]problemModels.Problem, error) {
	var problems []problemModels.Problem
	err := database.Database.Db.
		Where("status = ? AND is_public = ?", problemModels.StatusPublished, true).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("option_order asc")
		}).
		Preload("CategoryLinks.Category").
		Order("created_at desc").
		Find(&problems).Error
	if err != nil {
		return nil, err
	}

	// Belt and braces: Servable is the single source of truth for exposure
	servable := problems[:0]
	for _, p := range problems {
		if p.Servable() {
			servable = append(servable, p)
		}
	}
	return servable, nil
}

func primaryCategoryName(p *problemModels.Problem) string {
	for _, link := range p.CategoryLinks {
		if link.IsPrimary && link.Category.Name != "" {
			return link.Category.Name
		}
	}
	for _, link := range p.CategoryLinks {
		if link.Category.Name != "" {
			return link.Category.Name
		}
	}
	return "basic_algebra"
}

func programFromCategory(categoryName string, problems []problemModels.Problem) MathProgram {
	cfg, ok := categoryConfigs[categoryName]
	if !ok {
		cfg = categoryConfigs["basic_algebra"]
	}

	questions := make([]MathQuestion, 0, len(problems))
	for _, p := range problems {
		options := make([]string, 0, len(p.Options))
		correct := 0
		for i, opt := range p.Options { // options are preloaded in display order
			options = append(options, opt.Content)
			if opt.IsCorrect && correct == 0 {
				correct = i
			}
		}
		questions = append(questions, MathQuestion{
			Question:   p.Content,
			Options:    options,
			Correct:    correct,
			Difficulty: utils.FormatDifficulty(p.DifficultyLevel),
		})
	}

	return MathProgram{
		ID:                categoryName,
		Title:             cfg.Title,
		Description:       cfg.Description,
		Difficulty:        cfg.Difficulty,
		DifficultyColor:   cfg.DifficultyColor,
		DifficultyBgColor: cfg.DifficultyBgColor,
		Level:             cfg.Level,
		StudentCount:      strconv.Itoa(rand.Intn(3000) + 500), // display-only placeholder
		ImageSrc:          cfg.ImageSrc,
		GradientFrom:      cfg.GradientFrom,
		GradientTo:        cfg.GradientTo,
		Questions:         questions,
	}
}

// hardcodedPrograms is the fixed fallback shown before any content is
// published.
func hardcodedPrograms() []MathProgram {
	return []MathProgram{
		{
			ID:                "math-a",
			Title:             "學測｜數學A",
			Description:       "大學學測數學A，涵蓋代數、幾何、統計等核心概念，適合理工科系考生。",
			Difficulty:        "中等",
			DifficultyColor:   "text-green-600",
			DifficultyBgColor: "bg-green-100",
			Level:             "適合高中程度",
			StudentCount:      "2,847",
			ImageSrc:          "/asian-kid-studying.png",
			GradientFrom:      "blue-400",
			GradientTo:        "blue-600",
			Questions: []MathQuestion{
				{
					Question:   "解方程式：2x + 5 = 13",
					Options:    []string{"x = 3", "x = 4", "x = 5", "x = 6"},
					Correct:    1,
					Difficulty: "基礎",
				},
				{
					Question:   "若 f(x) = 2x + 3，求 f(5) 的值",
					Options:    []string{"10", "11", "12", "13"},
					Correct:    3,
					Difficulty: "基礎",
				},
			},
		},
		{
			ID:                "calculus",
			Title:             "微積分｜進階",
			Description:       "微分與積分核心概念，專為理工科系設計的進階數學課程。",
			Difficulty:        "困難",
			DifficultyColor:   "text-orange-600",
			DifficultyBgColor: "bg-orange-100",
			Level:             "適合大學程度",
			StudentCount:      "1,923",
			ImageSrc:          "/calculus.png",
			GradientFrom:      "purple-400",
			GradientTo:        "purple-600",
			Questions: []MathQuestion{
				{
					Question:   "求函數 f(x) = x³ - 3x² + 2x 的導數",
					Options:    []string{"3x² - 6x + 2", "3x² - 3x + 2", "x² - 6x + 2", "3x² - 6x + 1"},
					Correct:    0,
					Difficulty: "進階",
				},
			},
		},
	}
}
