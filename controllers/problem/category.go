package problemController

import (
	"log"

	"mathcms/database"
	"mathcms/middleware"
	problemModels "mathcms/models/problem"
	validators "mathcms/validators/problem"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// defaultCategories is the fixed seed set inserted into a fresh environment.
var defaultCategories = []problemModels.Category{
	{Name: "basic_algebra", DisplayName: "基礎代數", Description: "基本代數運算和方程式", ColorHex: "#7A9CEB"},
	{Name: "calculus", DisplayName: "微積分", Description: "微分、積分和極限", ColorHex: "#10B981"},
	{Name: "statistics", DisplayName: "統計學", Description: "統計分析和機率", ColorHex: "#F59E0B"},
	{Name: "linear_algebra", DisplayName: "線性代數", Description: "向量、矩陣和線性變換", ColorHex: "#EF4444"},
	{Name: "competition_math", DisplayName: "競賽數學", Description: "數學競賽和奧林匹克數學", ColorHex: "#8B5CF6"},
}

// EnsureDefaultCategories seeds the default category set when no categories
// exist yet. Idempotent: a populated table makes this a no-op.
func EnsureDefaultCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&problemModels.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := make([]problemModels.Category, len(defaultCategories))
	copy(seed, defaultCategories)
	if err := db.Create(&seed).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d default categories", len(seed))
	return nil
}

// AdminGetCategories lists all categories ordered by display name
func AdminGetCategories(c *fiber.Ctx) error {
	var categories []problemModels.Category
	if err := database.Database.Db.Order("display_name asc").Find(&categories).Error; err != nil {
		log.Printf("Error fetching categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

// AdminCreateCategory creates a new category
func AdminCreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*validators.CreateCategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	category := problemModels.Category{
		Name:        reqData.Name,
		DisplayName: reqData.DisplayName,
		Description: reqData.Description,
		ColorHex:    reqData.ColorHex,
	}
	if category.ColorHex == "" {
		category.ColorHex = "#7A9CEB"
	}

	// Store rejections (e.g. duplicate name) propagate as-is
	if err := database.Database.Db.Create(&category).Error; err != nil {
		log.Printf("Error creating category %q: %v", reqData.Name, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}
