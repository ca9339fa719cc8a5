package problem

import "gorm.io/gorm"

// Category is a topical tag classifying problems. Small lookup table, seeded
// with a default set on first use.
type Category struct {
	gorm.Model
	Name             string `json:"name" gorm:"uniqueIndex;not null"`
	DisplayName      string `json:"display_name" gorm:"not null"`
	Description      string `json:"description"`
	ColorHex         string `json:"color_hex" gorm:"default:'#7A9CEB'"`
	ParentCategoryID *uint  `json:"parent_category_id"`
}

// CategoryLink joins a problem to a category. The first category supplied at
// creation time is flagged primary.
type CategoryLink struct {
	gorm.Model
	ProblemID  string   `json:"problem_id" gorm:"index;not null"`
	CategoryID uint     `json:"category_id" gorm:"index;not null"`
	IsPrimary  bool     `json:"is_primary" gorm:"default:false"`
	Category   Category `json:"category" gorm:"foreignKey:CategoryID"`
}
