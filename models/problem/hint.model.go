package problem

import "gorm.io/gorm"

// Hint types.
const (
	HintConceptual  = "conceptual"
	HintCalculation = "calculation"
	HintStrategy    = "strategy"
	HintCheck       = "check"
)

// Hint is an ordered, append-friendly aid owned by exactly one problem.
type Hint struct {
	gorm.Model
	ProblemID string `json:"problem_id" gorm:"index;not null"`
	HintOrder int    `json:"hint_order" gorm:"not null"` // 1-based display order
	Title     string `json:"title"`
	Content   string `json:"content" gorm:"type:text;not null"`
	HintType  string `json:"hint_type" gorm:"default:'conceptual'"`
}
