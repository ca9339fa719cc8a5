package problem

import "gorm.io/gorm"

// Option is an answer choice owned by exactly one problem. Options are
// replaced as a set on edit, never patched individually.
type Option struct {
	gorm.Model
	ProblemID   string `json:"problem_id" gorm:"index;not null"`
	OptionOrder int    `json:"option_order" gorm:"not null"` // 1-based display order
	Content     string `json:"content" gorm:"type:text;not null"`
	IsCorrect   bool   `json:"is_correct" gorm:"default:false"`
	Explanation string `json:"explanation" gorm:"type:text"`
}
