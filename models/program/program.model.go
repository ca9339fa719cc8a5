package program

import (
	"time"

	"gorm.io/datatypes"
)

// Program lifecycle statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Program is a curriculum container. Problems are assigned to programs by
// identifier list, independent of their category links.
type Program struct {
	ID                     string         `json:"id" gorm:"primaryKey"`
	Name                   string         `json:"name" gorm:"uniqueIndex;not null"`
	DisplayName            string         `json:"display_name" gorm:"not null"`
	Description            string         `json:"description" gorm:"type:text"`
	DifficultyLevel        int            `json:"difficulty_level" gorm:"default:1"`
	EstimatedDurationWeeks int            `json:"estimated_duration_weeks" gorm:"default:0"`
	Prerequisites          datatypes.JSON `json:"prerequisites"`
	LearningOutcomes       datatypes.JSON `json:"learning_outcomes"`
	ColorScheme            string         `json:"color_scheme"`
	Status                 string         `json:"status" gorm:"default:'draft'"`
	IsPublic               bool           `json:"is_public" gorm:"default:false"`
	EnrollmentOpen         bool           `json:"enrollment_open" gorm:"default:false"`
	MaxStudents            int            `json:"max_students" gorm:"default:0"` // 0 = no cap
	CreatedBy              uint           `json:"created_by" gorm:"index;not null"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}
