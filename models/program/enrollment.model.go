package program

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment statuses.
const (
	EnrollmentActive    = "active"
	EnrollmentPaused    = "paused"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

// Enrollment links a student to a program and tracks progress. It is rolled
// forward on every recorded attempt carrying this program's context.
type Enrollment struct {
	gorm.Model
	StudentID             uint           `json:"student_id" gorm:"index;not null"`
	ProgramID             string         `json:"program_id" gorm:"index;not null"`
	Status                string         `json:"status" gorm:"default:'active'"`
	ProgressPercentage    float64        `json:"progress_percentage" gorm:"default:0"`
	AccessLevel           string         `json:"access_level" gorm:"default:'standard'"` // standard, premium, trial
	CurrentModuleID       string         `json:"current_module_id"`
	CompletedModules      datatypes.JSON `json:"completed_modules"`
	TotalTimeSpentMinutes int            `json:"total_time_spent_minutes" gorm:"default:0"`
	ProblemsCompleted     int            `json:"problems_completed" gorm:"default:0"`
	AverageScore          float64        `json:"average_score" gorm:"default:0"`
	LastActivityAt        time.Time      `json:"last_activity_at"`

	Program Program `json:"program" gorm:"foreignKey:ProgramID"`
}
