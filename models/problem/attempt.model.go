package problem

import (
	"time"

	"gorm.io/datatypes"
)

// Assignment contexts for an attempt.
const (
	ContextPractice = "practice"
	ContextQuiz     = "quiz"
	ContextHomework = "homework"
	ContextExam     = "exam"
)

// Attempt is an append-only record of a student's answer submission. Rows are
// never updated or deleted; they are the source of truth for analytics. The
// unique ordinal index makes concurrent submissions collide instead of
// silently sharing an attempt number.
type Attempt struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	UserID            uint           `json:"user_id" gorm:"index;not null;uniqueIndex:idx_attempt_ordinal"`
	ProblemID         string         `json:"problem_id" gorm:"index;not null;uniqueIndex:idx_attempt_ordinal"`
	SubmittedAnswer   string         `json:"submitted_answer"`
	IsCorrect         bool           `json:"is_correct" gorm:"default:false"`
	AttemptNumber     int            `json:"attempt_number" gorm:"default:1;uniqueIndex:idx_attempt_ordinal"` // ordinal per user+problem
	TimeSpentSeconds  int            `json:"time_spent_seconds" gorm:"default:0"`
	HintsUsed         datatypes.JSON `json:"hints_used"`
	ProgramID         string         `json:"program_id" gorm:"index"`
	ModuleID          string         `json:"module_id"`
	AssignmentContext string         `json:"assignment_context" gorm:"default:'practice'"`
	CreatedAt         time.Time      `json:"created_at"`
}
