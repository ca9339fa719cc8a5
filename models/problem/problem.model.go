package problem

import (
	"time"

	"gorm.io/datatypes"
)

// Lifecycle statuses for a problem.
const (
	StatusDraft     = "draft"
	StatusReview    = "review"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Problem types.
const (
	TypeMultipleChoice = "multiple_choice"
	TypeFreeResponse   = "free_response"
	TypeTrueFalse      = "true_false"
	TypeFillBlank      = "fill_blank"
)

// Category-link states for the two-phase best-effort classification write.
const (
	LinkComplete = "complete"
	LinkPending  = "pending"
)

// Problem is a math problem authored through the admin CMS. It exclusively
// owns its options and hints; categories are shared references.
type Problem struct {
	ID                   string `json:"id" gorm:"primaryKey"`
	Title                string `json:"title"`
	Content              string `json:"content" gorm:"type:text;not null"`
	CorrectAnswer        string `json:"correct_answer" gorm:"not null"`
	SolutionExplanation  string `json:"solution_explanation" gorm:"type:text"`
	DifficultyLevel      int    `json:"difficulty_level" gorm:"not null"` // 1-5
	ProblemType          string `json:"problem_type" gorm:"not null"`
	EstimatedTimeMinutes int    `json:"estimated_time_minutes" gorm:"default:0"`

	Status   string `json:"status" gorm:"default:'draft';index"`
	IsPublic bool   `json:"is_public" gorm:"default:false"`

	// Aggregate counters, incremented atomically alongside each attempt insert.
	TotalAttempts   int `json:"total_attempts" gorm:"default:0"`
	CorrectAttempts int `json:"correct_attempts" gorm:"default:0"`

	// LinkStatus records whether the requested category links were all written.
	// PendingCategories holds the requested IDs until the reconciler repairs them.
	LinkStatus        string         `json:"link_status" gorm:"default:'complete'"`
	PendingCategories datatypes.JSON `json:"pending_categories"`

	// Curriculum assignment, independent of category links.
	AssignedPrograms datatypes.JSON `json:"assigned_programs"`

	CreatedBy uint      `json:"created_by" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Options       []Option       `json:"options" gorm:"foreignKey:ProblemID"`
	Hints         []Hint         `json:"hints" gorm:"foreignKey:ProblemID"`
	CategoryLinks []CategoryLink `json:"category_links" gorm:"foreignKey:ProblemID"`
}

// Servable reports whether the problem may be shown to students. The student
// read path uses only this check; is_public is written solely by the status
// transition, so the pairing cannot drift.
func (p *Problem) Servable() bool {
	return p.Status == StatusPublished && p.IsPublic
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusReview, StatusPublished, StatusArchived:
		return true
	}
	return false
}
