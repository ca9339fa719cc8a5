package utils

import (
	"encoding/json"

	problemModels "mathcms/models/problem"
	programModels "mathcms/models/program"

	"gorm.io/gorm"
)

// AssignProblemPrograms replaces a problem's program assignment with the
// subset of the requested IDs that resolve to existing programs, and returns
// the stored list.
func AssignProblemPrograms(db *gorm.DB, prob *problemModels.Problem, programIDs []string) ([]string, error) {
	assigned := []string{}

	if len(programIDs) > 0 {
		var existing []programModels.Program
		if err := db.Where("id IN ?", programIDs).Find(&existing).Error; err != nil {
			return nil, err
		}
		valid := make(map[string]bool, len(existing))
		for _, prog := range existing {
			valid[prog.ID] = true
		}
		for _, id := range programIDs {
			if valid[id] {
				assigned = append(assigned, id)
			}
		}
	}

	encoded, err := json.Marshal(assigned)
	if err != nil {
		return nil, err
	}

	prob.AssignedPrograms = encoded
	if err := db.Model(prob).Update("assigned_programs", encoded).Error; err != nil {
		return nil, err
	}

	return assigned, nil
}

// ProblemAssignedTo reports whether the problem's assignment list contains the
// given program ID.
func ProblemAssignedTo(prob *problemModels.Problem, programID string) bool {
	if len(prob.AssignedPrograms) == 0 {
		return false
	}
	var assigned []string
	if err := json.Unmarshal(prob.AssignedPrograms, &assigned); err != nil {
		return false
	}
	for _, id := range assigned {
		if id == programID {
			return true
		}
	}
	return false
}
