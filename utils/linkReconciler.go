package utils

import (
	"encoding/json"
	"log"

	"mathcms/database"
	problemModels "mathcms/models/problem"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// LinkCategories inserts category links for the requested IDs and returns the
// IDs that did not resolve to an existing category, so callers can record them
// as pending rather than lose them. The first valid ID becomes the primary link
// unless the problem already has one. Safe to call repeatedly: links that
// already exist are skipped.
func LinkCategories(db *gorm.DB, problemID string, categoryIDs []uint) ([]uint, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	var existing []problemModels.Category
	if err := db.Where("id IN ?", categoryIDs).Find(&existing).Error; err != nil {
		return nil, err
	}
	validIDs := make(map[uint]bool, len(existing))
	for _, cat := range existing {
		validIDs[cat.ID] = true
	}

	var current []problemModels.CategoryLink
	if err := db.Where("problem_id = ?", problemID).Find(&current).Error; err != nil {
		return nil, err
	}
	linked := make(map[uint]bool, len(current))
	hasPrimary := false
	for _, link := range current {
		linked[link.CategoryID] = true
		if link.IsPrimary {
			hasPrimary = true
		}
	}

	var unresolved []uint
	var links []problemModels.CategoryLink
	for _, id := range categoryIDs {
		if !validIDs[id] {
			unresolved = append(unresolved, id)
			continue
		}
		if linked[id] {
			continue
		}
		links = append(links, problemModels.CategoryLink{
			ProblemID:  problemID,
			CategoryID: id,
			IsPrimary:  !hasPrimary && len(links) == 0, // first valid requested ID is primary
		})
	}
	if len(links) == 0 {
		return unresolved, nil
	}

	return unresolved, db.Create(&links).Error
}

// MarkLinksPending records the requested category IDs on the problem row so
// the reconciler can repair them later. Classification metadata must never
// fail the primary write, but its absence must not be silent either.
func MarkLinksPending(db *gorm.DB, problemID string, categoryIDs []uint) {
	pending, err := json.Marshal(categoryIDs)
	if err != nil {
		log.Printf("Error encoding pending categories for problem %s: %v", problemID, err)
		return
	}

	if err := db.Model(&problemModels.Problem{}).Where("id = ?", problemID).
		Updates(map[string]interface{}{
			"link_status":        problemModels.LinkPending,
			"pending_categories": pending,
		}).Error; err != nil {
		log.Printf("Error marking category links pending for problem %s: %v", problemID, err)
	}
}

// ReconcilePendingCategoryLinks retries category linking for every problem
// with pending links. Idempotent: already-written links are skipped and a
// problem is marked complete only once every requested link exists; IDs that
// still do not resolve keep the problem pending for the next pass.
func ReconcilePendingCategoryLinks() {
	db := database.Database.Db

	var problems []problemModels.Problem
	if err := db.Where("link_status = ?", problemModels.LinkPending).Find(&problems).Error; err != nil {
		log.Printf("[LINK-RECONCILER] Error fetching pending problems: %v", err)
		return
	}
	if len(problems) == 0 {
		return
	}

	log.Printf("[LINK-RECONCILER] Found %d problems with pending category links", len(problems))

	for _, p := range problems {
		var categoryIDs []uint
		if len(p.PendingCategories) > 0 {
			if err := json.Unmarshal(p.PendingCategories, &categoryIDs); err != nil {
				log.Printf("[LINK-RECONCILER] Bad pending list on problem %s: %v", p.ID, err)
				continue
			}
		}

		unresolved, err := LinkCategories(db, p.ID, categoryIDs)
		if err != nil {
			log.Printf("[LINK-RECONCILER] Error linking problem %s: %v", p.ID, err)
			continue // retried on the next pass
		}
		if len(unresolved) > 0 {
			log.Printf("[LINK-RECONCILER] Problem %s still has %d unresolved categories", p.ID, len(unresolved))
			// Shrink the pending list to what is still missing
			MarkLinksPending(db, p.ID, unresolved)
			continue
		}

		if err := db.Model(&problemModels.Problem{}).Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"link_status":        problemModels.LinkComplete,
				"pending_categories": nil,
			}).Error; err != nil {
			log.Printf("[LINK-RECONCILER] Error marking problem %s complete: %v", p.ID, err)
		}
	}
}

// InitializeLinkReconciler runs one reconciliation pass and schedules an
// hourly repeat.
func InitializeLinkReconciler() {
	log.Println("[LINK-RECONCILER] Initializing category link reconciler...")

	ReconcilePendingCategoryLinks()

	c := cron.New()
	c.AddFunc("0 * * * *", ReconcilePendingCategoryLinks)
	c.Start()

	log.Println("[LINK-RECONCILER] Reconciler started - runs hourly")
}
