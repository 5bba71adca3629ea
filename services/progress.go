package services

import (
	"log"
	"time"
	"tradegate/models"
	"tradegate/models/education"

	"gorm.io/gorm"
)

// ProgressDelta carries one attempt's worth of progress from the
// content-consumption surface
type ProgressDelta struct {
	Completed        *bool `json:"completed"`
	Score            *int  `json:"score"`
	TimeSpentSeconds int   `json:"timeSpentSeconds"`
}

// UpdateProgress upserts the (user, content) progress row monotonically:
// attempts increment, score is replaced on re-attempt, CompletedAt is set
// once and never cleared. On the transition into completed it enqueues a
// re-evaluation signal for every permission that references the content
// directly or through a learning path, then kicks an immediate sweep; the
// cron sweep retries anything that slips through.
func UpdateProgress(db *gorm.DB, userID, contentID uint, delta ProgressDelta) (education.UserProgress, bool, error) {
	now := time.Now()
	var progress education.UserProgress
	completedNow := false

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND content_id = ?", userID, contentID).
			First(&progress).Error

		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			progress = education.UserProgress{
				UserID:    userID,
				ContentID: contentID,
				StartedAt: now,
			}
		}

		progress.Attempts++
		progress.LastAccessedAt = now
		progress.TimeSpentSeconds += delta.TimeSpentSeconds
		if delta.Score != nil {
			progress.Score = delta.Score
		}
		if delta.Completed != nil && *delta.Completed && progress.CompletedAt == nil {
			progress.CompletedAt = &now
			completedNow = true
		}

		if err := tx.Save(&progress).Error; err != nil {
			return err
		}

		if completedNow {
			// Signals commit with the progress row, so a crash after this
			// point cannot lose the completion event.
			if err := enqueueReevalSignals(tx, userID, contentID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Concurrent first attempts race on the (user_id, content_id) unique
		// index; the loser re-reads the winner's row and applies its delta
		// as a normal retry.
		if isDuplicateKey(err) {
			return UpdateProgress(db, userID, contentID, delta)
		}
		return progress, false, err
	}

	if completedNow {
		log.Printf("[PROGRESS] user=%d content=%d completed (attempt %d)", userID, contentID, progress.Attempts)
		go ProcessReevalSignals(db)
	}
	return progress, completedNow, nil
}

// permissionsReferencingContent finds every permission keyed to the content
// itself or to a learning path containing it
func permissionsReferencingContent(db *gorm.DB, contentID uint) ([]uint, error) {
	var pathIDs []uint
	if err := db.Model(&education.LearningPathItem{}).
		Where("content_id = ?", contentID).
		Pluck("learning_path_id", &pathIDs).Error; err != nil {
		return nil, err
	}

	query := db.Model(&models.TradingPermission{}).Where("is_deleted = ?", false)
	if len(pathIDs) > 0 {
		query = query.Where("required_content_id = ? OR required_learning_path_id IN ?", contentID, pathIDs)
	} else {
		query = query.Where("required_content_id = ?", contentID)
	}

	var permIDs []uint
	if err := query.Pluck("id", &permIDs).Error; err != nil {
		return nil, err
	}
	return permIDs, nil
}

// enqueueReevalSignals creates one durable signal per affected permission
func enqueueReevalSignals(tx *gorm.DB, userID, contentID uint) error {
	permIDs, err := permissionsReferencingContent(tx, contentID)
	if err != nil {
		return err
	}
	for _, permID := range permIDs {
		signal := models.ReevalSignal{UserID: userID, PermissionID: permID}
		if err := tx.Create(&signal).Error; err != nil {
			return err
		}
	}
	return nil
}

// ProcessReevalSignals drains unprocessed signals through the grant service.
// Safe to run concurrently and repeatedly: grants are idempotent, and a
// signal is only marked processed after the grant call returns.
func ProcessReevalSignals(db *gorm.DB) {
	var signals []models.ReevalSignal
	if err := db.Where("processed = ?", false).
		Order("created_at asc").
		Limit(200).
		Find(&signals).Error; err != nil {
		log.Printf("[REEVAL] failed to fetch signals: %v", err)
		return
	}

	for _, signal := range signals {
		result, err := GrantPermission(db, signal.UserID, signal.PermissionID)
		if err != nil {
			// Leave unprocessed; the next sweep retries.
			db.Model(&signal).Update("attempts", signal.Attempts+1)
			log.Printf("[REEVAL] grant attempt failed user=%d permission=%d: %v", signal.UserID, signal.PermissionID, err)
			continue
		}

		db.Model(&signal).Updates(map[string]interface{}{
			"processed": true,
			"attempts":  signal.Attempts + 1,
		})

		if result.Granted {
			log.Printf("[REEVAL] auto-granted user=%d permission=%d", signal.UserID, signal.PermissionID)
		}
	}
}

// PrerequisitesMet reports whether every prerequisite of the content is
// completed for the user. The content-consumption surface uses this to keep
// locked items locked; the evaluator itself never reads edges.
func PrerequisitesMet(db *gorm.DB, userID, contentID uint) (bool, []uint, error) {
	var requiredIDs []uint
	if err := db.Model(&education.ContentPrerequisite{}).
		Where("content_id = ?", contentID).
		Pluck("requires_id", &requiredIDs).Error; err != nil {
		return false, nil, err
	}
	if len(requiredIDs) == 0 {
		return true, nil, nil
	}

	var completedIDs []uint
	if err := db.Model(&education.UserProgress{}).
		Where("user_id = ? AND content_id IN ? AND completed_at IS NOT NULL", userID, requiredIDs).
		Pluck("content_id", &completedIDs).Error; err != nil {
		return false, nil, err
	}

	completed := make(map[uint]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	var missing []uint
	for _, id := range requiredIDs {
		if !completed[id] {
			missing = append(missing, id)
		}
	}
	return len(missing) == 0, missing, nil
}
