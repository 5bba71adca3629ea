package services

import (
	"time"
	"tradegate/models"
	"tradegate/models/education"

	"gorm.io/gorm"
)

// FailureReason identifies one unmet eligibility requirement
type FailureReason string

const (
	ReasonAgeUnknown              FailureReason = "AGE_UNKNOWN"
	ReasonAgeBelowMinimum         FailureReason = "AGE_BELOW_MINIMUM"
	ReasonLearningPathIncomplete  FailureReason = "LEARNING_PATH_INCOMPLETE"
	ReasonContentNotCompleted     FailureReason = "CONTENT_NOT_COMPLETED"
	ReasonScoreBelowMinimum       FailureReason = "SCORE_BELOW_MINIMUM"
	ReasonGuardianApprovalMissing FailureReason = "GUARDIAN_APPROVAL_MISSING"
	ReasonGuardianApprovalPending FailureReason = "GUARDIAN_APPROVAL_PENDING"
	ReasonGuardianApprovalDenied  FailureReason = "GUARDIAN_APPROVAL_DENIED"
)

// PathProgress summarizes required-item completion for a learning path
type PathProgress struct {
	LearningPathID    uint    `json:"learningPathId"`
	RequiredTotal     int     `json:"requiredTotal"`
	RequiredCompleted int     `json:"requiredCompleted"`
	Percent           float64 `json:"percent"`
}

// EligibilityResult aggregates every unmet requirement so callers can render
// a complete checklist rather than the first failure.
type EligibilityResult struct {
	Eligible     bool            `json:"eligible"`
	Reasons      []FailureReason `json:"reasons"`
	PathProgress *PathProgress   `json:"pathProgress,omitempty"`
}

// EvaluateEligibility computes whether a user currently satisfies a
// permission's requirements. Read-only over the current snapshot; all checks
// run, each independent, combined by AND. A permission with no requirements
// is eligible for any user.
func EvaluateEligibility(db *gorm.DB, user models.User, perm models.TradingPermission) EligibilityResult {
	now := time.Now()
	result := EligibilityResult{Reasons: []FailureReason{}}

	// Age check. Unknown birthdate is ineligible, never an error.
	if perm.MinAge != nil {
		age, known := user.AgeAt(now)
		if !known {
			result.Reasons = append(result.Reasons, ReasonAgeUnknown)
		} else if age < *perm.MinAge {
			result.Reasons = append(result.Reasons, ReasonAgeBelowMinimum)
		}
	}

	// Learning-path check: every required item must be completed. A failed
	// snapshot read counts as incomplete so the check fails closed.
	if perm.RequiredLearningPathID != nil {
		progress, err := PathProgressFor(db, user.ID, *perm.RequiredLearningPathID)
		result.PathProgress = &progress
		if err != nil || progress.RequiredCompleted < progress.RequiredTotal {
			result.Reasons = append(result.Reasons, ReasonLearningPathIncomplete)
		}
	}

	// Content+score check. The score floor only applies to quiz content;
	// other kinds just need completion.
	if perm.RequiredContentID != nil {
		var content education.EducationalContent
		contentKnown := db.Where("id = ? AND is_deleted = ?", *perm.RequiredContentID, false).
			First(&content).Error == nil

		var progress education.UserProgress
		err := db.Where("user_id = ? AND content_id = ?", user.ID, *perm.RequiredContentID).
			First(&progress).Error
		switch {
		case err != nil || !progress.Completed():
			result.Reasons = append(result.Reasons, ReasonContentNotCompleted)
		case perm.MinScore != nil && contentKnown && content.CompletionRequirement == education.RequirementQuiz:
			if progress.Score == nil || *progress.Score < *perm.MinScore {
				result.Reasons = append(result.Reasons, ReasonScoreBelowMinimum)
			}
		}
	}

	// Guardian approval check applies only to minors. Unknown birthdate is
	// treated as minor so the check fails closed.
	if perm.RequiresGuardianApproval && user.IsMinorAt(now) {
		var approval models.GuardianApproval
		err := db.Where("minor_id = ? AND permission_id = ?", user.ID, perm.ID).
			Order("created_at desc").
			First(&approval).Error
		switch {
		case err != nil:
			result.Reasons = append(result.Reasons, ReasonGuardianApprovalMissing)
		case approval.Status == models.ApprovalPending:
			result.Reasons = append(result.Reasons, ReasonGuardianApprovalPending)
		case approval.Status == models.ApprovalDenied:
			result.Reasons = append(result.Reasons, ReasonGuardianApprovalDenied)
		}
	}

	result.Eligible = len(result.Reasons) == 0
	return result
}

// PathProgressFor counts completed required items for a user in a path. A
// non-nil error means the snapshot could not be read; callers must treat the
// path as incomplete, never as empty.
func PathProgressFor(db *gorm.DB, userID, pathID uint) (PathProgress, error) {
	progress := PathProgress{LearningPathID: pathID}

	var items []education.LearningPathItem
	if err := db.Where("learning_path_id = ? AND required = ?", pathID, true).
		Find(&items).Error; err != nil {
		return progress, err
	}

	progress.RequiredTotal = len(items)
	if len(items) == 0 {
		progress.Percent = 100
		return progress, nil
	}

	contentIDs := make([]uint, len(items))
	for i, item := range items {
		contentIDs[i] = item.ContentID
	}

	var completed int64
	if err := db.Model(&education.UserProgress{}).
		Where("user_id = ? AND content_id IN ? AND completed_at IS NOT NULL", userID, contentIDs).
		Count(&completed).Error; err != nil {
		return progress, err
	}

	progress.RequiredCompleted = int(completed)
	progress.Percent = float64(completed) / float64(len(items)) * 100
	return progress, nil
}
