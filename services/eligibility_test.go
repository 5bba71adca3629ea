package services

import (
	"testing"
	"time"
	"tradegate/models"
	"tradegate/models/education"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateEligibilityNoRequirements(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "open@example.com", nil)
	perm := createPermission(t, db, models.TradingPermission{
		TypeKey: "view_charts",
		Name:    "View Charts",
	})

	result := EvaluateEligibility(db, user, perm)
	assert.True(t, result.Eligible)
	assert.Empty(t, result.Reasons)
}

func TestEvaluateEligibilityUnknownBirthdate(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "ageless@example.com", nil)
	perm := createPermission(t, db, models.TradingPermission{
		TypeKey: "trade_options",
		MinAge:  intPtr(21),
	})

	result := EvaluateEligibility(db, user, perm)
	assert.False(t, result.Eligible)
	assert.Contains(t, result.Reasons, ReasonAgeUnknown)
}

func TestEvaluateEligibilityBelowMinAge(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "young@example.com", intPtr(15))
	perm := createPermission(t, db, models.TradingPermission{
		TypeKey: "trade_options",
		MinAge:  intPtr(21),
	})

	result := EvaluateEligibility(db, user, perm)
	assert.False(t, result.Eligible)
	assert.Contains(t, result.Reasons, ReasonAgeBelowMinimum)
}

func TestEvaluateEligibilityLearningPath(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "learner@example.com", intPtr(25))
	required := createContent(t, db, "intro-quiz", education.RequirementQuiz)
	optional := createContent(t, db, "bonus-video", education.RequirementNone)
	path := createPath(t, db, "Beginner Trading Path",
		pathItem{contentID: required.ID, required: true},
		pathItem{contentID: optional.ID, required: false},
	)

	perm := createPermission(t, db, models.TradingPermission{
		TypeKey:                "trade_stocks",
		RequiredLearningPathID: &path.ID,
	})

	// Nothing completed yet
	result := EvaluateEligibility(db, user, perm)
	assert.False(t, result.Eligible)
	assert.Contains(t, result.Reasons, ReasonLearningPathIncomplete)
	require.NotNil(t, result.PathProgress)
	assert.Equal(t, 1, result.PathProgress.RequiredTotal)
	assert.Equal(t, 0, result.PathProgress.RequiredCompleted)

	// Completing only the required item finishes the path; the optional
	// item never counts
	completeContent(t, db, user.ID, required.ID, intPtr(90))

	result = EvaluateEligibility(db, user, perm)
	assert.True(t, result.Eligible)
	assert.Equal(t, float64(100), result.PathProgress.Percent)
}

func TestEvaluateEligibilityPathFetchFailureFailsClosed(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "unlucky@example.com", intPtr(25))
	quiz := createContent(t, db, "required-quiz", education.RequirementQuiz)
	path := createPath(t, db, "Fragile Path", pathItem{contentID: quiz.ID, required: true})

	perm := createPermission(t, db, models.TradingPermission{
		TypeKey:                "trade_stocks",
		RequiredLearningPathID: &path.ID,
	})

	result := EvaluateEligibility(db, user, perm)
	assert.False(t, result.Eligible)

	// A broken snapshot read must count as incomplete, never as an empty
	// path that passes by default
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	result = EvaluateEligibility(db, user, perm)
	assert.False(t, result.Eligible)
	assert.Contains(t, result.Reasons, ReasonLearningPathIncomplete)
	require.NotNil(t, result.PathProgress)
	assert.NotEqual(t, float64(100), result.PathProgress.Percent)
}

func TestEvaluateEligibilityQuizScore(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "quiztaker@example.com", intPtr(30))
	quiz := createContent(t, db, "risk-quiz", education.RequirementQuiz)

	perm := createPermission(t, db, models.TradingPermission{
		TypeKey:           "trade_margin",
		RequiredContentID: &quiz.ID,
		MinScore:          intPtr(80),
	})

	// Not attempted
	result := EvaluateEligibility(db, user, perm)
	assert.Contains(t, result.Reasons, ReasonContentNotCompleted)

	// Completed but under the floor
	completeContent(t, db, user.ID, quiz.ID, intPtr(70))
	result = EvaluateEligibility(db, user, perm)
	assert.False(t, result.Eligible)
	assert.Contains(t, result.Reasons, ReasonScoreBelowMinimum)

	// Re-attempt over the floor
	completeContent(t, db, user.ID, quiz.ID, intPtr(85))
	result = EvaluateEligibility(db, user, perm)
	assert.True(t, result.Eligible)
}

func TestEvaluateEligibilityScoreIgnoredForNonQuizContent(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "watcher@example.com", intPtr(30))
	video := createContent(t, db, "orientation-video", education.RequirementTime)

	perm := createPermission(t, db, models.TradingPermission{
		TypeKey:           "trade_etfs",
		RequiredContentID: &video.ID,
		MinScore:          intPtr(80),
	})

	// Non-quiz content only needs completion; the score floor does not apply
	completeContent(t, db, user.ID, video.ID, nil)
	result := EvaluateEligibility(db, user, perm)
	assert.True(t, result.Eligible)
}

func TestEvaluateEligibilityGuardianApproval(t *testing.T) {
	db := setupTestDB(t)

	guardian := createUser(t, db, "parent@example.com", intPtr(45))
	minor := createUser(t, db, "teen@example.com", intPtr(16))
	minor.GuardianID = &guardian.ID
	require.NoError(t, db.Save(&minor).Error)

	perm := createPermission(t, db, models.TradingPermission{
		TypeKey:                  "trade_stocks",
		MinAge:                   intPtr(13),
		RequiresGuardianApproval: true,
	})

	// No approval on file
	result := EvaluateEligibility(db, minor, perm)
	assert.False(t, result.Eligible)
	assert.Contains(t, result.Reasons, ReasonGuardianApprovalMissing)

	// Pending is still blocked, but distinctly
	approval := models.GuardianApproval{
		MinorID:      minor.ID,
		GuardianID:   guardian.ID,
		PermissionID: perm.ID,
		Status:       models.ApprovalPending,
	}
	require.NoError(t, db.Create(&approval).Error)

	result = EvaluateEligibility(db, minor, perm)
	assert.Contains(t, result.Reasons, ReasonGuardianApprovalPending)

	// Approved unlocks on the next evaluation
	now := time.Now()
	approval.Status = models.ApprovalApproved
	approval.DecidedAt = &now
	require.NoError(t, db.Save(&approval).Error)

	result = EvaluateEligibility(db, minor, perm)
	assert.True(t, result.Eligible)
}

func TestEvaluateEligibilityGuardianNotRequiredForAdults(t *testing.T) {
	db := setupTestDB(t)

	adult := createUser(t, db, "adult@example.com", intPtr(34))
	perm := createPermission(t, db, models.TradingPermission{
		TypeKey:                  "trade_stocks",
		RequiresGuardianApproval: true,
	})

	result := EvaluateEligibility(db, adult, perm)
	assert.True(t, result.Eligible)
}

func TestEvaluateEligibilityAggregatesAllReasons(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "multi@example.com", nil)
	quiz := createContent(t, db, "margin-quiz", education.RequirementQuiz)
	path := createPath(t, db, "Advanced Path", pathItem{contentID: quiz.ID, required: true})

	perm := createPermission(t, db, models.TradingPermission{
		TypeKey:                  "trade_futures",
		MinAge:                   intPtr(18),
		RequiresGuardianApproval: true,
		RequiredLearningPathID:   &path.ID,
		RequiredContentID:        &quiz.ID,
		MinScore:                 intPtr(80),
	})

	result := EvaluateEligibility(db, user, perm)
	assert.False(t, result.Eligible)
	// Every failing check reports, not just the first
	assert.Contains(t, result.Reasons, ReasonAgeUnknown)
	assert.Contains(t, result.Reasons, ReasonLearningPathIncomplete)
	assert.Contains(t, result.Reasons, ReasonContentNotCompleted)
	assert.Contains(t, result.Reasons, ReasonGuardianApprovalMissing)
}
