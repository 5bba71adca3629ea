package services

import (
	"testing"
	"time"
	"tradegate/models"
	"tradegate/models/education"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProgressMonotonic(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "student@example.com", intPtr(20))
	quiz := createContent(t, db, "basics-quiz", education.RequirementQuiz)

	// First attempt: started, not completed
	progress, completedNow, err := UpdateProgress(db, user.ID, quiz.ID, ProgressDelta{
		Score:            intPtr(40),
		TimeSpentSeconds: 120,
	})
	require.NoError(t, err)
	assert.False(t, completedNow)
	assert.Equal(t, 1, progress.Attempts)
	assert.Nil(t, progress.CompletedAt)

	// Second attempt completes
	completed := true
	progress, completedNow, err = UpdateProgress(db, user.ID, quiz.ID, ProgressDelta{
		Completed:        &completed,
		Score:            intPtr(85),
		TimeSpentSeconds: 90,
	})
	require.NoError(t, err)
	assert.True(t, completedNow)
	assert.Equal(t, 2, progress.Attempts)
	assert.Equal(t, 210, progress.TimeSpentSeconds)
	require.NotNil(t, progress.CompletedAt)
	firstCompletion := *progress.CompletedAt

	// A later retry increments attempts but cannot clear or move CompletedAt
	progress, completedNow, err = UpdateProgress(db, user.ID, quiz.ID, ProgressDelta{
		Completed: &completed,
		Score:     intPtr(95),
	})
	require.NoError(t, err)
	assert.False(t, completedNow)
	assert.Equal(t, 3, progress.Attempts)
	assert.Equal(t, intPtr(95), progress.Score)
	assert.Equal(t, firstCompletion.Unix(), progress.CompletedAt.Unix())

	var count int64
	db.Model(&education.UserProgress{}).
		Where("user_id = ? AND content_id = ?", user.ID, quiz.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCompletionEnqueuesReevalSignals(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "signal@example.com", intPtr(20))
	quiz := createContent(t, db, "path-quiz", education.RequirementQuiz)
	path := createPath(t, db, "Signal Path", pathItem{contentID: quiz.ID, required: true})

	direct := createPermission(t, db, models.TradingPermission{
		TypeKey:           "quiz_keyed",
		RequiredContentID: &quiz.ID,
	})
	viaPath := createPermission(t, db, models.TradingPermission{
		TypeKey:                "path_keyed",
		RequiredLearningPathID: &path.ID,
	})
	unrelated := createPermission(t, db, models.TradingPermission{TypeKey: "unrelated"})

	completeContent(t, db, user.ID, quiz.ID, intPtr(100))

	var signals []models.ReevalSignal
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&signals).Error)

	permIDs := make(map[uint]bool)
	for _, signal := range signals {
		permIDs[signal.PermissionID] = true
	}
	assert.True(t, permIDs[direct.ID])
	assert.True(t, permIDs[viaPath.ID])
	assert.False(t, permIDs[unrelated.ID])
}

func TestProcessReevalSignalsAutoGrants(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "autograntee@example.com", intPtr(20))
	quiz := createContent(t, db, "final-quiz", education.RequirementQuiz)
	perm := createPermission(t, db, models.TradingPermission{
		TypeKey:           "earned",
		RequiredContentID: &quiz.ID,
		MinScore:          intPtr(80),
	})

	completeContent(t, db, user.ID, quiz.ID, intPtr(88))
	ProcessReevalSignals(db)

	// The user never called grant; completion alone unlocked the permission
	assert.True(t, HasPermission(db, user.ID, "earned"))

	var signal models.ReevalSignal
	require.NoError(t, db.Where("user_id = ? AND permission_id = ?", user.ID, perm.ID).First(&signal).Error)
	assert.True(t, signal.Processed)

	// Redelivery of an already-processed completion is absorbed by grant
	// idempotency
	db.Model(&signal).Update("processed", false)
	ProcessReevalSignals(db)

	var count int64
	db.Model(&models.UserPermission{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPrerequisitesMet(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "sequence@example.com", intPtr(20))
	intro := createContent(t, db, "intro", education.RequirementNone)
	advanced := createContent(t, db, "advanced", education.RequirementNone)

	_, err := AddPrerequisite(db, advanced.ID, intro.ID)
	require.NoError(t, err)

	met, missing, err := PrerequisitesMet(db, user.ID, advanced.ID)
	require.NoError(t, err)
	assert.False(t, met)
	assert.Equal(t, []uint{intro.ID}, missing)

	completeContent(t, db, user.ID, intro.ID, nil)

	met, missing, err = PrerequisitesMet(db, user.ID, advanced.ID)
	require.NoError(t, err)
	assert.True(t, met)
	assert.Empty(t, missing)
}

// Full pipeline: quiz completion, guardian approval, then grant
func TestTradeStocksEndToEnd(t *testing.T) {
	db := setupTestDB(t)

	guardian := createUser(t, db, "guardian@example.com", intPtr(44))
	minor := createUser(t, db, "sixteen@example.com", intPtr(16))
	minor.GuardianID = &guardian.ID
	require.NoError(t, db.Save(&minor).Error)

	quiz := createContent(t, db, "beginner-quiz", education.RequirementQuiz)
	path := createPath(t, db, "Beginner Trading Path", pathItem{contentID: quiz.ID, required: true})

	perm := createPermission(t, db, models.TradingPermission{
		TypeKey:                  models.PermissionTradeStocks,
		Name:                     "Trade Stocks",
		MinAge:                   intPtr(13),
		RequiresGuardianApproval: true,
		RequiredLearningPathID:   &path.ID,
		RequiredContentID:        &quiz.ID,
		MinScore:                 intPtr(80),
	})

	// Quiz passed at 85, but guardian approval still missing
	completeContent(t, db, minor.ID, quiz.ID, intPtr(85))
	ProcessReevalSignals(db)
	assert.False(t, HasPermission(db, minor.ID, models.PermissionTradeStocks))

	result := EvaluateEligibility(db, minor, perm)
	assert.False(t, result.Eligible)
	assert.Equal(t, []FailureReason{ReasonGuardianApprovalMissing}, result.Reasons)

	// Guardian approves
	approvedAt := time.Now()
	approval := models.GuardianApproval{
		MinorID:      minor.ID,
		GuardianID:   guardian.ID,
		PermissionID: perm.ID,
		Status:       models.ApprovalApproved,
		DecidedAt:    &approvedAt,
	}
	require.NoError(t, db.Create(&approval).Error)

	grant, err := GrantPermission(db, minor.ID, perm.ID)
	require.NoError(t, err)
	// A pending re-evaluation signal may have beaten this explicit call;
	// either way exactly one row exists.
	assert.True(t, grant.Granted || grant.AlreadyHad)
	assert.True(t, HasPermission(db, minor.ID, models.PermissionTradeStocks))

	var row models.UserPermission
	require.NoError(t, db.Where("user_id = ? AND permission_id = ?", minor.ID, perm.ID).First(&row).Error)
	assert.False(t, row.GrantedAt.Before(approvedAt))
}
