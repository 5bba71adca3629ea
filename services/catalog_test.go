package services

import (
	"testing"
	"tradegate/models"
	"tradegate/models/education"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTradingPermissionValidation(t *testing.T) {
	db := setupTestDB(t)

	err := CreateTradingPermission(db, &models.TradingPermission{TypeKey: "   "})
	assert.Error(t, err)

	// A score floor without content to score is meaningless
	err = CreateTradingPermission(db, &models.TradingPermission{
		TypeKey:  "trade_margin",
		MinScore: intPtr(80),
	})
	assert.Error(t, err)

	// Dangling references are rejected at write time
	missing := uint(4242)
	err = CreateTradingPermission(db, &models.TradingPermission{
		TypeKey:           "trade_margin",
		RequiredContentID: &missing,
	})
	assert.Error(t, err)

	quiz := createContent(t, db, "margin-quiz", education.RequirementQuiz)
	err = CreateTradingPermission(db, &models.TradingPermission{
		TypeKey:           "trade_margin",
		RequiredContentID: &quiz.ID,
		MinScore:          intPtr(80),
	})
	require.NoError(t, err)
}

func TestAddPrerequisiteRejectsSelfEdge(t *testing.T) {
	db := setupTestDB(t)

	content := createContent(t, db, "solo", education.RequirementNone)
	_, err := AddPrerequisite(db, content.ID, content.ID)
	assert.ErrorIs(t, err, ErrSelfPrerequisite)
}

func TestAddPrerequisiteRejectsCycles(t *testing.T) {
	db := setupTestDB(t)

	a := createContent(t, db, "basics", education.RequirementNone)
	b := createContent(t, db, "intermediate", education.RequirementNone)
	c := createContent(t, db, "advanced", education.RequirementNone)

	_, err := AddPrerequisite(db, b.ID, a.ID)
	require.NoError(t, err)
	_, err = AddPrerequisite(db, c.ID, b.ID)
	require.NoError(t, err)

	// Direct back-edge
	_, err = AddPrerequisite(db, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrPrerequisiteCycle)

	// Transitive back-edge through b
	_, err = AddPrerequisite(db, a.ID, c.ID)
	assert.ErrorIs(t, err, ErrPrerequisiteCycle)

	// The rejected edges left nothing behind
	var count int64
	db.Model(&education.ContentPrerequisite{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestAddPrerequisiteUnknownContent(t *testing.T) {
	db := setupTestDB(t)

	content := createContent(t, db, "known", education.RequirementNone)
	_, err := AddPrerequisite(db, content.ID, 9999)
	assert.Error(t, err)
}

func TestAddLearningPathItemAutoOrder(t *testing.T) {
	db := setupTestDB(t)

	path := education.LearningPath{Title: "Options Path", IsPublished: true}
	require.NoError(t, CreateLearningPath(db, &path))

	first := createContent(t, db, "options-intro", education.RequirementNone)
	second := createContent(t, db, "options-quiz", education.RequirementQuiz)

	itemA := education.LearningPathItem{LearningPathID: path.ID, ContentID: first.ID, Required: true}
	require.NoError(t, AddLearningPathItem(db, &itemA))
	assert.Equal(t, 1, itemA.OrderIndex)

	itemB := education.LearningPathItem{LearningPathID: path.ID, ContentID: second.ID, Required: true}
	require.NoError(t, AddLearningPathItem(db, &itemB))
	assert.Equal(t, 2, itemB.OrderIndex)
}

func TestCreateLearningPathValidation(t *testing.T) {
	db := setupTestDB(t)

	err := CreateLearningPath(db, &education.LearningPath{Title: "  "})
	assert.Error(t, err)

	negative := -1
	err = CreateLearningPath(db, &education.LearningPath{Title: "Kids Path", MinAge: &negative})
	assert.Error(t, err)
}
