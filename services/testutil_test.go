package services

import (
	"fmt"
	"testing"
	"time"
	"tradegate/database"
	"tradegate/models"
	"tradegate/models/education"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the engine schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(database.EngineModels()...))
	return db
}

// birthdateYearsAgo builds a birthdate for a user of the given age
func birthdateYearsAgo(years int) *time.Time {
	b := time.Now().AddDate(-years, 0, -1)
	return &b
}

func createUser(t *testing.T, db *gorm.DB, email string, age *int) models.User {
	t.Helper()

	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashed",
	}
	if age != nil {
		user.Birthdate = birthdateYearsAgo(*age)
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createPermission(t *testing.T, db *gorm.DB, perm models.TradingPermission) models.TradingPermission {
	t.Helper()
	require.NoError(t, db.Create(&perm).Error)
	return perm
}

func createContent(t *testing.T, db *gorm.DB, slug, requirement string) education.EducationalContent {
	t.Helper()

	content := education.EducationalContent{
		Slug:                  slug,
		Title:                 slug,
		ContentType:           education.TypeQuiz,
		CompletionRequirement: requirement,
		IsPublished:           true,
	}
	require.NoError(t, db.Create(&content).Error)
	return content
}

func createPath(t *testing.T, db *gorm.DB, title string, items ...pathItem) education.LearningPath {
	t.Helper()

	path := education.LearningPath{Title: title, IsPublished: true}
	require.NoError(t, db.Create(&path).Error)

	for i, item := range items {
		row := education.LearningPathItem{
			LearningPathID: path.ID,
			ContentID:      item.contentID,
			OrderIndex:     i + 1,
			Required:       item.required,
		}
		require.NoError(t, db.Create(&row).Error)
	}
	return path
}

type pathItem struct {
	contentID uint
	required  bool
}

func completeContent(t *testing.T, db *gorm.DB, userID, contentID uint, score *int) {
	t.Helper()

	completed := true
	_, _, err := UpdateProgress(db, userID, contentID, ProgressDelta{
		Completed: &completed,
		Score:     score,
	})
	require.NoError(t, err)
}

func intPtr(v int) *int { return &v }
