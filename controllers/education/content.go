package educationController

import (
	"time"
	"tradegate/database"
	"tradegate/middleware"
	"tradegate/models"
	"tradegate/models/education"
	"tradegate/services"

	"github.com/gofiber/fiber/v2"
)

// ListContent returns published content with the user's lock state, so the
// consumption surface can render prerequisite locks without extra calls
func ListContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var contents []education.EducationalContent
	if err := db.Where("is_deleted = ? AND is_published = ?", false, true).
		Order("level asc, created_at asc").
		Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content!", nil)
	}

	type contentView struct {
		education.EducationalContent
		Locked            bool   `json:"locked"`
		MissingContentIDs []uint `json:"missingContentIds,omitempty"`
	}

	views := make([]contentView, len(contents))
	for i, content := range contents {
		met, missing, err := services.PrerequisitesMet(db, userID, content.ID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check prerequisites!", nil)
		}
		views[i] = contentView{EducationalContent: content, Locked: !met, MissingContentIDs: missing}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", views)
}

// ListLearningPaths returns published paths visible to the user's age, with
// the user's required-item completion per path
func ListLearningPaths(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var paths []education.LearningPath
	if err := db.Where("is_deleted = ? AND is_published = ?", false, true).
		Order("created_at asc").
		Find(&paths).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch learning paths!", nil)
	}

	now := time.Now()
	age, ageKnown := user.AgeAt(now)

	type pathView struct {
		education.LearningPath
		Progress services.PathProgress `json:"progress"`
	}

	views := make([]pathView, 0, len(paths))
	for _, path := range paths {
		// Age-restricted paths are hidden from younger (or unknown-age) users
		if path.MinAge != nil && (!ageKnown || age < *path.MinAge) {
			continue
		}
		progress, err := services.PathProgressFor(db, userID, path.ID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch learning paths!", nil)
		}
		views = append(views, pathView{
			LearningPath: path,
			Progress:     progress,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learning paths fetched successfully!", views)
}

// GetPathItems returns a path's ordered items with per-item completion
func GetPathItems(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pathID := c.Locals("pathID").(int)

	db := database.Database.Db

	var path education.LearningPath
	if err := db.Where("id = ? AND is_deleted = ?", pathID, false).First(&path).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Learning path not found!", nil)
	}

	var items []education.LearningPathItem
	if err := db.Where("learning_path_id = ?", pathID).
		Preload("Content").
		Order("order_index asc").
		Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch path items!", nil)
	}

	contentIDs := make([]uint, len(items))
	for i, item := range items {
		contentIDs[i] = item.ContentID
	}

	var completedIDs []uint
	if len(contentIDs) > 0 {
		db.Model(&education.UserProgress{}).
			Where("user_id = ? AND content_id IN ? AND completed_at IS NOT NULL", userID, contentIDs).
			Pluck("content_id", &completedIDs)
	}
	completed := make(map[uint]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	type itemView struct {
		education.LearningPathItem
		Completed bool `json:"completed"`
	}

	views := make([]itemView, len(items))
	for i, item := range items {
		views[i] = itemView{LearningPathItem: item, Completed: completed[item.ContentID]}
	}

	pathProgress, err := services.PathProgressFor(db, userID, path.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch path progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Path items fetched successfully!", fiber.Map{
		"path":     path,
		"items":    views,
		"progress": pathProgress,
	})
}
