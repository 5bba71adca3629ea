package services

import (
	"errors"
	"fmt"
	"strings"
	"tradegate/models"
	"tradegate/models/education"

	"gorm.io/gorm"
)

// Authoring validation errors, surfaced at write time
var (
	ErrPrerequisiteCycle = errors.New("prerequisite edge would create a cycle")
	ErrSelfPrerequisite  = errors.New("content cannot be its own prerequisite")
)

// CreateTradingPermission validates and stores a permission definition
func CreateTradingPermission(db *gorm.DB, perm *models.TradingPermission) error {
	perm.TypeKey = strings.TrimSpace(perm.TypeKey)
	if perm.TypeKey == "" {
		return errors.New("type key is required")
	}
	if perm.MinScore != nil && perm.RequiredContentID == nil {
		return errors.New("min score requires a required content")
	}
	if perm.MinAge != nil && *perm.MinAge < 0 {
		return errors.New("min age must not be negative")
	}
	if perm.RequiredLearningPathID != nil {
		var path education.LearningPath
		if err := db.Where("id = ? AND is_deleted = ?", *perm.RequiredLearningPathID, false).First(&path).Error; err != nil {
			return fmt.Errorf("required learning path %d not found", *perm.RequiredLearningPathID)
		}
	}
	if perm.RequiredContentID != nil {
		var content education.EducationalContent
		if err := db.Where("id = ? AND is_deleted = ?", *perm.RequiredContentID, false).First(&content).Error; err != nil {
			return fmt.Errorf("required content %d not found", *perm.RequiredContentID)
		}
	}
	return db.Create(perm).Error
}

// AddPrerequisite inserts an edge "contentID requires requiresID first",
// rejecting anything that would break the DAG before it can affect any
// evaluation.
func AddPrerequisite(db *gorm.DB, contentID, requiresID uint) (*education.ContentPrerequisite, error) {
	if contentID == requiresID {
		return nil, ErrSelfPrerequisite
	}

	for _, id := range []uint{contentID, requiresID} {
		var content education.EducationalContent
		if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&content).Error; err != nil {
			return nil, fmt.Errorf("content %d not found", id)
		}
	}

	cyclic, err := wouldCreateCycle(db, contentID, requiresID)
	if err != nil {
		return nil, err
	}
	if cyclic {
		return nil, ErrPrerequisiteCycle
	}

	edge := education.ContentPrerequisite{ContentID: contentID, RequiresID: requiresID}
	if err := db.Create(&edge).Error; err != nil {
		return nil, err
	}
	return &edge, nil
}

// wouldCreateCycle checks whether contentID is reachable from requiresID
// following "requires" edges: if so, the new edge closes a loop.
func wouldCreateCycle(db *gorm.DB, contentID, requiresID uint) (bool, error) {
	var edges []education.ContentPrerequisite
	if err := db.Find(&edges).Error; err != nil {
		return false, err
	}

	requires := make(map[uint][]uint, len(edges))
	for _, edge := range edges {
		requires[edge.ContentID] = append(requires[edge.ContentID], edge.RequiresID)
	}

	// DFS from requiresID through existing edges
	stack := []uint{requiresID}
	seen := map[uint]bool{}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == contentID {
			return true, nil
		}
		if seen[node] {
			continue
		}
		seen[node] = true
		stack = append(stack, requires[node]...)
	}
	return false, nil
}

// CreateLearningPath stores a path definition
func CreateLearningPath(db *gorm.DB, path *education.LearningPath) error {
	if strings.TrimSpace(path.Title) == "" {
		return errors.New("title is required")
	}
	if path.MinAge != nil && *path.MinAge < 0 {
		return errors.New("min age must not be negative")
	}
	return db.Create(path).Error
}

// AddLearningPathItem places content into a path at the given order
func AddLearningPathItem(db *gorm.DB, item *education.LearningPathItem) error {
	var path education.LearningPath
	if err := db.Where("id = ? AND is_deleted = ?", item.LearningPathID, false).First(&path).Error; err != nil {
		return fmt.Errorf("learning path %d not found", item.LearningPathID)
	}

	var content education.EducationalContent
	if err := db.Where("id = ? AND is_deleted = ?", item.ContentID, false).First(&content).Error; err != nil {
		return fmt.Errorf("content %d not found", item.ContentID)
	}

	if item.OrderIndex == 0 {
		var maxOrder int
		db.Model(&education.LearningPathItem{}).
			Where("learning_path_id = ?", item.LearningPathID).
			Select("COALESCE(MAX(order_index), 0)").
			Scan(&maxOrder)
		item.OrderIndex = maxOrder + 1
	}

	return db.Create(item).Error
}
