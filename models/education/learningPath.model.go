package education

import "gorm.io/gorm"

// LearningPath is an ordered curriculum of content items
type LearningPath struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	MinAge      *int   `json:"minAge"` // hides the path from younger users in listings
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
	IsDeleted   bool   `gorm:"default:false" json:"isDeleted"`
}

// LearningPathItem places a content item in a path. Only required items gate
// path completion; optional items are enrichment.
type LearningPathItem struct {
	gorm.Model
	LearningPathID uint `gorm:"not null;index;uniqueIndex:idx_path_content" json:"learningPathId"`
	ContentID      uint `gorm:"not null;index;uniqueIndex:idx_path_content" json:"contentId"`
	OrderIndex     int  `gorm:"default:0" json:"orderIndex"`
	Required       bool `gorm:"default:true" json:"required"`

	Content EducationalContent `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}
