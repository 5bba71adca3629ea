package education

import "gorm.io/gorm"

// Content type enum values
const (
	TypeModule      = "MODULE"
	TypeQuiz        = "QUIZ"
	TypeArticle     = "ARTICLE"
	TypeInteractive = "INTERACTIVE"
	TypeVideo       = "VIDEO"
)

// Completion requirement enum values
const (
	RequirementNone        = "NONE"
	RequirementQuiz        = "QUIZ"
	RequirementTime        = "TIME"
	RequirementInteraction = "INTERACTION"
)

// EducationalContent represents a single learnable item
type EducationalContent struct {
	gorm.Model
	Slug                  string `gorm:"type:varchar(128);uniqueIndex;not null" json:"slug"`
	Title                 string `json:"title"`
	Description           string `json:"description"`
	ContentType           string `gorm:"type:varchar(20);default:'ARTICLE'" json:"contentType"` // MODULE, QUIZ, ARTICLE, INTERACTIVE, VIDEO
	Level                 int    `gorm:"default:1" json:"level"`
	CompletionRequirement string `gorm:"type:varchar(20);default:'NONE'" json:"completionRequirement"` // NONE, QUIZ, TIME, INTERACTION
	IsPublished           bool   `gorm:"default:false" json:"isPublished"`
	IsDeleted             bool   `gorm:"default:false" json:"isDeleted"`
}

// ContentPrerequisite is an edge "ContentID requires RequiresID complete
// first". The full edge set must stay acyclic; authoring rejects cycles.
type ContentPrerequisite struct {
	gorm.Model
	ContentID  uint `gorm:"not null;index;uniqueIndex:idx_content_requires" json:"contentId"`
	RequiresID uint `gorm:"not null;index;uniqueIndex:idx_content_requires" json:"requiresId"`
}
