package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// CategoryScore is one scored evaluation axis inside a Feedback record.
type CategoryScore struct {
	Name    string `json:"name"`
	Score   int    `json:"score"` // 0-100
	Comment string `json:"comment"`
}

// Feedback is the structured post-hoc evaluation of a completed interview.
// At most one row exists per interview (unique index on interview_id); the
// row is written once and never mutated.
type Feedback struct {
	ID          string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	InterviewID string `gorm:"column:interview_id;type:uuid;uniqueIndex" json:"interview_id"`

	// Snapshot of the transcript at synthesis time ([]TranscriptTurn).
	Transcript datatypes.JSON `gorm:"column:transcript;type:jsonb" json:"transcript"`

	TotalScore     int            `gorm:"column:total_score;type:integer" json:"total_score"`
	CategoryScores datatypes.JSON `gorm:"column:category_scores;type:jsonb" json:"category_scores"`

	Strengths           pq.StringArray `gorm:"column:strengths;type:text[]" json:"strengths"`
	AreasForImprovement pq.StringArray `gorm:"column:areas_for_improvement;type:text[]" json:"areas_for_improvement"`

	FinalAssessment string    `gorm:"column:final_assessment;type:text" json:"final_assessment"`
	CreatedAt       time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (Feedback) TableName() string { return "interview_feedbacks" }
