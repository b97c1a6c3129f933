package models

import (
	"time"

	"github.com/lib/pq"
)

type InterviewType string

const (
	InterviewTechnical  InterviewType = "technical"
	InterviewBehavioral InterviewType = "behavioral"
	InterviewMixed      InterviewType = "mixed"
)

type ExperienceLevel string

const (
	LevelEntry        ExperienceLevel = "entry"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelSenior       ExperienceLevel = "senior"
)

const (
	InterviewPending   = "pending"
	InterviewCompleted = "completed"
)

// Interview is one configured mock interview. Questions are fixed at
// creation; status flips pending -> completed exactly once, after the
// feedback row is written.
type Interview struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;index" json:"user_id"`

	Type  string `gorm:"column:type;type:text" json:"type"`   // technical|behavioral|mixed
	Level string `gorm:"column:level;type:text" json:"level"` // entry|intermediate|senior
	Role  string `gorm:"column:role;type:text" json:"role"`

	TechStack pq.StringArray `gorm:"column:tech_stack;type:text[]" json:"tech_stack"`
	Questions pq.StringArray `gorm:"column:questions;type:text[]" json:"questions"`

	Status    string    `gorm:"column:status;type:text;index" json:"status"` // pending|completed
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (Interview) TableName() string { return "ai_interviews" }

func ValidInterviewType(v string) bool {
	switch InterviewType(v) {
	case InterviewTechnical, InterviewBehavioral, InterviewMixed:
		return true
	}
	return false
}

func ValidExperienceLevel(v string) bool {
	switch ExperienceLevel(v) {
	case LevelEntry, LevelIntermediate, LevelSenior:
		return true
	}
	return false
}
