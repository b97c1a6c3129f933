package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LiveSession tracks one voice session for an interview while the call is
// up. Durable results (Interview, Feedback) live in Postgres; this document
// only carries the in-flight state machine.
type LiveSession struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InterviewID string             `bson:"interview_id" json:"interview_id"`
	UserID      string             `bson:"user_id" json:"user_id"`

	Status        string `bson:"status" json:"status"` // idle|connecting|active|finished
	QuestionIndex int    `bson:"question_index" json:"question_index"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	EndedAt   *time.Time `bson:"ended_at,omitempty" json:"ended_at,omitempty"`
}

// TranscriptEntry is one live transcript turn buffered in Mongo during a
// session. Entries expire via TTL index; the durable copy is the jsonb
// snapshot on the Feedback row.
type TranscriptEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InterviewID string             `bson:"interview_id" json:"interview_id"`
	Seq         int64              `bson:"seq" json:"seq"`

	Role    string `bson:"role" json:"role"` // interviewer|candidate
	Content string `bson:"content" json:"content"`

	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"` // for TTL index
}
