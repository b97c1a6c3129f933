package models

const (
	RoleInterviewer = "interviewer"
	RoleCandidate   = "candidate"
)

// TranscriptTurn is one utterance in a session. The live transcript is an
// append-only ordered sequence of these.
type TranscriptTurn struct {
	Role    string `bson:"role" json:"role"` // interviewer|candidate
	Content string `bson:"content" json:"content"`
}
