package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hirevox/hirevox/internal/models"
	"github.com/hirevox/hirevox/internal/utils"
)

type LiveSessionRepository interface {
	// Upsert replaces any previous session document for the interview; a
	// finished session may be restarted with a fresh document.
	Upsert(ctx context.Context, s *models.LiveSession) error
	GetByInterviewID(ctx context.Context, interviewID string) (*models.LiveSession, error)
	SetStatus(ctx context.Context, interviewID, status string) error
	SetQuestionIndex(ctx context.Context, interviewID string, idx int) error
	End(ctx context.Context, interviewID string, endedAt time.Time) error
}

type liveSessionRepo struct {
	col *mongo.Collection
}

func NewLiveSessionRepo(db *mongo.Database) LiveSessionRepository {
	return &liveSessionRepo{col: db.Collection("live_sessions")}
}

func (r *liveSessionRepo) Upsert(ctx context.Context, s *models.LiveSession) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"interview_id": s.InterviewID},
		s,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *liveSessionRepo) GetByInterviewID(ctx context.Context, interviewID string) (*models.LiveSession, error) {
	var s models.LiveSession
	err := r.col.FindOne(ctx, bson.M{"interview_id": interviewID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *liveSessionRepo) SetStatus(ctx context.Context, interviewID, status string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"interview_id": interviewID},
		bson.M{"$set": bson.M{"status": status}},
	)
	return err
}

func (r *liveSessionRepo) SetQuestionIndex(ctx context.Context, interviewID string, idx int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"interview_id": interviewID},
		bson.M{"$set": bson.M{"question_index": idx}},
	)
	return err
}

func (r *liveSessionRepo) End(ctx context.Context, interviewID string, endedAt time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"interview_id": interviewID},
		bson.M{"$set": bson.M{
			"status":   "finished",
			"ended_at": endedAt.UTC(),
		}},
	)
	return err
}
