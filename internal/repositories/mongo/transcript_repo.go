package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hirevox/hirevox/internal/models"
)

type TranscriptRepository interface {
	Append(ctx context.Context, e *models.TranscriptEntry) error
	ListByInterview(ctx context.Context, interviewID string, limit int64) ([]models.TranscriptEntry, error)
}

type transcriptRepo struct {
	col *mongo.Collection
}

func NewTranscriptRepo(db *mongo.Database) TranscriptRepository {
	return &transcriptRepo{col: db.Collection("transcript_buffer")}
}

func (r *transcriptRepo) Append(ctx context.Context, e *models.TranscriptEntry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.ExpiresAt.IsZero() {
		// buffered turns only need to outlive the session
		e.ExpiresAt = e.Timestamp.Add(24 * time.Hour)
	}
	_, err := r.col.InsertOne(ctx, e)
	return err
}

func (r *transcriptRepo) ListByInterview(ctx context.Context, interviewID string, limit int64) ([]models.TranscriptEntry, error) {
	if limit <= 0 {
		limit = 500
	}

	cur, err := r.col.Find(ctx,
		bson.M{"interview_id": interviewID},
		options.Find().
			SetSort(bson.D{{Key: "seq", Value: 1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TranscriptEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
