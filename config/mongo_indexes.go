package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// transcript_buffer indexes
	buffer := db.Collection("transcript_buffer")
	_, err := buffer.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// 1) TTL index: expire at ExpiresAt (must be Date)
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetName("ttl_expires_at").
				SetExpireAfterSeconds(0),
		},
		// 2) Ensure no duplicate turn per interview
		{
			Keys: bson.D{{Key: "interview_id", Value: 1}, {Key: "seq", Value: 1}},
			Options: options.Index().
				SetName("uniq_interview_seq").
				SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	// live_sessions indexes
	sessions := db.Collection("live_sessions")
	_, err = sessions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "interview_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_interview_id").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_user_created"),
		},
	})
	return err
}
