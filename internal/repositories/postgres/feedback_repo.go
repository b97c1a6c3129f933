package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hirevox/hirevox/internal/models"
	"github.com/hirevox/hirevox/internal/utils"
)

type FeedbackRepository interface {
	// CreateIfAbsent inserts fb unless a row already exists for its
	// interview_id. Either way the stored row is returned, so two racing
	// end-of-interview calls converge on one record.
	CreateIfAbsent(ctx context.Context, fb *models.Feedback) (*models.Feedback, error)
	GetByInterviewID(ctx context.Context, interviewID string) (*models.Feedback, error)
}

type feedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepo(db *gorm.DB) FeedbackRepository {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) CreateIfAbsent(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "interview_id"}},
			DoNothing: true,
		}).
		Create(fb)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return fb, nil
	}
	// conflict: someone else won the insert, hand back their row
	return r.GetByInterviewID(ctx, fb.InterviewID)
}

func (r *feedbackRepo) GetByInterviewID(ctx context.Context, interviewID string) (*models.Feedback, error) {
	var row models.Feedback
	err := r.db.WithContext(ctx).Where("interview_id = ?", interviewID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
