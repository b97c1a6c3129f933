package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hirevox/hirevox/internal/models"
	"github.com/hirevox/hirevox/internal/utils"
)

type InterviewRepository interface {
	Create(ctx context.Context, iv *models.Interview) error
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	SetStatus(ctx context.Context, id, status string) error
}

type interviewRepo struct {
	db *gorm.DB
}

func NewInterviewRepo(db *gorm.DB) InterviewRepository {
	return &interviewRepo{db: db}
}

func (r *interviewRepo) Create(ctx context.Context, iv *models.Interview) error {
	return r.db.WithContext(ctx).Create(iv).Error
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	var row models.Interview
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *interviewRepo) SetStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
