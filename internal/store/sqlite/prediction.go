package sqlite

import (
	"context"
	"errors"

	"strokerisk/internal/store/model"

	"gorm.io/gorm"
)

type predictionRepo struct {
	db *gorm.DB
}

func NewPredictionRepo(db *gorm.DB) *predictionRepo {
	return &predictionRepo{db: db}
}

func (r *predictionRepo) Insert(ctx context.Context, rec *model.PredictionModel) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// FindByTraceID returns nil, nil when no record matches.
func (r *predictionRepo) FindByTraceID(ctx context.Context, traceID string) (*model.PredictionModel, error) {
	var rec model.PredictionModel
	err := r.db.WithContext(ctx).Where("trace_id = ?", traceID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *predictionRepo) ListRecent(ctx context.Context, limit int) ([]model.PredictionModel, error) {
	var recs []model.PredictionModel
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
