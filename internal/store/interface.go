package store

import (
	"context"

	"strokerisk/internal/store/model"
)

// Store is the entry point for database access.
type Store interface {
	// Predictions returns the prediction audit repository.
	Predictions() PredictionRepository
	// Close closes the store connection.
	Close() error
}

// PredictionRepository persists served predictions.
type PredictionRepository interface {
	Insert(ctx context.Context, rec *model.PredictionModel) error
	FindByTraceID(ctx context.Context, traceID string) (*model.PredictionModel, error)
	ListRecent(ctx context.Context, limit int) ([]model.PredictionModel, error)
}
