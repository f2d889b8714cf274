package model

import (
	"time"

	"gorm.io/datatypes"
)

// Prediction sources.
const (
	SourceAPI  = "api"
	SourceForm = "form"
)

// PredictionModel maps to the 'prediction_log' table.
type PredictionModel struct {
	ID           int64          `gorm:"column:id;primaryKey" json:"id"`
	TraceID      string         `gorm:"column:trace_id;uniqueIndex;size:36" json:"trace_id"`
	Source       string         `gorm:"column:source;size:8" json:"source"`
	Features     datatypes.JSON `gorm:"column:features" json:"features"`
	Result       int            `gorm:"column:result" json:"result"`
	ModelName    string         `gorm:"column:model_name" json:"model_name"`
	ModelVersion int            `gorm:"column:model_version" json:"model_version"`
	CreatedAt    time.Time      `gorm:"column:created_at;index" json:"created_at"`
}

func (PredictionModel) TableName() string { return "prediction_log" }
