package repository

import (
	"fmt"

	"gorm.io/gorm"

	"gotodo/internal/model"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(record *model.ActivityRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("create activity record failed: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListRecentByUserID(userID uint, limit int) ([]model.ActivityRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []model.ActivityRecord
	if err := r.db.Where("user_id = ?", userID).Order("id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list activity records failed: %w", err)
	}
	return records, nil
}
