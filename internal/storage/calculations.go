package storage

import (
	"context"
	"fmt"

	"admin-panel/internal/models"

	"gorm.io/gorm"
)

const DefaultHistoryLimit = 50

type CalculationRepository struct {
	db *gorm.DB
}

func NewCalculationRepository(db *gorm.DB) *CalculationRepository {
	return &CalculationRepository{db: db}
}

func (r *CalculationRepository) Save(ctx context.Context, c *models.Calculation) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("save calculation: %w", err)
	}
	return nil
}

// ListByUser returns the newest calculations of a user first. A non-positive
// limit falls back to DefaultHistoryLimit.
func (r *CalculationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Calculation, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	calcs := make([]models.Calculation, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&calcs).Error
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	return calcs, nil
}
