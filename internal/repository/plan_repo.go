package repository

import (
	"context"
	"errors"

	"billing/internal/model"

	"gorm.io/gorm"
)

var ErrPlanNotFound = errors.New("套餐不存在")

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx == nil {
		return r.db
	}
	return tx
}

func (r *PlanRepository) List(ctx context.Context) ([]*model.Plan, error) {
	var plans []*model.Plan
	err := r.db.WithContext(ctx).Order("id ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) Create(ctx context.Context, tx *gorm.DB, plan *model.Plan) error {
	return r.conn(tx).WithContext(ctx).Create(plan).Error
}

func (r *PlanRepository) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*model.Plan, error) {
	var plan model.Plan
	err := r.conn(tx).WithContext(ctx).Where("id = ?", id).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) Exists(ctx context.Context, tx *gorm.DB, id int64) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&model.Plan{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *PlanRepository) Update(ctx context.Context, tx *gorm.DB, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.conn(tx).WithContext(ctx).
		Model(&model.Plan{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *PlanRepository) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	result := r.conn(tx).WithContext(ctx).Where("id = ?", id).Delete(&model.Plan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}
