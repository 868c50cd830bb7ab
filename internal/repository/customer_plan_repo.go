package repository

import (
	"context"
	"errors"

	"billing/internal/model"

	"gorm.io/gorm"
)

var ErrCustomerPlanNotFound = errors.New("订阅记录不存在")

type CustomerPlanRepository struct {
	db *gorm.DB
}

func NewCustomerPlanRepository(db *gorm.DB) *CustomerPlanRepository {
	return &CustomerPlanRepository{db: db}
}

func (r *CustomerPlanRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx == nil {
		return r.db
	}
	return tx
}

func (r *CustomerPlanRepository) List(ctx context.Context) ([]*model.CustomerPlan, error) {
	var links []*model.CustomerPlan
	err := r.db.WithContext(ctx).Order("id ASC").Find(&links).Error
	return links, err
}

func (r *CustomerPlanRepository) Create(ctx context.Context, tx *gorm.DB, link *model.CustomerPlan) error {
	return r.conn(tx).WithContext(ctx).Create(link).Error
}

func (r *CustomerPlanRepository) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*model.CustomerPlan, error) {
	var link model.CustomerPlan
	err := r.conn(tx).WithContext(ctx).Where("id = ?", id).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerPlanNotFound
		}
		return nil, err
	}
	return &link, nil
}

// ListByCustomerAndStatus 状态精确匹配
func (r *CustomerPlanRepository) ListByCustomerAndStatus(ctx context.Context, customerID int64, status model.PlanStatus) ([]*model.CustomerPlan, error) {
	var links []*model.CustomerPlan
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status = ?", customerID, status).
		Order("id ASC").
		Find(&links).Error
	return links, err
}

func (r *CustomerPlanRepository) CountByCustomerID(ctx context.Context, tx *gorm.DB, customerID int64) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&model.CustomerPlan{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}

func (r *CustomerPlanRepository) CountByPlanID(ctx context.Context, tx *gorm.DB, planID int64) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&model.CustomerPlan{}).
		Where("plan_id = ?", planID).
		Count(&count).Error
	return count, err
}

func (r *CustomerPlanRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id int64, status model.PlanStatus) error {
	return r.conn(tx).WithContext(ctx).
		Model(&model.CustomerPlan{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *CustomerPlanRepository) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	result := r.conn(tx).WithContext(ctx).Where("id = ?", id).Delete(&model.CustomerPlan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerPlanNotFound
	}
	return nil
}

func (r *CustomerPlanRepository) DeleteByCustomerID(ctx context.Context, tx *gorm.DB, customerID int64) (int64, error) {
	result := r.conn(tx).WithContext(ctx).Where("customer_id = ?", customerID).Delete(&model.CustomerPlan{})
	return result.RowsAffected, result.Error
}

func (r *CustomerPlanRepository) DeleteByPlanID(ctx context.Context, tx *gorm.DB, planID int64) (int64, error) {
	result := r.conn(tx).WithContext(ctx).Where("plan_id = ?", planID).Delete(&model.CustomerPlan{})
	return result.RowsAffected, result.Error
}
