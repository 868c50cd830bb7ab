package repository

import (
	"context"
	"errors"

	"billing/internal/model"

	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("交易不存在")

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx == nil {
		return r.db
	}
	return tx
}

func (r *TransactionRepository) List(ctx context.Context) ([]*model.Transaction, error) {
	var transactions []*model.Transaction
	err := r.db.WithContext(ctx).Order("id ASC").Find(&transactions).Error
	return transactions, err
}

func (r *TransactionRepository) Create(ctx context.Context, tx *gorm.DB, trans *model.Transaction) error {
	return r.conn(tx).WithContext(ctx).Create(trans).Error
}

func (r *TransactionRepository) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*model.Transaction, error) {
	var trans model.Transaction
	err := r.conn(tx).WithContext(ctx).Where("id = ?", id).First(&trans).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &trans, nil
}

// ListByCustomerID 按写入顺序返回客户的全部交易
func (r *TransactionRepository) ListByCustomerID(ctx context.Context, tx *gorm.DB, customerID int64) ([]*model.Transaction, error) {
	var transactions []*model.Transaction
	err := r.conn(tx).WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&transactions).Error
	return transactions, err
}

func (r *TransactionRepository) CountByCustomerID(ctx context.Context, tx *gorm.DB, customerID int64) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&model.Transaction{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}

func (r *TransactionRepository) Update(ctx context.Context, tx *gorm.DB, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.conn(tx).WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *TransactionRepository) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	result := r.conn(tx).WithContext(ctx).Where("id = ?", id).Delete(&model.Transaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) DeleteByCustomerID(ctx context.Context, tx *gorm.DB, customerID int64) (int64, error) {
	result := r.conn(tx).WithContext(ctx).Where("customer_id = ?", customerID).Delete(&model.Transaction{})
	return result.RowsAffected, result.Error
}
