package service

import (
	"context"
	"errors"
	"fmt"

	"billing/internal/config"
	"billing/internal/infrastructure/lock"
	"billing/internal/model"
	"billing/internal/repository"
	"billing/pkg/apperr"
	"billing/pkg/logger"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const msgTransactionNotFound = "Transaction not found"

type TransactionService struct {
	db              *gorm.DB
	locker          lock.Locker
	events          *EventRecorder
	customerRepo    *repository.CustomerRepository
	transactionRepo *repository.TransactionRepository
}

func NewTransactionService(db *gorm.DB, locker lock.Locker, cfg *config.Config) *TransactionService {
	return &TransactionService{
		db:              db,
		locker:          locker,
		events:          NewEventRecorder(db, cfg),
		customerRepo:    repository.NewCustomerRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
	}
}

func transactionLookupError(err error) error {
	if errors.Is(err, repository.ErrTransactionNotFound) {
		return apperr.NotFound(msgTransactionNotFound)
	}
	return fmt.Errorf("查询交易失败: %w", err)
}

func (s *TransactionService) List(ctx context.Context) ([]*model.Transaction, error) {
	transactions, err := s.transactionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询交易列表失败: %w", err)
	}
	return transactions, nil
}

// Create 客户不存在时返回 NotFound，不产生任何写入
func (s *TransactionService) Create(ctx context.Context, in *model.TransactionCreate) (*model.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	trans := in.ToTransaction()

	unlock, err := lockCustomer(ctx, s.locker, trans.CustomerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.customerRepo.Exists(ctx, tx, trans.CustomerID)
		if err != nil {
			return fmt.Errorf("查询客户失败: %w", err)
		}
		if !exists {
			return apperr.NotFound(msgCustomerNotFound)
		}

		if err := s.transactionRepo.Create(ctx, tx, trans); err != nil {
			return fmt.Errorf("记录交易失败: %w", err)
		}
		return s.events.Record(ctx, tx, model.EventTransactionCreated, trans.CustomerID, trans)
	})
	if err != nil {
		return nil, err
	}

	logger.WithComponent("transaction").WithFields(logrus.Fields{
		"transaction_id": trans.ID,
		"customer_id":    trans.CustomerID,
		"amount":         trans.Amount,
	}).Info("交易已记录")
	return trans, nil
}

func (s *TransactionService) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	trans, err := s.transactionRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, transactionLookupError(err)
	}
	return trans, nil
}

func (s *TransactionService) Update(ctx context.Context, id int64, patch *model.TransactionPatch) (*model.Transaction, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var trans *model.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.transactionRepo.GetByID(ctx, tx, id); err != nil {
			return transactionLookupError(err)
		}
		if err := s.transactionRepo.Update(ctx, tx, id, patch.Updates()); err != nil {
			return fmt.Errorf("更新交易失败: %w", err)
		}
		var err error
		trans, err = s.transactionRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return trans, nil
}

func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	if err := s.transactionRepo.Delete(ctx, nil, id); err != nil {
		return transactionLookupError(err)
	}
	return nil
}
