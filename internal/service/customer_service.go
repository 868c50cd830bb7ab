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

const (
	msgCustomerNotFound = "Customer not found"
	msgDuplicateEmail   = "Email already registered"
	msgCustomerBusy     = "Customer is being modified by another request, retry later"
)

type CustomerService struct {
	db               *gorm.DB
	cfg              *config.Config
	locker           lock.Locker
	events           *EventRecorder
	customerRepo     *repository.CustomerRepository
	transactionRepo  *repository.TransactionRepository
	customerPlanRepo *repository.CustomerPlanRepository
}

func NewCustomerService(db *gorm.DB, locker lock.Locker, cfg *config.Config) *CustomerService {
	return &CustomerService{
		db:               db,
		cfg:              cfg,
		locker:           locker,
		events:           NewEventRecorder(db, cfg),
		customerRepo:     repository.NewCustomerRepository(db),
		transactionRepo:  repository.NewTransactionRepository(db),
		customerPlanRepo: repository.NewCustomerPlanRepository(db),
	}
}

func customerLookupError(err error) error {
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return apperr.NotFound(msgCustomerNotFound)
	}
	return fmt.Errorf("查询客户失败: %w", err)
}

func lockCustomer(ctx context.Context, locker lock.Locker, customerID int64) (func(), error) {
	unlock, err := locker.LockCustomer(ctx, customerID, RequestIDFrom(ctx))
	if err != nil {
		if errors.Is(err, lock.ErrLockFailed) {
			return nil, apperr.Conflict(msgCustomerBusy)
		}
		return nil, fmt.Errorf("获取客户锁失败: %w", err)
	}
	return unlock, nil
}

func (s *CustomerService) List(ctx context.Context) ([]*model.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询客户列表失败: %w", err)
	}
	return customers, nil
}

func (s *CustomerService) Create(ctx context.Context, in *model.CustomerCreate) (*model.Customer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	customer := in.ToCustomer()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.customerRepo.Create(ctx, tx, customer); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return apperr.Conflict(msgDuplicateEmail)
			}
			return fmt.Errorf("创建客户失败: %w", err)
		}
		return s.events.Record(ctx, tx, model.EventCustomerCreated, customer.ID, customer)
	})
	if err != nil {
		return nil, err
	}

	logger.WithComponent("customer").WithField("customer_id", customer.ID).Info("客户已创建")
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, customerLookupError(err)
	}
	return customer, nil
}

// Update 只修改请求中出现的字段
func (s *CustomerService) Update(ctx context.Context, id int64, patch *model.CustomerPatch) (*model.Customer, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var customer *model.Customer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.customerRepo.GetByID(ctx, tx, id); err != nil {
			return customerLookupError(err)
		}
		if err := s.customerRepo.Update(ctx, tx, id, patch.Updates()); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return apperr.Conflict(msgDuplicateEmail)
			}
			return fmt.Errorf("更新客户失败: %w", err)
		}
		var err error
		customer, err = s.customerRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete 按配置的删除策略处理客户的交易和订阅
//
//	restrict: 存在交易或订阅时拒绝
//	cascade:  同一事务内一并删除
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	unlock, err := lockCustomer(ctx, s.locker, id)
	if err != nil {
		return err
	}
	defer unlock()

	var removedTransactions, removedPlans int64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.customerRepo.GetByID(ctx, tx, id); err != nil {
			return customerLookupError(err)
		}

		if s.cfg.Business.DeletePolicy == config.DeletePolicyCascade {
			var err error
			if removedTransactions, err = s.transactionRepo.DeleteByCustomerID(ctx, tx, id); err != nil {
				return fmt.Errorf("删除客户交易失败: %w", err)
			}
			if removedPlans, err = s.customerPlanRepo.DeleteByCustomerID(ctx, tx, id); err != nil {
				return fmt.Errorf("删除客户订阅失败: %w", err)
			}
		} else {
			transactions, err := s.transactionRepo.CountByCustomerID(ctx, tx, id)
			if err != nil {
				return fmt.Errorf("统计客户交易失败: %w", err)
			}
			plans, err := s.customerPlanRepo.CountByCustomerID(ctx, tx, id)
			if err != nil {
				return fmt.Errorf("统计客户订阅失败: %w", err)
			}
			if transactions > 0 || plans > 0 {
				return apperr.Conflict("Customer has transactions or plans")
			}
		}

		if err := s.customerRepo.Delete(ctx, tx, id); err != nil {
			return customerLookupError(err)
		}
		return s.events.Record(ctx, tx, model.EventCustomerDeleted, id, map[string]int64{
			"removed_transactions": removedTransactions,
			"removed_plans":        removedPlans,
		})
	})
	if err != nil {
		return err
	}

	logger.WithComponent("customer").WithFields(logrus.Fields{
		"customer_id":          id,
		"removed_transactions": removedTransactions,
		"removed_plans":        removedPlans,
	}).Info("客户已删除")
	return nil
}

// Transactions 客户名下全部交易，按写入顺序
func (s *CustomerService) Transactions(ctx context.Context, id int64) ([]*model.Transaction, error) {
	if _, err := s.customerRepo.GetByID(ctx, nil, id); err != nil {
		return nil, customerLookupError(err)
	}
	transactions, err := s.transactionRepo.ListByCustomerID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("查询客户交易失败: %w", err)
	}
	return transactions, nil
}
