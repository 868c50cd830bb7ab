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
	msgCustomerOrPlanNotFound = "Customer or plan not found"
	msgCustomerPlanNotFound   = "Customer plan not found"
)

// SubscriptionService 管理客户与套餐的订阅关系
//
// 每次订阅都插入新记录，同一客户同一套餐的多条记录构成订阅历史
type SubscriptionService struct {
	db               *gorm.DB
	locker           lock.Locker
	events           *EventRecorder
	customerRepo     *repository.CustomerRepository
	planRepo         *repository.PlanRepository
	customerPlanRepo *repository.CustomerPlanRepository
}

func NewSubscriptionService(db *gorm.DB, locker lock.Locker, cfg *config.Config) *SubscriptionService {
	return &SubscriptionService{
		db:               db,
		locker:           locker,
		events:           NewEventRecorder(db, cfg),
		customerRepo:     repository.NewCustomerRepository(db),
		planRepo:         repository.NewPlanRepository(db),
		customerPlanRepo: repository.NewCustomerPlanRepository(db),
	}
}

func customerPlanLookupError(err error) error {
	if errors.Is(err, repository.ErrCustomerPlanNotFound) {
		return apperr.NotFound(msgCustomerPlanNotFound)
	}
	return fmt.Errorf("查询订阅失败: %w", err)
}

// ListCustomerPlans 返回客户指定状态的订阅，status 为空按 active 处理
func (s *SubscriptionService) ListCustomerPlans(ctx context.Context, customerID int64, status string) ([]*model.CustomerPlan, error) {
	planStatus, err := model.ParsePlanStatus(status)
	if err != nil {
		return nil, err
	}

	exists, err := s.customerRepo.Exists(ctx, nil, customerID)
	if err != nil {
		return nil, fmt.Errorf("查询客户失败: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound(msgCustomerNotFound)
	}

	links, err := s.customerPlanRepo.ListByCustomerAndStatus(ctx, customerID, planStatus)
	if err != nil {
		return nil, fmt.Errorf("查询客户订阅失败: %w", err)
	}
	return links, nil
}

func (s *SubscriptionService) Subscribe(ctx context.Context, customerID, planID int64, status string) (*model.CustomerPlan, error) {
	planStatus, err := model.ParsePlanStatus(status)
	if err != nil {
		return nil, err
	}

	unlock, err := lockCustomer(ctx, s.locker, customerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	link := &model.CustomerPlan{
		CustomerID: customerID,
		PlanID:     planID,
		Status:     planStatus,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		customerExists, err := s.customerRepo.Exists(ctx, tx, customerID)
		if err != nil {
			return fmt.Errorf("查询客户失败: %w", err)
		}
		planExists, err := s.planRepo.Exists(ctx, tx, planID)
		if err != nil {
			return fmt.Errorf("查询套餐失败: %w", err)
		}
		if !customerExists || !planExists {
			return apperr.NotFound(msgCustomerOrPlanNotFound)
		}

		if err := s.customerPlanRepo.Create(ctx, tx, link); err != nil {
			return fmt.Errorf("创建订阅失败: %w", err)
		}
		return s.events.Record(ctx, tx, model.EventSubscriptionCreated, customerID, link)
	})
	if err != nil {
		return nil, err
	}

	logger.WithComponent("subscription").WithFields(logrus.Fields{
		"customer_plan_id": link.ID,
		"customer_id":      customerID,
		"plan_id":          planID,
		"status":           planStatus,
	}).Info("订阅已创建")
	return link, nil
}

func (s *SubscriptionService) List(ctx context.Context) ([]*model.CustomerPlan, error) {
	links, err := s.customerPlanRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询订阅列表失败: %w", err)
	}
	return links, nil
}

func (s *SubscriptionService) Get(ctx context.Context, id int64) (*model.CustomerPlan, error) {
	link, err := s.customerPlanRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, customerPlanLookupError(err)
	}
	return link, nil
}

// Update 目前只允许修改 status（active <-> inactive）
func (s *SubscriptionService) Update(ctx context.Context, id int64, patch *model.CustomerPlanPatch) (*model.CustomerPlan, error) {
	status, err := patch.Validate()
	if err != nil {
		return nil, err
	}

	var link *model.CustomerPlan
	err = s.db.Transaction(func(tx *gorm.DB) error {
		current, err := s.customerPlanRepo.GetByID(ctx, tx, id)
		if err != nil {
			return customerPlanLookupError(err)
		}
		if status == "" || status == current.Status {
			link = current
			return nil
		}

		if err := s.customerPlanRepo.UpdateStatus(ctx, tx, id, status); err != nil {
			return fmt.Errorf("更新订阅状态失败: %w", err)
		}
		if link, err = s.customerPlanRepo.GetByID(ctx, tx, id); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, model.EventSubscriptionUpdated, link.CustomerID, map[string]interface{}{
			"id":          link.ID,
			"plan_id":     link.PlanID,
			"from_status": current.Status,
			"to_status":   link.Status,
		})
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (s *SubscriptionService) Delete(ctx context.Context, id int64) error {
	if err := s.customerPlanRepo.Delete(ctx, nil, id); err != nil {
		return customerPlanLookupError(err)
	}
	return nil
}
