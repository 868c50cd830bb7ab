package service

import (
	"context"
	"errors"
	"fmt"

	"billing/internal/config"
	"billing/internal/model"
	"billing/internal/repository"
	"billing/pkg/apperr"

	"gorm.io/gorm"
)

const msgPlanNotFound = "Plan not found"

type PlanService struct {
	db               *gorm.DB
	cfg              *config.Config
	planRepo         *repository.PlanRepository
	customerPlanRepo *repository.CustomerPlanRepository
}

func NewPlanService(db *gorm.DB, cfg *config.Config) *PlanService {
	return &PlanService{
		db:               db,
		cfg:              cfg,
		planRepo:         repository.NewPlanRepository(db),
		customerPlanRepo: repository.NewCustomerPlanRepository(db),
	}
}

func planLookupError(err error) error {
	if errors.Is(err, repository.ErrPlanNotFound) {
		return apperr.NotFound(msgPlanNotFound)
	}
	return fmt.Errorf("查询套餐失败: %w", err)
}

func (s *PlanService) List(ctx context.Context) ([]*model.Plan, error) {
	plans, err := s.planRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询套餐列表失败: %w", err)
	}
	return plans, nil
}

func (s *PlanService) Create(ctx context.Context, in *model.PlanCreate) (*model.Plan, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	plan := in.ToPlan()
	if err := s.planRepo.Create(ctx, nil, plan); err != nil {
		return nil, fmt.Errorf("创建套餐失败: %w", err)
	}
	return plan, nil
}

func (s *PlanService) Get(ctx context.Context, id int64) (*model.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, planLookupError(err)
	}
	return plan, nil
}

func (s *PlanService) Update(ctx context.Context, id int64, patch *model.PlanPatch) (*model.Plan, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var plan *model.Plan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.planRepo.GetByID(ctx, tx, id); err != nil {
			return planLookupError(err)
		}
		if err := s.planRepo.Update(ctx, tx, id, patch.Updates()); err != nil {
			return fmt.Errorf("更新套餐失败: %w", err)
		}
		var err error
		plan, err = s.planRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) Delete(ctx context.Context, id int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.planRepo.GetByID(ctx, tx, id); err != nil {
			return planLookupError(err)
		}

		if s.cfg.Business.DeletePolicy == config.DeletePolicyCascade {
			if _, err := s.customerPlanRepo.DeleteByPlanID(ctx, tx, id); err != nil {
				return fmt.Errorf("删除套餐订阅失败: %w", err)
			}
		} else {
			count, err := s.customerPlanRepo.CountByPlanID(ctx, tx, id)
			if err != nil {
				return fmt.Errorf("统计套餐订阅失败: %w", err)
			}
			if count > 0 {
				return apperr.Conflict("Plan has subscriptions")
			}
		}

		if err := s.planRepo.Delete(ctx, tx, id); err != nil {
			return planLookupError(err)
		}
		return nil
	})
}
