package model

import (
	"strings"
	"time"

	"billing/pkg/apperr"
)

type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusInactive PlanStatus = "inactive"
)

// ParsePlanStatus 只接受 active / inactive，空串取默认值 active
func ParsePlanStatus(s string) (PlanStatus, error) {
	switch PlanStatus(strings.TrimSpace(s)) {
	case "":
		return PlanStatusActive, nil
	case PlanStatusActive:
		return PlanStatusActive, nil
	case PlanStatusInactive:
		return PlanStatusInactive, nil
	}
	return "", apperr.Validation("plan_status must be one of: active inactive")
}

// CustomerPlan 客户订阅记录
// 同一 (customer, plan) 可以有多条记录，表示多次订阅的历史
type CustomerPlan struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	PlanID     int64      `gorm:"index;not null" json:"plan_id"`
	CustomerID int64      `gorm:"index:idx_customer_status;not null" json:"customer_id"`
	Status     PlanStatus `gorm:"type:varchar(16);index:idx_customer_status;not null;default:active" json:"status"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CustomerPlan) TableName() string {
	return "customer_plan"
}

type CustomerPlanPatch struct {
	Status Optional[string] `json:"status"`
}

func (p *CustomerPlanPatch) Validate() (PlanStatus, error) {
	if p.Status.Null {
		return "", apperr.Validation("status cannot be null")
	}
	if !p.Status.Set {
		return "", nil
	}
	if p.Status.Value == "" {
		return "", apperr.Validation("status must be one of: active inactive")
	}
	return ParsePlanStatus(p.Status.Value)
}
