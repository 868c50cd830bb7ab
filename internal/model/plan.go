package model

import (
	"time"
)

// Plan 订阅套餐
type Plan struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(128);not null" json:"name"`
	Price       int64     `gorm:"not null" json:"price"`
	Description string    `gorm:"type:varchar(512);not null;default:''" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Plan) TableName() string {
	return "plan"
}

type PlanCreate struct {
	Name        string `json:"name" validate:"required,max=128"`
	Price       *int64 `json:"price" validate:"required"`
	Description string `json:"description" validate:"max=512"`
}

func (in *PlanCreate) Validate() error {
	in.Name = SanitizeText(in.Name)
	in.Description = SanitizeText(in.Description)
	return validateStruct(in)
}

func (in *PlanCreate) ToPlan() *Plan {
	return &Plan{
		Name:        in.Name,
		Price:       *in.Price,
		Description: in.Description,
	}
}

type PlanPatch struct {
	Name        Optional[string] `json:"name"`
	Price       Optional[int64]  `json:"price"`
	Description Optional[string] `json:"description"`
}

func (p *PlanPatch) Validate() error {
	if err := requireNonNull("name", p.Name.Null, "price", p.Price.Null); err != nil {
		return err
	}
	if p.Name.Set {
		p.Name.Value = SanitizeText(p.Name.Value)
		if err := validateVar("name", p.Name.Value, "required,max=128"); err != nil {
			return err
		}
	}
	if p.Description.Set {
		p.Description.Value = SanitizeText(p.Description.Value)
		if err := validateVar("description", p.Description.Value, "max=512"); err != nil {
			return err
		}
	}
	return nil
}

func (p *PlanPatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Name.Set {
		updates["name"] = p.Name.Value
	}
	if p.Price.Set {
		updates["price"] = p.Price.Value
	}
	if p.Description.Set {
		// 描述列不可为 null，显式 null 视为清空
		updates["description"] = p.Description.Value
	}
	return updates
}
