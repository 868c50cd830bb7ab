package model

import (
	"time"
)

// Customer 客户表
type Customer struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(128);not null" json:"name"`
	Description *string   `gorm:"type:varchar(512)" json:"description"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Age         int       `gorm:"not null" json:"age"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customer"
}

// CustomerCreate 创建客户的输入
type CustomerCreate struct {
	Name        string  `json:"name" validate:"required,max=128"`
	Description *string `json:"description" validate:"omitempty,max=512"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	Age         *int    `json:"age" validate:"required,gte=0"`
}

func (in *CustomerCreate) Validate() error {
	in.Name = SanitizeText(in.Name)
	in.Description = SanitizeTextPtr(in.Description)
	return validateStruct(in)
}

func (in *CustomerCreate) ToCustomer() *Customer {
	return &Customer{
		Name:        in.Name,
		Description: in.Description,
		Email:       in.Email,
		Age:         *in.Age,
	}
}

// CustomerPatch 部分更新，只应用请求中出现的字段
type CustomerPatch struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	Email       Optional[string] `json:"email"`
	Age         Optional[int]    `json:"age"`
}

func (p *CustomerPatch) Validate() error {
	if err := requireNonNull("name", p.Name.Null, "email", p.Email.Null, "age", p.Age.Null); err != nil {
		return err
	}
	if p.Name.Set {
		p.Name.Value = SanitizeText(p.Name.Value)
		if err := validateVar("name", p.Name.Value, "required,max=128"); err != nil {
			return err
		}
	}
	if p.Description.Set && !p.Description.Null {
		p.Description.Value = SanitizeText(p.Description.Value)
		if err := validateVar("description", p.Description.Value, "max=512"); err != nil {
			return err
		}
	}
	if p.Email.Set {
		if err := validateVar("email", p.Email.Value, "required,email,max=255"); err != nil {
			return err
		}
	}
	if p.Age.Set {
		if err := validateVar("age", p.Age.Value, "gte=0"); err != nil {
			return err
		}
	}
	return nil
}

// Updates 生成 gorm 的列更新集合，description 显式传 null 时置空
func (p *CustomerPatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Name.Set {
		updates["name"] = p.Name.Value
	}
	if p.Description.Set {
		if p.Description.Null {
			updates["description"] = nil
		} else {
			updates["description"] = p.Description.Value
		}
	}
	if p.Email.Set {
		updates["email"] = p.Email.Value
	}
	if p.Age.Set {
		updates["age"] = p.Age.Value
	}
	return updates
}
