package model

import (
	"time"
)

// Transaction 客户交易流水
// Amount 为有符号整数，单位由调用方约定（分或元）
type Transaction struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Description string    `gorm:"type:varchar(512)" json:"description"`
	CustomerID  int64     `gorm:"index;not null" json:"customer_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Transaction) TableName() string {
	return "billing_transaction"
}

type TransactionCreate struct {
	CustomerID  *int64 `json:"customer_id" validate:"required"`
	Amount      *int64 `json:"amount" validate:"required"`
	Description string `json:"description" validate:"max=512"`
}

func (in *TransactionCreate) Validate() error {
	in.Description = SanitizeText(in.Description)
	return validateStruct(in)
}

func (in *TransactionCreate) ToTransaction() *Transaction {
	return &Transaction{
		CustomerID:  *in.CustomerID,
		Amount:      *in.Amount,
		Description: in.Description,
	}
}

// TransactionPatch 交易所属客户不可修改
type TransactionPatch struct {
	Amount      Optional[int64]  `json:"amount"`
	Description Optional[string] `json:"description"`
}

func (p *TransactionPatch) Validate() error {
	if err := requireNonNull("amount", p.Amount.Null); err != nil {
		return err
	}
	if p.Description.Set {
		p.Description.Value = SanitizeText(p.Description.Value)
		if err := validateVar("description", p.Description.Value, "max=512"); err != nil {
			return err
		}
	}
	return nil
}

func (p *TransactionPatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Amount.Set {
		updates["amount"] = p.Amount.Value
	}
	if p.Description.Set {
		updates["description"] = p.Description.Value
	}
	return updates
}
