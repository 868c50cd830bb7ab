package model

import (
	"encoding/json"
)

// Invoice 账单视图，不落库
//
// Total 由调用方给出，AmountTotal 由交易金额求和得到，两者互不覆盖
type Invoice struct {
	ID           int64         `json:"id"`
	Customer     Customer      `json:"customer"`
	Transactions []Transaction `json:"transactions"`
	Total        int64         `json:"total"`
}

func BuildInvoice(id int64, customer Customer, transactions []Transaction, total int64) *Invoice {
	items := make([]Transaction, len(transactions))
	copy(items, transactions)
	return &Invoice{
		ID:           id,
		Customer:     customer,
		Transactions: items,
		Total:        total,
	}
}

func (i *Invoice) AmountTotal() int64 {
	var sum int64
	for _, t := range i.Transactions {
		sum += t.Amount
	}
	return sum
}

func (i Invoice) MarshalJSON() ([]byte, error) {
	type invoice Invoice
	return json.Marshal(struct {
		invoice
		AmountTotal int64 `json:"amount_total"`
	}{
		invoice:     invoice(i),
		AmountTotal: i.AmountTotal(),
	})
}

type InvoiceCreate struct {
	ID         *int64 `json:"id" validate:"required"`
	CustomerID *int64 `json:"customer_id" validate:"required"`
	Total      *int64 `json:"total" validate:"required"`
}

func (in *InvoiceCreate) Validate() error {
	return validateStruct(in)
}
