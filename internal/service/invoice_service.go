package service

import (
	"context"
	"fmt"

	"billing/internal/model"
	"billing/internal/repository"

	"gorm.io/gorm"
)

type InvoiceService struct {
	customerRepo    *repository.CustomerRepository
	transactionRepo *repository.TransactionRepository
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{
		customerRepo:    repository.NewCustomerRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
	}
}

// Build 组装客户账单视图，total 原样保留，不与交易合计对齐
func (s *InvoiceService) Build(ctx context.Context, in *model.InvoiceCreate) (*model.Invoice, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, nil, *in.CustomerID)
	if err != nil {
		return nil, customerLookupError(err)
	}

	transactions, err := s.transactionRepo.ListByCustomerID(ctx, nil, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("查询客户交易失败: %w", err)
	}

	items := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		items = append(items, *t)
	}

	return model.BuildInvoice(*in.ID, *customer, items, *in.Total), nil
}
