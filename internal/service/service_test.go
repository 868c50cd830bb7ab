package service

import (
	"context"
	"testing"

	"billing/internal/config"
	"billing/internal/infrastructure/database"
	"billing/internal/infrastructure/lock"
	"billing/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db            *gorm.DB
	cfg           *config.Config
	customers     *CustomerService
	plans         *PlanService
	transactions  *TransactionService
	subscriptions *SubscriptionService
	invoices      *InvoiceService
}

func newTestConfig() *config.Config {
	return &config.Config{
		Kafka: config.KafkaConfig{
			Enabled: true,
			Brokers: []string{"unused:9092"},
			Topic:   config.KafkaTopicConfig{BillingEvents: "billing_events"},
		},
		Business: config.BusinessConfig{DeletePolicy: config.DeletePolicyRestrict, MaxRetryCount: 3},
	}
}

func setupServices(t *testing.T, cfg *config.Config, locker lock.Locker) *testEnv {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if cfg == nil {
		cfg = newTestConfig()
	}
	if locker == nil {
		locker = lock.NopLocker{}
	}
	return &testEnv{
		db:            db,
		cfg:           cfg,
		customers:     NewCustomerService(db, locker, cfg),
		plans:         NewPlanService(db, cfg),
		transactions:  NewTransactionService(db, locker, cfg),
		subscriptions: NewSubscriptionService(db, locker, cfg),
		invoices:      NewInvoiceService(db),
	}
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func (e *testEnv) mustCustomer(t *testing.T, name, email string) *model.Customer {
	t.Helper()
	c, err := e.customers.Create(context.Background(), &model.CustomerCreate{Name: name, Email: email, Age: intPtr(30)})
	require.NoError(t, err)
	return c
}

func (e *testEnv) mustPlan(t *testing.T, name string, price int64) *model.Plan {
	t.Helper()
	p, err := e.plans.Create(context.Background(), &model.PlanCreate{Name: name, Price: int64Ptr(price)})
	require.NoError(t, err)
	return p
}

func (e *testEnv) mustTransaction(t *testing.T, customerID, amount int64) *model.Transaction {
	t.Helper()
	tr, err := e.transactions.Create(context.Background(), &model.TransactionCreate{CustomerID: int64Ptr(customerID), Amount: int64Ptr(amount)})
	require.NoError(t, err)
	return tr
}

func (e *testEnv) outboxTypes(t *testing.T) []string {
	t.Helper()
	var msgs []model.OutboxMessage
	require.NoError(t, e.db.Order("id ASC").Find(&msgs).Error)
	types := make([]string, 0, len(msgs))
	for _, m := range msgs {
		types = append(types, m.EventType)
	}
	return types
}
