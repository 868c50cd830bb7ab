package repository

import (
	"context"
	"encoding/json"
	"testing"

	"billing/internal/infrastructure/database"
	"billing/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createCustomer(t *testing.T, repo *CustomerRepository, email string) *model.Customer {
	t.Helper()
	c := &model.Customer{Name: "Ada", Email: email, Age: 36}
	require.NoError(t, repo.Create(context.Background(), nil, c))
	return c
}

func TestCustomerRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(setupDB(t))

	first := createCustomer(t, repo, "ada@example.com")
	second := createCustomer(t, repo, "grace@example.com")
	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	require.NoError(t, repo.Update(ctx, nil, first.ID, map[string]interface{}{"age": 37}))
	got, err := repo.GetByID(ctx, nil, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 37, got.Age)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)

	require.NoError(t, repo.Delete(ctx, nil, first.ID))
	_, err = repo.GetByID(ctx, nil, first.ID)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, nil, first.ID), ErrCustomerNotFound)

	exists, err := repo.Exists(ctx, nil, second.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCustomerRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(setupDB(t))
	createCustomer(t, repo, "ada@example.com")
	other := createCustomer(t, repo, "grace@example.com")

	err := repo.Create(ctx, nil, &model.Customer{Name: "Copy", Email: "ada@example.com", Age: 1})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	err = repo.Update(ctx, nil, other.ID, map[string]interface{}{"email": "ada@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCustomerRepository_NullDescription(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(setupDB(t))
	desc := "vip"
	c := &model.Customer{Name: "Ada", Email: "ada@example.com", Age: 36, Description: &desc}
	require.NoError(t, repo.Create(ctx, nil, c))

	require.NoError(t, repo.Update(ctx, nil, c.ID, map[string]interface{}{"description": nil}))
	got, err := repo.GetByID(ctx, nil, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
}

func TestTransactionRepository_ByCustomer(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	customers := NewCustomerRepository(db)
	repo := NewTransactionRepository(db)

	ada := createCustomer(t, customers, "ada@example.com")
	grace := createCustomer(t, customers, "grace@example.com")

	for _, amount := range []int64{100, 250, -50} {
		require.NoError(t, repo.Create(ctx, nil, &model.Transaction{CustomerID: ada.ID, Amount: amount}))
	}
	require.NoError(t, repo.Create(ctx, nil, &model.Transaction{CustomerID: grace.ID, Amount: 1}))

	list, err := repo.ListByCustomerID(ctx, nil, ada.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{100, 250, -50}, []int64{list[0].Amount, list[1].Amount, list[2].Amount})

	count, err := repo.CountByCustomerID(ctx, nil, grace.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	deleted, err := repo.DeleteByCustomerID(ctx, nil, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTransactionRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	ada := createCustomer(t, NewCustomerRepository(db), "ada@example.com")
	repo := NewTransactionRepository(db)

	trans := &model.Transaction{CustomerID: ada.ID, Amount: 100, Description: "coffee"}
	require.NoError(t, repo.Create(ctx, nil, trans))

	require.NoError(t, repo.Update(ctx, nil, trans.ID, map[string]interface{}{"amount": int64(120)}))
	got, err := repo.GetByID(ctx, nil, trans.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(120), got.Amount)
	assert.Equal(t, "coffee", got.Description)

	require.NoError(t, repo.Delete(ctx, nil, trans.ID))
	_, err = repo.GetByID(ctx, nil, trans.ID)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestCustomerPlanRepository_StatusFilter(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	customers := NewCustomerRepository(db)
	plans := NewPlanRepository(db)
	repo := NewCustomerPlanRepository(db)

	ada := createCustomer(t, customers, "ada@example.com")
	grace := createCustomer(t, customers, "grace@example.com")
	basic := &model.Plan{Name: "basic", Price: 10}
	require.NoError(t, plans.Create(ctx, nil, basic))

	rows := []*model.CustomerPlan{
		{CustomerID: ada.ID, PlanID: basic.ID, Status: model.PlanStatusActive},
		{CustomerID: ada.ID, PlanID: basic.ID, Status: model.PlanStatusInactive},
		{CustomerID: ada.ID, PlanID: basic.ID, Status: model.PlanStatusActive},
		{CustomerID: grace.ID, PlanID: basic.ID, Status: model.PlanStatusActive},
	}
	for _, row := range rows {
		require.NoError(t, repo.Create(ctx, nil, row))
	}

	active, err := repo.ListByCustomerAndStatus(ctx, ada.ID, model.PlanStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, link := range active {
		assert.Equal(t, ada.ID, link.CustomerID)
		assert.Equal(t, model.PlanStatusActive, link.Status)
	}

	require.NoError(t, repo.UpdateStatus(ctx, nil, rows[1].ID, model.PlanStatusActive))
	active, err = repo.ListByCustomerAndStatus(ctx, ada.ID, model.PlanStatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 3)

	count, err := repo.CountByPlanID(ctx, nil, basic.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	_, err = repo.GetByID(ctx, nil, 999)
	assert.ErrorIs(t, err, ErrCustomerPlanNotFound)
}

func TestCustomerPlanRepository_DefaultStatus(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	ada := createCustomer(t, NewCustomerRepository(db), "ada@example.com")
	plan := &model.Plan{Name: "pro", Price: 30}
	require.NoError(t, NewPlanRepository(db).Create(ctx, nil, plan))
	repo := NewCustomerPlanRepository(db)

	link := &model.CustomerPlan{CustomerID: ada.ID, PlanID: plan.ID}
	require.NoError(t, repo.Create(ctx, nil, link))

	got, err := repo.GetByID(ctx, nil, link.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PlanStatusActive, got.Status)
}

func TestPlanRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository(setupDB(t))

	plan := &model.Plan{Name: "basic", Price: 10, Description: "entry"}
	require.NoError(t, repo.Create(ctx, nil, plan))

	require.NoError(t, repo.Update(ctx, nil, plan.ID, map[string]interface{}{"price": int64(12)}))
	got, err := repo.GetByID(ctx, nil, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.Price)
	assert.Equal(t, "entry", got.Description)

	require.NoError(t, repo.Delete(ctx, nil, plan.ID))
	assert.ErrorIs(t, repo.Delete(ctx, nil, plan.ID), ErrPlanNotFound)
}

func TestOutboxRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewOutboxRepository(setupDB(t))

	event := &model.BillingEvent{Key: "EVT1", Type: model.EventCustomerCreated, CustomerID: 7}
	require.NoError(t, repo.Enqueue(ctx, nil, "billing_events", event))
	require.NoError(t, repo.Enqueue(ctx, nil, "billing_events", &model.BillingEvent{Key: "EVT2", Type: model.EventTransactionCreated}))

	pending, err := repo.GetPendingMessages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "EVT1", pending[0].MessageKey)
	assert.Equal(t, model.EventCustomerCreated, pending[0].EventType)

	var decoded model.BillingEvent
	require.NoError(t, json.Unmarshal([]byte(pending[0].Payload), &decoded))
	assert.Equal(t, int64(7), decoded.CustomerID)

	require.NoError(t, repo.MarkAsSent(ctx, pending[0].ID))

	exhausted, err := repo.RecordFailure(ctx, pending[1], 2)
	require.NoError(t, err)
	assert.False(t, exhausted)

	pending[1].RetryCount = 1
	exhausted, err = repo.RecordFailure(ctx, pending[1], 2)
	require.NoError(t, err)
	assert.True(t, exhausted)

	failed, err := repo.ListByStatus(ctx, model.OutboxStatusFailed, 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, 2, failed[0].RetryCount)

	pending, err = repo.GetPendingMessages(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
