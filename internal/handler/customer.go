package handler

import (
	"billing/internal/model"
	"billing/pkg/response"

	"github.com/gin-gonic/gin"
)

// ============================================================
// 客户相关接口
// ============================================================

// ListCustomers GET /customers
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, customers)
}

// CreateCustomer POST /customers
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req model.CustomerCreate
	if !bindJSON(c, &req) {
		return
	}
	customer, err := h.customerService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, customer)
}

// GetCustomer GET /customers/:id
func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	customer, err := h.customerService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, customer)
}

// UpdateCustomer PATCH /customers/:id，成功返回 201
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.CustomerPatch
	if !bindJSON(c, &req) {
		return
	}
	customer, err := h.customerService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, customer)
}

// DeleteCustomer DELETE /customers/:id
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Deleted(c)
}

// ListCustomerTransactions GET /customers/:id/transactions
func (h *Handler) ListCustomerTransactions(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	transactions, err := h.customerService.Transactions(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, transactions)
}

// ListCustomerPlans GET /customers/:id/plans?plan_status=active
func (h *Handler) ListCustomerPlans(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	links, err := h.subscriptionService.ListCustomerPlans(c.Request.Context(), id, c.Query("plan_status"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, links)
}

// SubscribeCustomer POST /customers/:id/plans/:plan_id?plan_status=active
func (h *Handler) SubscribeCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	planID, ok := pathID(c, "plan_id")
	if !ok {
		return
	}
	link, err := h.subscriptionService.Subscribe(c.Request.Context(), id, planID, c.Query("plan_status"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, link)
}
