package handler

import (
	"billing/internal/model"
	"billing/pkg/response"

	"github.com/gin-gonic/gin"
)

// ============================================================
// 交易相关接口
// ============================================================

// ListTransactions GET /transactions
func (h *Handler) ListTransactions(c *gin.Context) {
	transactions, err := h.transactionService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, transactions)
}

// CreateTransaction POST /transactions，客户不存在返回 404
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req model.TransactionCreate
	if !bindJSON(c, &req) {
		return
	}
	trans, err := h.transactionService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, trans)
}

// GetTransaction GET /transactions/:id
func (h *Handler) GetTransaction(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	trans, err := h.transactionService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, trans)
}

// UpdateTransaction PATCH /transactions/:id
func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.TransactionPatch
	if !bindJSON(c, &req) {
		return
	}
	trans, err := h.transactionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, trans)
}

// DeleteTransaction DELETE /transactions/:id
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.transactionService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Deleted(c)
}
