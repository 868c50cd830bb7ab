package handler

import (
	"billing/internal/model"
	"billing/internal/service"
	"billing/pkg/response"

	"github.com/gin-gonic/gin"
)

// CreateInvoice POST /invoices
func (h *Handler) CreateInvoice(c *gin.Context) {
	var req model.InvoiceCreate
	if !bindJSON(c, &req) {
		return
	}
	invoice, err := h.invoiceService.Build(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, invoice)
}

// CurrentTime GET /time/:iso_code?time_format=12|24，不传 time_format 时按 24 小时制
func (h *Handler) CurrentTime(c *gin.Context) {
	format, ok := c.GetQuery("time_format")
	if !ok {
		format = service.TimeFormat24
	}
	now, err := h.clockService.CurrentTime(c.Param("iso_code"), format)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"time": now})
}

// Root GET /，挂在 basic auth 之后
func (h *Handler) Root(c *gin.Context) {
	response.OK(c, gin.H{"message": "Hello, World!"})
}
