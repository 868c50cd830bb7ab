package handler

import (
	"billing/internal/model"
	"billing/pkg/response"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListSubscriptions(c *gin.Context) {
	links, err := h.subscriptionService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, links)
}

func (h *Handler) GetSubscription(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	link, err := h.subscriptionService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, link)
}

// UpdateSubscription 只接受 {"status": "active"|"inactive"}
func (h *Handler) UpdateSubscription(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.CustomerPlanPatch
	if !bindJSON(c, &req) {
		return
	}
	link, err := h.subscriptionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, link)
}

func (h *Handler) DeleteSubscription(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.subscriptionService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Deleted(c)
}
