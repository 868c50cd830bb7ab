package handler

import (
	"strconv"

	"billing/internal/config"
	"billing/internal/infrastructure/lock"
	"billing/internal/service"
	"billing/pkg/apperr"
	"billing/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler 统一处理器，包含所有服务依赖
type Handler struct {
	customerService     *service.CustomerService
	planService         *service.PlanService
	transactionService  *service.TransactionService
	subscriptionService *service.SubscriptionService
	invoiceService      *service.InvoiceService
	clockService        *service.ClockService
}

func NewHandler(db *gorm.DB, locker lock.Locker, cfg *config.Config) *Handler {
	return &Handler{
		customerService:     service.NewCustomerService(db, locker, cfg),
		planService:         service.NewPlanService(db, cfg),
		transactionService:  service.NewTransactionService(db, locker, cfg),
		subscriptionService: service.NewSubscriptionService(db, locker, cfg),
		invoiceService:      service.NewInvoiceService(db),
		clockService:        service.NewClockService(),
	}
}

// pathID 解析路径中的整数 id，失败时已写出 400
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.ParamError(c, name+" must be an integer")
		return 0, false
	}
	return id, true
}

// bindJSON 请求体无法解析时写出 400
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.Fail(c, apperr.Wrap(apperr.KindValidation, "Invalid request body", err))
		return false
	}
	return true
}
