package response

import (
	"net/http"

	"billing/pkg/apperr"

	"github.com/gin-gonic/gin"
)

const InternalErrorMessage = "Internal Server Error"

// ErrorBody 统一错误响应体
type ErrorBody struct {
	Detail string `json:"detail"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Deleted 删除成功固定返回 {"detail":"ok"}
func Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, ErrorBody{Detail: "ok"})
}

func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Detail: message})
}

func ParamError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// Fail 按错误分类输出状态码，内部错误只记录不外露
func Fail(c *gin.Context, err error) {
	status := StatusOf(err)
	message := apperr.MessageOf(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = InternalErrorMessage
	}
	Error(c, status, message)
}

func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation, apperr.KindUnknownTimezone:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
