package model

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"

	"billing/pkg/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate = newValidator()
	// 名称、描述等自由文本只保留纯文本
	textPolicy = bluemonday.StrictPolicy()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 错误信息里使用 json 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// SanitizeText 先还原实体再去标签，&lt;script&gt; 与 <script> 同样被去掉；
// 输出再还原一次，O'Brien 不会变成 O&#39;Brien
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(html.UnescapeString(s))))
}

func SanitizeTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := SanitizeText(*s)
	return &cleaned
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldError(fieldErrs[0].Field(), fieldErrs[0])
	}
	return apperr.Validation(err.Error())
}

func validateVar(field string, value interface{}, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldError(field, fieldErrs[0])
	}
	return apperr.Validation(err.Error())
}

func fieldError(field string, fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return apperr.Validation(fmt.Sprintf("%s is required", field))
	case "email":
		return apperr.Validation(fmt.Sprintf("%s is not a valid email address", field))
	case "oneof":
		return apperr.Validation(fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
	default:
		return apperr.Validation(fmt.Sprintf("%s failed on %s=%s", field, fe.Tag(), fe.Param()))
	}
}

// requireNonNull 参数成对出现：字段名, 是否为 null
func requireNonNull(pairs ...interface{}) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if isNull, _ := pairs[i+1].(bool); isNull {
			return apperr.Validation(fmt.Sprintf("%s cannot be null", pairs[i]))
		}
	}
	return nil
}
