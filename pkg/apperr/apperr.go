package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误分类，由边界层映射为 HTTP 状态码
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindUnknownTimezone
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindUnknownTimezone:
		return "unknown_timezone"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error 带分类的业务错误
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func UnknownTimezone(message string) *Error {
	return New(KindUnknownTimezone, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// KindOf 返回错误链上第一个 *Error 的分类，没有则视为内部错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf 返回面向调用方的错误信息
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
