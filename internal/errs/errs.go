// Package errs 领域错误分类
// 领域层只返回这里的错误，由 dto 层翻译为响应码
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated 缺少或无效的令牌，或令牌对应的用户已不存在
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden 已认证但不是资源所有者
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("not found")
)

// ValidationError 字段校验失败
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Is 同字段同原因的 ValidationError 视为相等
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Field == e.Field && t.Reason == e.Reason
}

var (
	ErrDuplicateSlug     = &ValidationError{Field: "slug", Reason: "has already been taken"}
	ErrDuplicateUsername = &ValidationError{Field: "username", Reason: "has already been taken"}
	ErrDuplicateEmail    = &ValidationError{Field: "email", Reason: "has already been taken"}
)

// Blank 必填字段为空
func Blank(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "can't be blank"}
}

// Invalid 字段格式不正确
func Invalid(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is invalid"}
}

// IsValidation 判断是否为校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
