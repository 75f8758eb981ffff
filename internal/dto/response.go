package dto

import (
	"errors"
	"fmt"
	"strings"

	"terminal-terrace/conduit/internal/errs"
	res "terminal-terrace/conduit/packages/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(200, res.SuccessResponse(data))
}

// ErrorResponse HTTP 状态码由业务错误码决定
func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	c.JSON(err.Code.HTTPStatus(), res.ErrorResponse(err.Code, err.Msg))
}

// HandleError 将领域错误翻译为业务错误并写入响应
func HandleError(c *gin.Context, err error) {
	be := ToBusinessError(err)
	if be.Code == res.Fail {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).
			Str("path", c.FullPath()).
			Msg("请求处理失败")
	}
	ErrorResponse(c, be)
}

// ToBusinessError 领域错误 -> 业务错误码
func ToBusinessError(err error) *res.BusinessError {
	var be *res.BusinessError
	if errors.As(err, &be) {
		return be
	}

	var ve *errs.ValidationError
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return res.NewBusinessError(
			res.WithErrorCode(res.Unauthorized),
			res.WithErrorMessage("未认证或认证已失效"),
			res.WithError(err),
		)
	case errors.Is(err, errs.ErrForbidden):
		return res.NewBusinessError(
			res.WithErrorCode(res.Forbidden),
			res.WithErrorMessage("无权执行该操作"),
			res.WithError(err),
		)
	case errors.Is(err, errs.ErrNotFound):
		return res.NewBusinessError(
			res.WithErrorCode(res.NotFound),
			res.WithErrorMessage("资源不存在"),
			res.WithError(err),
		)
	case errors.As(err, &ve):
		return res.NewBusinessError(
			res.WithErrorCode(res.ValidationFailed),
			res.WithErrorMessage(ve.Error()),
			res.WithError(err),
		)
	default:
		return res.NewBusinessError(
			res.WithErrorCode(res.Fail),
			res.WithErrorMessage("服务器内部错误"),
			res.WithError(err),
		)
	}
}

// ValidationErrorResponse 处理验证错误，返回友好的JSON字段名
func ValidationErrorResponse(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		firstErr := validationErrs[0]
		jsonField := toSnakeCase(firstErr.Field())

		var message string
		switch firstErr.Tag() {
		case "required":
			message = fmt.Sprintf("字段 '%s' 是必填项", jsonField)
		case "max":
			message = fmt.Sprintf("字段 '%s' 长度不能超过 %s", jsonField, firstErr.Param())
		case "min":
			message = fmt.Sprintf("字段 '%s' 长度不能少于 %s", jsonField, firstErr.Param())
		case "email":
			message = fmt.Sprintf("字段 '%s' 不是合法的邮箱", jsonField)
		default:
			message = fmt.Sprintf("字段 '%s' 验证失败: %s", jsonField, firstErr.Tag())
		}

		ErrorResponse(c, res.NewBusinessError(
			res.WithErrorCode(res.ParseError),
			res.WithErrorMessage(message),
		))
		return
	}

	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("参数错误: "+err.Error()),
	))
}

// toSnakeCase 将PascalCase转换为snake_case
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
