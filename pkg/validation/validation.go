// Package validation 基于 go-playground/validator 的实体字段校验，
// 把校验失败汇总为 ConstraintViolation 列表。
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ConstraintViolation 单个字段的约束违反
type ConstraintViolation struct {
	// 字段路径，如 Order.OrderStatus
	Field string `json:"field"`
	// 约束描述，如 max=250
	Constraint string `json:"constraint"`
	// 可读信息
	Message string `json:"message"`
	// 非法值
	Value interface{} `json:"value"`
}

// String 格式为 [约束:信息=值]
func (cv ConstraintViolation) String() string {
	return fmt.Sprintf("[%s:%s=%v]", cv.Constraint, cv.Message, cv.Value)
}

// ValidationError 一次校验中的全部约束违反
type ValidationError struct {
	Entity     string
	Violations []ConstraintViolation
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	for _, cv := range e.Violations {
		b.WriteString(cv.String())
	}
	return b.String()
}

// IsValidationError 判断 err 链上是否存在 *ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// Validator 封装 validator.Validate，注册了 decimal 相关约束
type Validator struct {
	validate *validator.Validate
}

// New 创建校验器
//
// decimal.Decimal 字段被转换为字符串再校验，支持 decmin / decmax 两个标签。
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("decmax", decimalBound(func(val, bound decimal.Decimal) bool { return val.LessThanOrEqual(bound) }))
	_ = v.RegisterValidation("decmin", decimalBound(func(val, bound decimal.Decimal) bool { return val.GreaterThanOrEqual(bound) }))
	return &Validator{validate: v}
}

func decimalBound(cmp func(val, bound decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(val, bound)
	}
}

// Struct 校验实体，违反约束时返回 *ValidationError
func (v *Validator) Struct(entity string, s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %s: %w", entity, err)
	}

	verr := &ValidationError{Entity: entity}
	for _, fe := range fieldErrs {
		constraint := fe.Tag()
		if fe.Param() != "" {
			constraint += "=" + fe.Param()
		}
		verr.Violations = append(verr.Violations, ConstraintViolation{
			Field:      fe.Namespace(),
			Constraint: constraint,
			Message:    message(fe),
			Value:      fe.Value(),
		})
	}
	return verr
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("size must be between 0 and %s", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s element(s)", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "decmax":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "decmin":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "email":
		return "must be a well-formed email address"
	default:
		return fmt.Sprintf("failed on the '%s' constraint", fe.Tag())
	}
}
