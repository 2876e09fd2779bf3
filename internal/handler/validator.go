package handler

import (
	"reflect"
	"strings"

	"events-api/internal/dto"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator 欄位名稱使用 json tag，dto.DateTime 以內含的 time.Time 驗證
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		d, ok := field.Interface().(dto.DateTime)
		if !ok || d.IsZero() {
			return nil
		}
		return d.Time
	}, dto.DateTime{})
	return &CustomValidator{validator: v}
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}
