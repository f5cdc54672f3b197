package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError turns binding errors into a single Persian message.
func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return strings.Join(messages, "؛ ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s الزامی است", field)
	case "email":
		return fmt.Sprintf("%s باید یک ایمیل معتبر باشد", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s حداقل %s کاراکتر باشد", field, fe.Param())
		}
		return fmt.Sprintf("%s حداقل %s باشد", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s حداکثر %s کاراکتر باشد", field, fe.Param())
		}
		return fmt.Sprintf("%s حداکثر %s باشد", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s مقدار مجاز ندارد", field)
	default:
		return fmt.Sprintf("%s معتبر نیست", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Username":   "نام کاربری",
		"Email":      "ایمیل",
		"Password":   "رمز عبور",
		"Title":      "عنوان",
		"Content":    "متن",
		"Name":       "نام",
		"Slug":       "شناسه یکتا",
		"CategoryID": "دسته‌بندی",
		"Reason":     "دلیل",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
