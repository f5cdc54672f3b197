package apperror

import (
	"errors"
	"net/http"
)

// Code is a symbolic application error code. Every code maps to a fixed
// HTTP status and a user-facing Persian message.
type Code string

const (
	CodeInternal        Code = "INTERNAL_SERVER_ERROR"
	CodeNotFound        Code = "NOT_FOUND"
	CodeBadRequest      Code = "BAD_REQUEST"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeValidationError Code = "VALIDATION_ERROR"

	CodeThreadNotFound      Code = "THREAD_NOT_FOUND"
	CodeThreadAlreadyLocked Code = "THREAD_ALREADY_LOCKED"

	CodeUserNotFound       Code = "USER_NOT_FOUND"
	CodeUserAlreadyExists  Code = "USER_ALREADY_EXISTS"
	CodeUsernameTaken      Code = "USERNAME_TAKEN"
	CodeEmailTaken         Code = "EMAIL_TAKEN"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"

	CodeCategoryNotFound Code = "CATEGORY_NOT_FOUND"
	CodeCommentNotFound  Code = "COMMENT_NOT_FOUND"

	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeAdminRequired    Code = "ADMIN_REQUIRED"

	CodeRateLimitExceeded Code = "RATE_LIMIT_EXCEEDED"
)

var statusMap = map[Code]int{
	CodeInternal:        http.StatusInternalServerError,
	CodeNotFound:        http.StatusNotFound,
	CodeBadRequest:      http.StatusBadRequest,
	CodeUnauthorized:    http.StatusUnauthorized,
	CodeForbidden:       http.StatusForbidden,
	CodeValidationError: http.StatusBadRequest,

	CodeThreadNotFound:      http.StatusNotFound,
	CodeThreadAlreadyLocked: http.StatusBadRequest,

	CodeUserNotFound:       http.StatusNotFound,
	CodeUserAlreadyExists:  http.StatusConflict,
	CodeUsernameTaken:      http.StatusConflict,
	CodeEmailTaken:         http.StatusConflict,
	CodeInvalidCredentials: http.StatusUnauthorized,

	CodeCategoryNotFound: http.StatusNotFound,
	CodeCommentNotFound:  http.StatusNotFound,

	CodePermissionDenied: http.StatusForbidden,
	CodeAdminRequired:    http.StatusForbidden,

	CodeRateLimitExceeded: http.StatusTooManyRequests,
}

// messageMap holds the user-facing Persian message for each code. Responses
// carry the message verbatim in the JSON error body.
var messageMap = map[Code]string{
	CodeInternal:        "خطای سرور داخلی رخ داده است.",
	CodeNotFound:        "موردی یافت نشد.",
	CodeBadRequest:      "درخواست نامعتبر است.",
	CodeUnauthorized:    "لطفا وارد حساب کاربری خود شوید.",
	CodeForbidden:       "شما مجوز دسترسی به این بخش را ندارید.",
	CodeValidationError: "اطلاعات وارد شده معتبر نمی‌باشد.",

	CodeThreadNotFound:      "تاپیک مورد نظر یافت نشد.",
	CodeThreadAlreadyLocked: "این تاپیک قبلا قفل شده است.",

	CodeUserNotFound:       "کاربر مورد نظر یافت نشد.",
	CodeUserAlreadyExists:  "این کاربر قبلا ثبت نام کرده است.",
	CodeUsernameTaken:      "این نام کاربری قبلا استفاده شده است.",
	CodeEmailTaken:         "این ایمیل قبلا استفاده شده است.",
	CodeInvalidCredentials: "نام کاربری یا رمز عبور اشتباه است.",

	CodeCategoryNotFound: "دسته‌بندی مورد نظر یافت نشد.",
	CodeCommentNotFound:  "نظر مورد نظر یافت نشد.",

	CodePermissionDenied: "شما مجوز انجام این عملیات را ندارید.",
	CodeAdminRequired:    "این عملیات نیاز به دسترسی مدیر دارد.",

	CodeRateLimitExceeded: "تعداد درخواست‌های شما بیش از حد مجاز است. لطفا کمی صبر کنید.",
}

const fallbackMessage = "خطایی در اجرای عملیات رخ داد"

// AppError carries a symbolic code and the localized message resolved from it.
type AppError struct {
	Code    Code
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status mapped to the error code.
func (e *AppError) Status() int {
	if status, ok := statusMap[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// New creates an AppError for the given code with its mapped message.
func New(code Code) *AppError {
	return &AppError{Code: code, Message: resolveMessage(code)}
}

// Wrap creates an AppError that keeps the underlying cause for logging.
// The cause is never exposed to the client.
func Wrap(code Code, err error) *AppError {
	return &AppError{Code: code, Message: resolveMessage(code), Err: err}
}

// Is reports whether err is an AppError with the given code.
func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func resolveMessage(code Code) string {
	if msg, ok := messageMap[code]; ok {
		return msg
	}
	return fallbackMessage
}
