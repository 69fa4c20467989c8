package input

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator"
)

var (
	ErrInvalidCurrency    = errors.New("invalid currency")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDescription = errors.New("invalid description")
	ErrInvalidURL         = errors.New("invalid URL")
	ErrInvalidLimit       = errors.New("invalid limit")
	ErrInvalidCursor      = errors.New("invalid cursor")
	ErrInvalidPaymentID   = errors.New("invalid payment id")
	// ErrInputAborted — пользователь прервал ввод (Ctrl-C, Ctrl-D) или prompt не смог работать.
	ErrInputAborted = errors.New("input aborted")
)

// fieldErrors сопоставляет поле проверяемой структуры с типизированной ошибкой.
var fieldErrors = map[string]error{
	"Currency":    ErrInvalidCurrency,
	"Amount":      ErrInvalidAmount,
	"Description": ErrInvalidDescription,
	"RedirectURL": ErrInvalidURL,
	"WebhookURL":  ErrInvalidURL,
	"Limit":       ErrInvalidLimit,
	"From":        ErrInvalidCursor,
	"ID":          ErrInvalidPaymentID,
}

// translate превращает ошибку валидатора в типизированную ошибку ввода.
// Берётся первое нарушение: поля проверяются в порядке ввода.
func translate(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	sentinel, ok := fieldErrors[fe.StructField()]
	if !ok {
		return fmt.Errorf("field %s is not valid", fe.Field())
	}
	return fmt.Errorf("%w: %s", sentinel, describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return "value is required"
	case "len":
		return fmt.Sprintf("must be exactly %s letters", fe.Param())
	case "alpha":
		return fmt.Sprintf("%q can contain only letters", fe.Value())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "absurl":
		return fmt.Sprintf("%q is not an absolute URL with a scheme and host", fe.Value())
	case "cursor":
		return fmt.Sprintf("%q is not a valid cursor", fe.Value())
	case "paymentid":
		return fmt.Sprintf("%q is not a payment id (expected tr_...)", fe.Value())
	default:
		return fmt.Sprintf("field %s is not valid", fe.Field())
	}
}
