package paymentprovider

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DetailUnparseable — detail синтезированной ошибки, когда тело ответа с ошибкой не разобрать.
const DetailUnparseable = "unparseable error body"

// APIError — ошибка, о которой сообщил сам провайдер (любой неожиданный HTTP-статус).
// Status всегда равен HTTP-статусу ответа.
type APIError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("mollie api error %d %s: %s", e.Status, e.Title, e.Detail)
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %s)", e.Field)
	}
	return msg
}

// TransportError — до провайдера не удалось достучаться: соединение, DNS, таймаут,
// обрыв чтения тела или отмена контекста.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: could not reach the payment provider: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError — провайдер ответил ожидаемым статусом, но тело не разбирается.
// Body хранит сырое тело ответа для диагностики.
type DecodeError struct {
	Op     string
	Status int
	Body   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: cannot decode response with status %d: %v", e.Op, e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// parseAPIError разбирает тело ответа с ошибкой и никогда не падает на мусоре.
func parseAPIError(status int, body []byte) *APIError {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil || (apiErr.Title == "" && apiErr.Detail == "") {
		return &APIError{
			Status: status,
			Title:  http.StatusText(status),
			Detail: DetailUnparseable,
		}
	}
	apiErr.Status = status
	if apiErr.Title == "" {
		apiErr.Title = http.StatusText(status)
	}
	return &apiErr
}
