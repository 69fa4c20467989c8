package models

import (
	"errors"
	"fmt"
	"time"
)

// Типы ресурсов Mollie.
const (
	ResourcePayment = "payment"
	ResourceBalance = "balance"
)

// ErrUnexpectedResource — ответ разобрался, но не описывает ожидаемый ресурс.
var ErrUnexpectedResource = errors.New("unexpected resource in response")

// PaymentStatus — статус платежа на стороне Mollie.
type PaymentStatus string

const (
	PaymentStatusOpen       PaymentStatus = "open"
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusAuthorized PaymentStatus = "authorized"
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusExpired    PaymentStatus = "expired"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusCanceled   PaymentStatus = "canceled"
)

// PaymentRequest — полностью провалидированный запрос на создание платежа.
// Создаётся только сборщиком ввода и после этого не меняется.
type PaymentRequest struct {
	Amount      Money  `json:"amount"`
	Description string `json:"description"`
	RedirectURL string `json:"redirectUrl"`
	WebhookURL  string `json:"webhookUrl,omitempty"`
}

// Link — ссылка из блока _links ответа API.
type Link struct {
	Href string `json:"href"`
	Type string `json:"type,omitempty"`
}

// PaymentLinks — ссылки, которые Mollie возвращает вместе с платежом.
type PaymentLinks struct {
	Self      *Link `json:"self,omitempty"`
	Checkout  *Link `json:"checkout,omitempty"`
	Dashboard *Link `json:"dashboard,omitempty"`
}

// Payment — платёж в представлении Mollie.
type Payment struct {
	Resource     string        `json:"resource"`
	ID           string        `json:"id"`
	Mode         Mode          `json:"mode"`
	Description  string        `json:"description"`
	Method       *string       `json:"method"`
	Status       PaymentStatus `json:"status"`
	Amount       Money         `json:"amount"`
	IsCancelable bool          `json:"isCancelable,omitempty"`
	CreatedAt    *time.Time    `json:"createdAt,omitempty"`
	Links        PaymentLinks  `json:"_links"`
}

// Validate проверяет, что ответ описывает платёж: resource "payment" и непустой ID.
func (p *Payment) Validate() error {
	if p.Resource != ResourcePayment {
		return fmt.Errorf("%w: resource %q, want %q", ErrUnexpectedResource, p.Resource, ResourcePayment)
	}
	if p.ID == "" {
		return fmt.Errorf("%w: payment without id", ErrUnexpectedResource)
	}
	return nil
}

// CheckoutURL возвращает ссылку на страницу оплаты, если она есть в ответе.
func (p *Payment) CheckoutURL() string {
	if p.Links.Checkout == nil {
		return ""
	}
	return p.Links.Checkout.Href
}
