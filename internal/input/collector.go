// Package input собирает и проверяет данные запроса до любого сетевого обращения.
//
// Данные платежа приходят либо из интерактивных вопросов (Prompter), либо из флагов
// командной строки (PaymentValues). Оба пути проходят через один и тот же набор правил
// go-playground/validator, поэтому проверки в них совпадают. Частично собранный
// запрос наружу никогда не возвращается.
package input

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/mollie-cli/internal/models"
)

// Значения по умолчанию для вопросов и флагов.
const (
	DefaultCurrency    = "EUR"
	DefaultAmount      = "1.00"
	DefaultDescription = "N/A"
	DefaultRedirectURL = "https://example.com/?source=mol-cli"

	// MaxListLimit — максимальный размер страницы, который принимает Mollie.
	MaxListLimit = 250
)

var (
	cursorRe    = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	paymentIDRe = regexp.MustCompile(`^tr_[A-Za-z0-9]+$`)
)

// Question — один вопрос пользователю.
type Question struct {
	Name     string             // Имя шага, используется в логах
	Label    string             // Текст вопроса
	Default  string             // Ответ по умолчанию
	Validate func(string) error // Проверка ответа, та же, что и при сборке запроса
}

// Prompter задаёт вопросы пользователю.
type Prompter interface {
	Ask(q Question) (string, error)
}

// PaymentValues — сырые значения платежа из флагов.
type PaymentValues struct {
	Currency    string
	Amount      string
	Description string
	RedirectURL string
	WebhookURL  string
}

// paymentDraft — правила проверки платежа. Amount проверяется как float64
// через зарегистрированную функцию преобразования decimal.Decimal.
type paymentDraft struct {
	Currency    string          `validate:"required,len=3,alpha"`
	Amount      decimal.Decimal `validate:"gte=0"`
	Description string          `validate:"required"`
	RedirectURL string          `validate:"required,absurl"`
	WebhookURL  string          `validate:"omitempty,absurl"`
}

type balanceQuery struct {
	Limit int    `validate:"gte=0,lte=250"`
	From  string `validate:"omitempty,cursor"`
}

type paymentRef struct {
	ID string `validate:"required,paymentid"`
}

// Collector собирает проверенные данные запросов.
type Collector struct {
	prompter Prompter
	validate *validator.Validate
	log      *slog.Logger
}

// New создаёт Collector. prompter может быть nil, если интерактивный ввод не нужен.
func New(prompter Prompter, log *slog.Logger) *Collector {
	return &Collector{
		prompter: prompter,
		validate: newValidator(),
		log:      log,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("absurl", isAbsoluteURL)
	_ = v.RegisterValidation("cursor", matches(cursorRe))
	_ = v.RegisterValidation("paymentid", matches(paymentIDRe))
	return v
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func isAbsoluteURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// CollectPayment последовательно спрашивает валюту, сумму, описание и redirect URL.
// Каждый следующий вопрос задаётся только после успешной проверки предыдущего ответа.
// webhookURL приходит из флага и проверяется вместе с остальным запросом.
func (c *Collector) CollectPayment(ctx context.Context, webhookURL string) (*models.PaymentRequest, error) {
	const op = "input.CollectPayment"
	log := c.log.With(slog.String("op", op))

	if c.prompter == nil {
		return nil, fmt.Errorf("%s: %w: no prompter configured", op, ErrInputAborted)
	}

	var values PaymentValues
	steps := []struct {
		question Question
		answer   *string
	}{
		{
			question: Question{Name: "currency", Label: "Currency (3 letter code)", Default: DefaultCurrency, Validate: c.checkCurrency},
			answer:   &values.Currency,
		},
		{
			question: Question{Name: "amount", Label: "Amount", Default: DefaultAmount, Validate: c.checkAmount},
			answer:   &values.Amount,
		},
		{
			question: Question{Name: "description", Label: "Description", Default: DefaultDescription, Validate: c.checkDescription},
			answer:   &values.Description,
		},
		{
			question: Question{Name: "redirect_url", Label: "Redirect URL", Default: DefaultRedirectURL, Validate: c.checkRedirectURL},
			answer:   &values.RedirectURL,
		},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", op, ErrInputAborted, err)
		}
		answer, err := c.prompter.Ask(step.question)
		if err != nil {
			log.Debug("prompt aborted", slog.String("step", step.question.Name))
			if errors.Is(err, ErrInputAborted) {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			return nil, fmt.Errorf("%s: %w: %w", op, ErrInputAborted, err)
		}
		if err := step.question.Validate(answer); err != nil {
			log.Debug("answer rejected", slog.String("step", step.question.Name))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		*step.answer = answer
	}
	values.WebhookURL = webhookURL

	return c.FromValues(values)
}

// FromValues собирает запрос из значений флагов по тем же правилам, что и CollectPayment.
func (c *Collector) FromValues(values PaymentValues) (*models.PaymentRequest, error) {
	const op = "input.FromValues"

	draft, err := c.build(values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := c.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}

	c.log.Debug("payment request collected",
		slog.String("op", op),
		slog.String("currency", draft.Currency),
		slog.String("amount", draft.Amount.StringFixed(models.MoneyScale)),
	)
	return &models.PaymentRequest{
		Amount:      models.NewMoney(draft.Currency, draft.Amount),
		Description: draft.Description,
		RedirectURL: draft.RedirectURL,
		WebhookURL:  draft.WebhookURL,
	}, nil
}

// build нормализует значения и проверяет их по одному в порядке ввода.
func (c *Collector) build(values PaymentValues) (paymentDraft, error) {
	var (
		draft paymentDraft
		err   error
	)
	if draft.Currency, err = c.currency(values.Currency); err != nil {
		return draft, err
	}
	if draft.Amount, err = c.amount(values.Amount); err != nil {
		return draft, err
	}
	if draft.Description, err = c.description(values.Description); err != nil {
		return draft, err
	}
	if draft.RedirectURL, err = c.url("RedirectURL", values.RedirectURL); err != nil {
		return draft, err
	}
	if draft.WebhookURL, err = c.url("WebhookURL", values.WebhookURL); err != nil {
		return draft, err
	}
	return draft, nil
}

func (c *Collector) currency(raw string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	return v, c.checkField("Currency", paymentDraft{Currency: v})
}

func (c *Collector) amount(raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, raw)
	}
	return v, c.checkField("Amount", paymentDraft{Amount: v})
}

func (c *Collector) description(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	return v, c.checkField("Description", paymentDraft{Description: v})
}

func (c *Collector) url(field, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	return v, c.checkField(field, paymentDraft{RedirectURL: v, WebhookURL: v})
}

func (c *Collector) checkField(field string, draft paymentDraft) error {
	if err := c.validate.StructPartial(draft, field); err != nil {
		return translate(err)
	}
	return nil
}

func (c *Collector) checkCurrency(s string) error {
	_, err := c.currency(s)
	return err
}

func (c *Collector) checkAmount(s string) error {
	_, err := c.amount(s)
	return err
}

func (c *Collector) checkDescription(s string) error {
	_, err := c.description(s)
	return err
}

func (c *Collector) checkRedirectURL(s string) error {
	_, err := c.url("RedirectURL", s)
	return err
}

// BalanceQuery проверяет параметры списка балансов.
func (c *Collector) BalanceQuery(limit int, from string) (models.ListBalancesParams, error) {
	const op = "input.BalanceQuery"
	q := balanceQuery{Limit: limit, From: strings.TrimSpace(from)}
	if err := c.validate.Struct(q); err != nil {
		return models.ListBalancesParams{}, fmt.Errorf("%s: %w", op, translate(err))
	}
	return models.ListBalancesParams{Limit: q.Limit, From: q.From}, nil
}

// PaymentID проверяет идентификатор платежа из аргумента команды.
func (c *Collector) PaymentID(id string) (string, error) {
	const op = "input.PaymentID"
	ref := paymentRef{ID: strings.TrimSpace(id)}
	if err := c.validate.Struct(ref); err != nil {
		return "", fmt.Errorf("%s: %w", op, translate(err))
	}
	return ref.ID, nil
}
